package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/analytics"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/services"
)

// reportCmd builds a read-only analytics command with a --json switch.
// render prints the human-readable table.
func reportCmd(app *AppContext, use, short string, data func(*services.Snapshot) interface{}, render func(io.Writer, *services.Snapshot)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Snapshot()
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), data(snap))
			}
			render(cmd.OutOrStdout(), snap)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}

func writeJSON(out io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

// ShiftCountsCmd creates the shiftCounts command
func ShiftCountsCmd(app *AppContext) *cobra.Command {
	return reportCmd(app, "shiftCounts", "Show shift counts per provider for the reporting month",
		func(s *services.Snapshot) interface{} { return s.ShiftCounts },
		func(out io.Writer, s *services.Snapshot) { renderShiftCounts(out, s) })
}

func renderShiftCounts(out io.Writer, s *services.Snapshot) {
	fmt.Fprintf(out, "\n%sShift counts - %s%s\n\n", colorBold, s.Period.Label(), colorReset)
	fmt.Fprintf(out, "%-28s %5s %5s %5s %6s %8s\n", "Provider", "MD1", "MD2", "PM", "Total", "Weekend")
	for _, c := range s.ShiftCounts {
		fmt.Fprintf(out, "%-28s %5d %5d %5d %6d %8d\n", c.Provider, c.MD1, c.MD2, c.PM, c.TotalShifts, c.TotalWeekendShifts)
	}
	fmt.Fprintln(out)
}

// VolumeCmd creates the volume command
func VolumeCmd(app *AppContext) *cobra.Command {
	return reportCmd(app, "volume", "Show patient volume attributed to each provider",
		func(s *services.Snapshot) interface{} { return s.Volume },
		func(out io.Writer, s *services.Snapshot) { renderVolume(out, s) })
}

func renderVolume(out io.Writer, s *services.Snapshot) {
	fmt.Fprintf(out, "\n%sVolume - %s%s\n\n", colorBold, s.Period.Label(), colorReset)
	fmt.Fprintf(out, "%-28s %8s %8s %8s %8s %10s\n", "Provider", "MD1", "MD2", "PM", "Total", "NC shifts")
	for _, v := range s.Volume {
		nc := v.NCShiftsMD1 + v.NCShiftsMD2 + v.NCShiftsPM
		fmt.Fprintf(out, "%-28s %8.1f %8.1f %8.1f %8.1f %10d\n", v.Provider, v.MD1Volume, v.MD2Volume, v.PMVolume, v.TotalVolume, nc)
	}
	fmt.Fprintln(out)
}

// ComplianceCmd creates the compliance command
func ComplianceCmd(app *AppContext) *cobra.Command {
	return reportCmd(app, "compliance", "Compare each provider's shifts with their contract",
		func(s *services.Snapshot) interface{} { return s.Compliance },
		func(out io.Writer, s *services.Snapshot) { renderCompliance(out, s) })
}

func renderCompliance(out io.Writer, s *services.Snapshot) {
	fmt.Fprintf(out, "\n%sContract compliance - %s%s\n\n", colorBold, s.Period.Label(), colorReset)
	fmt.Fprintf(out, "%-28s %-10s %-10s %-10s %-10s %-10s %-10s\n", "Provider", "Contract", "Total", "Weekend", "MD1", "MD2", "PM")

	cell := func(shifts int, rem model.Remaining) string {
		return colored(fmt.Sprintf("%d/%s", shifts, rem), 10, remainingColor(rem, colorGreen, colorYellow, colorRed))
	}

	violations := 0
	for _, r := range s.Compliance {
		if len(r.Violations()) > 0 {
			violations++
		}
		fmt.Fprintf(out, "%-28s %-10s %s %s %s %s %s\n",
			r.Provider, r.ContractType,
			cell(r.TotalShifts, r.TotalRemaining),
			cell(r.WeekendShifts, r.WeekendRemaining),
			cell(r.MD1Shifts, r.MD1Remaining),
			cell(r.MD2Shifts, r.MD2Remaining),
			cell(r.PMShifts, r.PMRemaining))
	}
	fmt.Fprintf(out, "\nCells show shifts/remaining. %d of %d providers exceed a limit.\n\n", violations, len(s.Compliance))
}

// UtilizationCmd creates the utilization command
func UtilizationCmd(app *AppContext) *cobra.Command {
	var top int
	cmd := reportCmd(app, "utilization", "Rank providers by distinct shifts worked",
		func(s *services.Snapshot) interface{} { return analytics.Utilization(s.Entries, top) },
		func(out io.Writer, s *services.Snapshot) {
			renderUtilization(out, analytics.Utilization(s.Entries, top))
		})
	cmd.Flags().IntVar(&top, "top", 10, "Number of providers to list (0 lists all)")
	return cmd
}

func renderUtilization(out io.Writer, report analytics.UtilizationReport) {
	fmt.Fprintf(out, "\n%sUtilization%s\n\n", colorBold, colorReset)
	fmt.Fprintf(out, "%-28s %6s %5s %5s %5s %7s %10s\n", "Provider", "Shifts", "MD1", "MD2", "PM", "Sites", "Sites/shift")
	for _, u := range report.Providers {
		fmt.Fprintf(out, "%-28s %6d %5d %5d %5d %7d %10.2f\n", u.Provider, u.TotalShifts, u.MD1Shifts, u.MD2Shifts, u.PMShifts, u.SiteAssignments, u.SitesPerShift)
	}
	fmt.Fprintf(out, "\nTop %d of %d providers work %d of %d shifts (%.1f%%)\n\n",
		len(report.Providers), report.TotalProviders, report.TopShifts, report.TotalShifts, report.ConcentrationPct)
}

// CoverageCmd creates the coverage command
func CoverageCmd(app *AppContext) *cobra.Command {
	return reportCmd(app, "coverage", "List required facility shifts with nobody scheduled",
		func(s *services.Snapshot) interface{} { return s.Coverage() },
		func(out io.Writer, s *services.Snapshot) { renderCoverage(out, s.Coverage()) })
}

func renderCoverage(out io.Writer, summary analytics.CoverageSummary) {
	fmt.Fprintf(out, "\n%sCoverage%s\n\n", colorBold, colorReset)
	fmt.Fprintf(out, "Required: %d  Covered: %d  (%.1f%%)\n\n", summary.Required, summary.Covered, summary.CoveragePct)
	if len(summary.Missing) == 0 {
		fmt.Fprintln(out, "Every required shift is covered.")
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintf(out, "%-12s %-28s %s\n", "Date", "Facility", "Shift")
	for _, m := range summary.Missing {
		fmt.Fprintf(out, "%s%-12s %-28s %s%s\n", colorRed, m.Date.Format(argDateLayout), m.Facility, m.ShiftType, colorReset)
	}
	fmt.Fprintln(out)
}
