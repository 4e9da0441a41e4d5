package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/analytics"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/services"
)

// ConsecutiveCmd creates the consecutive command
func ConsecutiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "consecutive <provider>",
		Short: "Show a provider's runs of consecutive working days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Snapshot()
			if err != nil {
				return err
			}

			result, err := services.ProviderConsecutive(snap, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%sConsecutive shifts - %s%s\n\n", colorBold, result.Provider, colorReset)
			fmt.Fprintf(out, "Working days:     %d of %d\n", result.WorkDays, result.TotalDays)
			fmt.Fprintf(out, "Longest run:      %d days\n\n", result.MaxConsecutive)
			if len(result.ConsecutiveGroups) == 0 {
				fmt.Fprintf(out, "No runs of two or more consecutive days.\n\n")
				return nil
			}
			for _, g := range result.ConsecutiveGroups {
				fmt.Fprintf(out, "  %-8s to %-8s %2d days\n", g.StartLabel, g.EndLabel, g.Count)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// SatisfactionCmd creates the satisfaction command
func SatisfactionCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "satisfaction <provider>",
		Short: "Score a provider's schedule satisfaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Snapshot()
			if err != nil {
				return err
			}

			score, err := services.ProviderSatisfaction(snap, args[0])
			if err != nil {
				return err
			}
			renderSatisfaction(cmd.OutOrStdout(), score)
			return nil
		},
	}
}

func renderSatisfaction(out io.Writer, score analytics.SatisfactionScore) {
	fmt.Fprintf(out, "\n%sSatisfaction - %s%s\n\n", colorBold, score.Provider, colorReset)
	fmt.Fprintf(out, "%-22s %6s %7s %9s\n", "Component", "Score", "Weight", "Weighted")
	for _, row := range []struct {
		name string
		sub  analytics.SubScore
	}{
		{"Workload balance", score.WorkloadBalance},
		{"Weekend burden", score.WeekendBurden},
		{"Consecutive shifts", score.ConsecutiveShifts},
		{"Contract compliance", score.ContractCompliance},
		{"Self-reported", score.SelfReported},
	} {
		fmt.Fprintf(out, "%-22s %s %7.2f %9.2f\n", row.name,
			colored(fmt.Sprintf("%6.1f", row.sub.Score), 6, scoreColor(row.sub.Score, colorGreen, colorYellow, colorRed)),
			row.sub.Weight, row.sub.Weighted)
	}
	fmt.Fprintf(out, "\nOverall: %s\n\n",
		colored(fmt.Sprintf("%.1f / 10", score.OverallScore), 0, scoreColor(score.OverallScore, colorGreen, colorYellow, colorRed)))
}

// ReplacementCmd creates the replacement command
func ReplacementCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "replacement <facility> <shift_type> <date>",
		Short: "Rank providers who could cover a cancelled shift (date as YYYY-MM-DD)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args[2])
			if err != nil {
				return err
			}

			snap, err := app.Snapshot()
			if err != nil {
				return err
			}

			candidates, err := services.SuggestReplacement(snap, args[0], args[1], date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%sReplacements for %s %s on %s%s\n\n", colorBold, args[0], args[1], date.Format("Mon 2 Jan"), colorReset)
			if len(candidates) == 0 {
				fmt.Fprintf(out, "No credentialed provider has capacity left.\n\n")
				return nil
			}
			fmt.Fprintf(out, "%4s  %-28s %-16s %8s\n", "Rank", "Provider", "Preference", "Volume")
			for _, c := range candidates {
				fmt.Fprintf(out, "%4d  %-28s %-16s %8s\n", c.Rank, c.Provider, c.ShiftPreference, formatVolume(c.Volume))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// RateCmd creates the rate command
func RateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <user_id> <provider> <rating>",
		Short: "Record a provider's self-reported happiness (1-10)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Database == nil {
				return fmt.Errorf("no database configured: set database.kind to sheets or postgres")
			}

			rating, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("rating must be a number: %w", err)
			}

			saved, err := services.RecordHappiness(app.Ctx, app.Database, app.Logger, args[0], args[1], rating)
			if err != nil {
				return err
			}
			app.Snapshots().Invalidate()

			app.Logger.Debug("rate command complete", zap.String("provider", saved.Provider))
			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Recorded %d/10 for %s from %s\n\n", saved.Rating, saved.Provider, saved.UserID)
			return nil
		},
	}
}

// ImportRatingsCmd creates the importRatings command
func ImportRatingsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importRatings [form_id]",
		Short: "Import happiness ratings from the Google Form responses",
		Long: `Reads every response to the happiness form and records it as a rating.
The form ID defaults to ratingsFormID from the config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Database == nil {
				return fmt.Errorf("no database configured: set database.kind to sheets or postgres")
			}
			if app.FormsClient == nil {
				return fmt.Errorf("no ratings form configured: set ratingsFormID")
			}

			formID := app.Cfg.RatingsFormID
			if len(args) == 1 {
				formID = args[0]
			}

			result, err := services.ImportRatings(app.Ctx, app.FormsClient, app.Database, formID, app.Logger)
			if err != nil {
				return err
			}
			app.Snapshots().Invalidate()

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Imported %d rating(s), skipped %d\n\n", result.Imported, result.Skipped)
			return nil
		},
	}
}

// ViolationsCmd creates the violations command
func ViolationsCmd(app *AppContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "violations [provider]",
		Short: "Audit the schedule for credentialing, double-booking and consecutive-day breaches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Snapshot()
			if err != nil {
				return err
			}

			provider := ""
			if len(args) == 1 {
				provider = args[0]
			}
			violations, err := services.ProviderViolations(snap, provider)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), violations)
			}
			renderViolations(cmd.OutOrStdout(), snap, violations)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func renderViolations(out io.Writer, s *services.Snapshot, violations []analytics.Violation) {
	fmt.Fprintf(out, "\n%sSchedule audit - %s%s\n\n", colorBold, s.Period.Label(), colorReset)
	if len(violations) == 0 {
		fmt.Fprintf(out, "%s✓ No violations%s\n\n", colorGreen, colorReset)
		return
	}

	current := ""
	for _, v := range violations {
		if v.Provider != current {
			current = v.Provider
			fmt.Fprintf(out, "%s\n", current)
		}
		when := v.StartLabel
		if v.EndLabel != v.StartLabel {
			when += " - " + v.EndLabel
		}
		fmt.Fprintf(out, "  %s%-24s%s %-16s %s\n", colorRed, v.Kind, colorReset, when, v.Detail)
	}
	fmt.Fprintf(out, "\n%d violation(s)\n\n", len(violations))
}
