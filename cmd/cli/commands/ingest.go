package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/services"
)

// IngestCmd creates the ingest command
func IngestCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Read the schedule sheet and store providers, sites and entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Database == nil {
				return fmt.Errorf("no database configured: set database.kind to sheets or postgres")
			}

			result, err := services.IngestSchedule(app.Ctx, app.Database, app.Sources, app.Cfg, app.Logger)
			if err != nil {
				return err
			}
			app.Snapshots().Invalidate()

			grid := result.Schedule.Grid
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Schedule ingested\n\n")
			fmt.Fprintf(out, "Sheet:      %s (%s layout)\n", grid.Sheet, grid.Format)
			fmt.Fprintf(out, "Period:     %s\n", grid.Period.Label())
			fmt.Fprintf(out, "Uncovered:  %d slots\n\n", len(grid.Uncovered))

			fmt.Fprintf(out, "%-10s %9s %9s\n", "", "Inserted", "Updated")
			fmt.Fprintf(out, "%-10s %9d %9d\n", "Providers", result.Counts.Providers.Inserted, result.Counts.Providers.Updated)
			fmt.Fprintf(out, "%-10s %9d %9d\n", "Sites", result.Counts.Sites.Inserted, result.Counts.Sites.Updated)
			fmt.Fprintf(out, "%-10s %9d %9d\n\n", "Entries", result.Counts.Entries.Inserted, result.Counts.Entries.Updated)

			return nil
		},
	}
}
