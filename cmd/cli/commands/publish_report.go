package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/services"
)

// PublishReportCmd creates the publishReport command
func PublishReportCmd(app *AppContext) *cobra.Command {
	var email bool

	cmd := &cobra.Command{
		Use:   "publishReport",
		Short: "Write the compliance and shift-count tables to the report sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.SheetsClient == nil || app.Cfg.ReportSheetID == "" {
				return fmt.Errorf("no report sheet configured: set reportSheetID")
			}
			if email && app.GmailClient == nil {
				return fmt.Errorf("no recipients configured: set reportRecipients")
			}

			snap, err := app.Snapshot()
			if err != nil {
				return err
			}

			tabs, err := services.PublishReport(app.Ctx, app.SheetsClient, app.Cfg, snap, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Published %d tabs to %s\n", len(tabs), app.Cfg.ReportSheetID)
			for _, tab := range tabs {
				fmt.Fprintf(out, "  - %s\n", tab)
			}

			if email {
				sent, err := services.NotifyCompliance(app.Ctx, app.GmailClient, app.Cfg.ReportRecipients, snap, app.Logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Emailed compliance summary to %d recipient(s)\n", sent)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&email, "email", false, "Email a compliance summary to reportRecipients")
	return cmd
}
