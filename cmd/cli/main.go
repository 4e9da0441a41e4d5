package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/cmd/cli/commands"
	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/formsclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/gmailclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/sheetsclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/xlsxclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/postgres"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/utils/logging"
)

var (
	env     string
	app     = &commands.AppContext{}
	closers []func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Provider schedule ingestion and analytics",
		Long: `Reads provider schedules from Google Sheets or .xlsx files, normalizes them into
shift entries and reports shift counts, patient volume, contract compliance,
consecutive-shift burden, satisfaction and replacement candidates.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			for _, c := range closers {
				c()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, prod, etc.)")
	_ = rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVar(&app.FromStore, "from-store", false, "Analyse the last ingested schedule instead of reading scheduleSource")

	rootCmd.AddCommand(commands.IngestCmd(app))
	rootCmd.AddCommand(commands.ShiftCountsCmd(app))
	rootCmd.AddCommand(commands.VolumeCmd(app))
	rootCmd.AddCommand(commands.ComplianceCmd(app))
	rootCmd.AddCommand(commands.ConsecutiveCmd(app))
	rootCmd.AddCommand(commands.SatisfactionCmd(app))
	rootCmd.AddCommand(commands.ReplacementCmd(app))
	rootCmd.AddCommand(commands.UtilizationCmd(app))
	rootCmd.AddCommand(commands.CoverageCmd(app))
	rootCmd.AddCommand(commands.ViolationsCmd(app))
	rootCmd.AddCommand(commands.RateCmd(app))
	rootCmd.AddCommand(commands.ImportRatingsCmd(app))
	rootCmd.AddCommand(commands.PublishReportCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, clients, and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Debug("Starting application", zap.String("environment", env))

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Sources.XLSX = xlsxclient.NewClient(app.Logger)

	if app.Cfg.NeedsGoogle() {
		oauthCfg, err := config.LoadOAuthClientWithEnv(env)
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}

		app.Logger.Debug("Initializing sheets client")
		app.SheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, env, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}
		app.Sources.Sheets = app.SheetsClient

		if app.Cfg.RatingsFormID != "" {
			app.Logger.Debug("Initializing forms client")
			app.FormsClient, err = formsclient.NewClient(app.Ctx, oauthCfg, app.SheetsClient.Token())
			if err != nil {
				return fmt.Errorf("failed to create forms client: %w", err)
			}
		}

		if len(app.Cfg.ReportRecipients) > 0 {
			app.Logger.Debug("Initializing gmail client")
			app.GmailClient, err = gmailclient.NewClient(app.Ctx, oauthCfg, app.SheetsClient.Token())
			if err != nil {
				return fmt.Errorf("failed to create gmail client: %w", err)
			}
		}
	}

	return initDatabase()
}

// initDatabase opens the configured store; "none" leaves app.Database nil
func initDatabase() error {
	switch app.Cfg.Database.Kind {
	case config.DatabaseSheets:
		app.Logger.Debug("Connecting to database", zap.String("spreadsheet_id", app.Cfg.Database.SheetID))
		database, err := db.Open(app.SheetsClient, app.Cfg.Database.SheetID)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.Database = database

	case config.DatabasePostgres:
		database, err := postgres.Open(app.Ctx, app.Cfg.Database.URL, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.Database = database
		closers = append(closers, database.Close)

	default:
		app.Logger.Debug("No database configured; ingest and rate are unavailable")
	}

	return nil
}
