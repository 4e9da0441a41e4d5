package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/api"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.Server.Addr
			}

			// Fail fast on a broken source instead of on the first request
			if _, err := app.Snapshot(); err != nil {
				return err
			}

			var ratings db.RatingStore
			if app.Database != nil {
				ratings = app.Database
			}

			handler := api.NewHandler(app.Snapshots(), ratings, app.Logger)
			router := api.NewRouter(app.Cfg.Server, handler, app.Logger)

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.Serve(ctx, addr, router, app.Logger)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (defaults to server.addr)")
	return cmd
}
