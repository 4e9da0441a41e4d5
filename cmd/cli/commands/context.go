package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/formsclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/gmailclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/sheetsclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/services"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
)

// snapshotTTL bounds how stale analytics may be within one interactive or serve session
const snapshotTTL = 5 * time.Minute

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg          *config.Config
	SheetsClient *sheetsclient.Client // nil unless something lives in Google Sheets
	FormsClient  *formsclient.Client  // nil unless ratingsFormID is set
	GmailClient  *gmailclient.Client  // nil unless reportRecipients is set
	Sources      services.Sources
	Database     db.Database // nil when database.kind is none
	Logger       *zap.Logger
	Ctx          context.Context
	FromStore    bool // analytics read the last ingested schedule instead of scheduleSource

	once      sync.Once
	snapshots *services.CachedSnapshot
}

// Snapshots returns the session's snapshot cache, creating it on first use
func (app *AppContext) Snapshots() *services.CachedSnapshot {
	app.once.Do(func() {
		app.snapshots = services.NewCachedSnapshot(app.loadSnapshot, snapshotTTL)
	})
	return app.snapshots
}

// Snapshot builds or reuses the analytics snapshot for the configured period
func (app *AppContext) Snapshot() (*services.Snapshot, error) {
	return app.Snapshots().Snapshot(app.Ctx)
}

func (app *AppContext) loadSnapshot(ctx context.Context) (*services.Snapshot, error) {
	if !app.FromStore {
		return services.BuildSnapshot(ctx, app.Sources, app.ratingSource(), app.Cfg, app.Logger)
	}
	if app.Database == nil {
		return nil, fmt.Errorf("no database configured: --from-store needs database.kind sheets or postgres")
	}
	return services.BuildStoredSnapshot(ctx, app.Database, app.Sources, app.Cfg, app.Logger)
}

func (app *AppContext) ratingSource() services.RatingSource {
	if app.Database == nil {
		return nil
	}
	return app.Database
}
