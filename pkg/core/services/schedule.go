package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/resolver"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/grid"
)

// ScheduleResult is a schedule sheet after normalization and resolution
type ScheduleResult struct {
	Grid     *grid.Result
	Schedule *model.Schedule
}

// LoadSchedule reads the configured schedule source, detects its layout and
// resolves it into providers, sites and entries
func LoadSchedule(ctx context.Context, reader SourceReader, cfg *config.Config, logger *zap.Logger) (*ScheduleResult, error) {
	src := cfg.ScheduleSource
	logger.Debug("Loading schedule",
		zap.String("kind", src.Kind),
		zap.String("location", src.Location),
		zap.String("tab", src.Tab))

	rows, err := reader.Read(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule: %w", err)
	}

	result, err := grid.Normalize(sheetName(src), rows, grid.Options{
		DefaultPeriod: cfg.Period(),
		InferenceRows: cfg.DateInferenceRows,
	})
	if err != nil {
		return nil, err
	}

	schedule := resolver.Resolve(result.Facts)

	logger.Info("Schedule loaded",
		zap.String("format", string(result.Format)),
		zap.String("period", result.Period.Label()),
		zap.Int("facts", len(result.Facts)),
		zap.Int("uncovered", len(result.Uncovered)),
		zap.Int("providers", len(schedule.Providers)),
		zap.Int("sites", len(schedule.Sites)),
		zap.Int("entries", len(schedule.Entries)))

	return &ScheduleResult{Grid: result, Schedule: schedule}, nil
}

// IngestResult reports what an ingest run wrote
type IngestResult struct {
	Schedule *ScheduleResult
	Counts   *db.ScheduleUpsertResult
}

// IngestSchedule loads the schedule and upserts it into the store. Records are
// keyed by stable IDs, so re-ingesting the same sheet changes nothing.
func IngestSchedule(ctx context.Context, store db.ScheduleStore, reader SourceReader, cfg *config.Config, logger *zap.Logger) (*IngestResult, error) {
	loaded, err := LoadSchedule(ctx, reader, cfg, logger)
	if err != nil {
		return nil, err
	}

	providers, sites, entries := db.FromSchedule(loaded.Schedule, time.Now())

	counts, err := store.UpsertSchedule(ctx, providers, sites, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to store schedule: %w", err)
	}

	logger.Info("Schedule ingested",
		zap.Int("entries_inserted", counts.Entries.Inserted),
		zap.Int("entries_updated", counts.Entries.Updated),
		zap.Int("providers_inserted", counts.Providers.Inserted),
		zap.Int("sites_inserted", counts.Sites.Inserted))

	return &IngestResult{Schedule: loaded, Counts: counts}, nil
}

// LoadStoredSchedule rebuilds the schedule from previously ingested records
func LoadStoredSchedule(ctx context.Context, store db.ScheduleStore, logger *zap.Logger) (*model.Schedule, error) {
	providers, err := store.GetProviders(ctx)
	if err != nil {
		return nil, err
	}
	sites, err := store.GetSites(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := store.GetScheduleEntries(ctx)
	if err != nil {
		return nil, err
	}

	schedule, err := db.ToSchedule(providers, sites, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild stored schedule: %w", err)
	}

	logger.Debug("Loaded stored schedule", zap.Int("entries", len(schedule.Entries)))
	return schedule, nil
}
