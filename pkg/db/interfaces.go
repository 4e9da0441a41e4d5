package db

import "context"

// UpsertCounts reports how many records an upsert created and replaced
type UpsertCounts struct {
	Inserted int
	Updated  int
}

// ScheduleUpsertResult reports upsert counts per table
type ScheduleUpsertResult struct {
	Providers UpsertCounts
	Sites     UpsertCounts
	Entries   UpsertCounts
}

// ScheduleStore persists resolved schedules. Records are keyed by their stable
// IDs, so ingesting the same sheet twice leaves the store unchanged.
type ScheduleStore interface {
	UpsertSchedule(ctx context.Context, providers []Provider, sites []Site, entries []ScheduleEntry) (*ScheduleUpsertResult, error)
	GetProviders(ctx context.Context) ([]Provider, error)
	GetSites(ctx context.Context) ([]Site, error)
	GetScheduleEntries(ctx context.Context) ([]ScheduleEntry, error)
}

// RatingStore persists happiness ratings, one per user and provider
type RatingStore interface {
	UpsertRating(ctx context.Context, rating HappinessRating) error
	GetRatings(ctx context.Context) ([]HappinessRating, error)
}

// Database defines the interface for all database operations.
// Both the SheetsSQL-backed db.DB and postgres.DB implement this interface.
type Database interface {
	ScheduleStore
	RatingStore
}
