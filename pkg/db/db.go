package db

import (
	"context"
	"fmt"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/sheetssql"
)

// DB provides database operations using SheetsSQL
type DB struct {
	ssql *sheetssql.DB
}

// NewDB creates a new database instance
func NewDB(ssql *sheetssql.DB) *DB {
	return &DB{
		ssql: ssql,
	}
}

// Open connects to the database spreadsheet, creating any missing tables
func Open(client sheetssql.SheetsClient, spreadsheetID string) (*DB, error) {
	schema, err := sheetssql.SchemaFromModels(Models()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	ssql, err := sheetssql.NewDB(client, spreadsheetID, schema)
	if err != nil {
		return nil, err
	}

	return NewDB(ssql), nil
}

// UpsertSchedule writes providers, sites and entries, replacing records with matching IDs
func (db *DB) UpsertSchedule(ctx context.Context, providers []Provider, sites []Site, entries []ScheduleEntry) (*ScheduleUpsertResult, error) {
	var result ScheduleUpsertResult
	var err error

	if result.Providers.Inserted, result.Providers.Updated, err = sheetssql.UpsertModels(db.ssql, providers); err != nil {
		return nil, fmt.Errorf("failed to upsert providers: %w", err)
	}
	if result.Sites.Inserted, result.Sites.Updated, err = sheetssql.UpsertModels(db.ssql, sites); err != nil {
		return nil, fmt.Errorf("failed to upsert sites: %w", err)
	}
	if result.Entries.Inserted, result.Entries.Updated, err = sheetssql.UpsertModels(db.ssql, entries); err != nil {
		return nil, fmt.Errorf("failed to upsert schedule entries: %w", err)
	}

	return &result, nil
}

// GetProviders retrieves all provider records
func (db *DB) GetProviders(ctx context.Context) ([]Provider, error) {
	providers, err := sheetssql.GetTableAs[Provider](db.ssql, "provider")
	if err != nil {
		return nil, fmt.Errorf("failed to get providers: %w", err)
	}
	return providers, nil
}

// GetSites retrieves all site records
func (db *DB) GetSites(ctx context.Context) ([]Site, error) {
	sites, err := sheetssql.GetTableAs[Site](db.ssql, "site")
	if err != nil {
		return nil, fmt.Errorf("failed to get sites: %w", err)
	}
	return sites, nil
}

// GetScheduleEntries retrieves all schedule entry records
func (db *DB) GetScheduleEntries(ctx context.Context) ([]ScheduleEntry, error) {
	entries, err := sheetssql.GetTableAs[ScheduleEntry](db.ssql, "schedule_entry")
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule entries: %w", err)
	}
	return entries, nil
}

// UpsertRating stores a rating, replacing the user's previous rating for the provider
func (db *DB) UpsertRating(ctx context.Context, rating HappinessRating) error {
	if _, _, err := sheetssql.UpsertModels(db.ssql, []HappinessRating{rating}); err != nil {
		return fmt.Errorf("failed to upsert happiness rating: %w", err)
	}
	return nil
}

// GetRatings retrieves all happiness rating records
func (db *DB) GetRatings(ctx context.Context) ([]HappinessRating, error) {
	ratings, err := sheetssql.GetTableAs[HappinessRating](db.ssql, "happiness_rating")
	if err != nil {
		return nil, fmt.Errorf("failed to get happiness ratings: %w", err)
	}
	return ratings, nil
}
