package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
)

const dateLayout = "2006-01-02"

// upsertReturning makes an upsert report whether it inserted a new row;
// xmax is zero for a freshly inserted row version
const upsertReturning = ` RETURNING (xmax = 0)`

// UpsertSchedule writes providers, sites and entries in one transaction,
// replacing rows whose IDs already exist
func (d *DB) UpsertSchedule(ctx context.Context, providers []db.Provider, sites []db.Site, entries []db.ScheduleEntry) (*db.ScheduleUpsertResult, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var result db.ScheduleUpsertResult

	for _, p := range providers {
		inserted, err := upsertOne(ctx, tx, `
			INSERT INTO provider (id, name, specialty)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, specialty = EXCLUDED.specialty
		`, p.ID, p.Name, p.Specialty)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert provider %s: %w", p.ID, err)
		}
		count(&result.Providers, inserted)
	}

	for _, s := range sites {
		inserted, err := upsertOne(ctx, tx, `
			INSERT INTO site (id, name, type)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, type = EXCLUDED.type
		`, s.ID, s.Name, s.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert site %s: %w", s.ID, err)
		}
		count(&result.Sites, inserted)
	}

	for _, e := range entries {
		ingestedAt, err := time.Parse(time.RFC3339, e.IngestedAt)
		if err != nil {
			ingestedAt = time.Now().UTC()
		}
		inserted, err := upsertOne(ctx, tx, `
			INSERT INTO schedule_entry (id, provider_id, site_id, date, shift_code, shift_type, status, notes, start_time, end_time, ingested_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				status = EXCLUDED.status,
				notes = EXCLUDED.notes,
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time,
				ingested_at = EXCLUDED.ingested_at
		`, e.ID, e.ProviderID, e.SiteID, e.Date, e.ShiftCode, e.ShiftType, e.Status,
			nullable(e.Notes), nullable(e.StartTime), nullable(e.EndTime), ingestedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert schedule entry %s: %w", e.ID, err)
		}
		count(&result.Entries, inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit schedule: %w", err)
	}

	return &result, nil
}

func upsertOne(ctx context.Context, tx pgx.Tx, query string, args ...any) (bool, error) {
	var inserted bool
	if err := tx.QueryRow(ctx, query+upsertReturning, args...).Scan(&inserted); err != nil {
		return false, err
	}
	return inserted, nil
}

func count(c *db.UpsertCounts, inserted bool) {
	if inserted {
		c.Inserted++
	} else {
		c.Updated++
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetProviders retrieves all provider records
func (d *DB) GetProviders(ctx context.Context) ([]db.Provider, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name, specialty FROM provider ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}

	providers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Provider, error) {
		var p db.Provider
		err := row.Scan(&p.ID, &p.Name, &p.Specialty)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan providers: %w", err)
	}
	return providers, nil
}

// GetSites retrieves all site records
func (d *DB) GetSites(ctx context.Context) ([]db.Site, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name, type FROM site ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}

	sites, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Site, error) {
		var s db.Site
		err := row.Scan(&s.ID, &s.Name, &s.Type)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sites: %w", err)
	}
	return sites, nil
}

// GetScheduleEntries retrieves all schedule entry records ordered by date
func (d *DB) GetScheduleEntries(ctx context.Context) ([]db.ScheduleEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, provider_id, site_id, date, shift_code, shift_type, status, notes, start_time, end_time, ingested_at
		FROM schedule_entry
		ORDER BY date, site_id, shift_code, provider_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []db.ScheduleEntry
	for rows.Next() {
		var e db.ScheduleEntry
		var date, ingestedAt time.Time
		var notes, startTime, endTime *string
		if err := rows.Scan(&e.ID, &e.ProviderID, &e.SiteID, &date, &e.ShiftCode, &e.ShiftType, &e.Status,
			&notes, &startTime, &endTime, &ingestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		e.Date = date.Format(dateLayout)
		e.Notes = deref(notes)
		e.StartTime = deref(startTime)
		e.EndTime = deref(endTime)
		e.IngestedAt = ingestedAt.UTC().Format(time.RFC3339)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule entries: %w", err)
	}

	return entries, nil
}

// UpsertRating stores a rating, replacing the user's previous rating for the provider
func (d *DB) UpsertRating(ctx context.Context, rating db.HappinessRating) error {
	updatedAt, err := time.Parse(time.RFC3339, rating.UpdatedAt)
	if err != nil {
		updatedAt = time.Now().UTC()
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO happiness_rating (user_id, provider, rating, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, provider) DO UPDATE SET rating = EXCLUDED.rating, updated_at = EXCLUDED.updated_at
	`, rating.UserID, rating.Provider, rating.Rating, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert happiness rating: %w", err)
	}
	return nil
}

// GetRatings retrieves all happiness rating records
func (d *DB) GetRatings(ctx context.Context) ([]db.HappinessRating, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT user_id, provider, rating, updated_at
		FROM happiness_rating
		ORDER BY provider, user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query happiness ratings: %w", err)
	}
	defer rows.Close()

	var ratings []db.HappinessRating
	for rows.Next() {
		var r db.HappinessRating
		var updatedAt time.Time
		if err := rows.Scan(&r.UserID, &r.Provider, &r.Rating, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan happiness rating: %w", err)
		}
		r.ID = db.RatingKey(r.UserID, r.Provider)
		r.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
		ratings = append(ratings, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating happiness ratings: %w", err)
	}

	return ratings, nil
}
