package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/analytics"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/grid"
)

// Snapshot is one reporting period's schedule joined with its reference data
// and the aggregates every query needs. It is read-only once built.
type Snapshot struct {
	Period      calendar.Period
	WeekendRule string
	WeekendDays map[int]bool
	Schedule    *model.Schedule
	Reference   *ReferenceData

	// Entries, Uncovered and Days are limited to Period
	Entries   []model.ScheduleEntry
	Uncovered []grid.Slot
	Days      []time.Time

	ShiftCounts []analytics.ShiftCount
	Volume      []analytics.VolumeData
	Compliance  []analytics.ComplianceReport

	// happiness is the mean self-reported rating per folded provider name
	happiness map[string]int
}

// SnapshotInput is what NewSnapshot joins
type SnapshotInput struct {
	Schedule    *model.Schedule
	Grid        *grid.Result // nil when the schedule came from the store
	Reference   *ReferenceData
	Ratings     []model.HappinessRating
	Period      calendar.Period // wins over the sheet's inferred period when set
	WeekendRule string
}

// NewSnapshot computes shift counts, volume and compliance for the period
func NewSnapshot(in SnapshotInput) (*Snapshot, error) {
	ref := in.Reference
	if ref == nil {
		ref = &ReferenceData{Contracts: map[string]model.ContractLimit{}}
	}

	snap := &Snapshot{
		WeekendRule: in.WeekendRule,
		Schedule:    in.Schedule,
		Reference:   ref,
		happiness:   meanRatings(in.Ratings),
	}

	snap.Period = choosePeriod(in)
	if snap.Period.IsZero() {
		return nil, fmt.Errorf("cannot determine reporting period: schedule has no dated entries")
	}

	for _, e := range in.Schedule.Entries {
		if snap.Period.Contains(e.Date) {
			snap.Entries = append(snap.Entries, e)
		}
	}
	if in.Grid != nil {
		for _, u := range in.Grid.Uncovered {
			if snap.Period.Contains(u.Date) {
				snap.Uncovered = append(snap.Uncovered, u)
			}
		}
		for _, d := range in.Grid.Days {
			if snap.Period.Contains(d) {
				snap.Days = append(snap.Days, d)
			}
		}
	}

	weekendDays, err := snap.Period.WeekendDays(in.WeekendRule)
	if err != nil {
		return nil, err
	}
	snap.WeekendDays = weekendDays

	snap.ShiftCounts = analytics.CountShifts(snap.Entries, snap.Period, weekendDays)
	snap.Volume = analytics.AttributeVolume(snap.Entries, ref.Volumes)
	snap.Compliance = analytics.EvaluateCompliance(snap.ShiftCounts, ref.Contracts)

	return snap, nil
}

func choosePeriod(in SnapshotInput) calendar.Period {
	if !in.Period.IsZero() {
		return in.Period
	}
	if in.Grid != nil && !in.Grid.Period.IsZero() {
		return in.Grid.Period
	}
	var earliest time.Time
	for _, e := range in.Schedule.Entries {
		if earliest.IsZero() || e.Date.Before(earliest) {
			earliest = e.Date
		}
	}
	if earliest.IsZero() {
		return calendar.Period{}
	}
	return calendar.PeriodOf(earliest)
}

// meanRatings averages each provider's ratings across users, rounding half up
func meanRatings(ratings []model.HappinessRating) map[string]int {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range ratings {
		key := foldProvider(r.Provider)
		sums[key] += r.Rating
		counts[key]++
	}

	means := make(map[string]int, len(sums))
	for key, sum := range sums {
		means[key] = int(math.Floor(float64(sum)/float64(counts[key]) + 0.5))
	}
	return means
}

func foldProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Happiness returns the provider's mean self-reported rating, if any
func (s *Snapshot) Happiness(provider string) (int, bool) {
	h, ok := s.happiness[foldProvider(provider)]
	return h, ok
}

// TotalDays is the number of the period's days the schedule sheet spans, used
// as the denominator of consecutive-shift analysis
func (s *Snapshot) TotalDays() int {
	if len(s.Days) > 0 {
		return len(s.Days)
	}
	return s.Period.DaysInMonth()
}

// Coverage compares the facility coverage table with the schedule. Without a
// coverage table, the slots the sheet left empty are reported instead.
func (s *Snapshot) Coverage() analytics.CoverageSummary {
	if len(s.Reference.Coverage) > 0 {
		return analytics.SummarizeCoverage(analytics.ExpandRequirements(s.Reference.Coverage, s.Period), s.Entries)
	}

	var required []analytics.Slot
	for _, e := range s.Entries {
		if e.Counts() && e.ShiftType.IsCounted() {
			required = append(required, analytics.Slot{Facility: e.SiteName, ShiftType: e.ShiftType, Date: e.Date})
		}
	}
	for _, u := range s.Uncovered {
		if st := model.ClassifyShift(u.ShiftCode); st.IsCounted() {
			required = append(required, analytics.Slot{Facility: u.Site, ShiftType: st, Date: u.Date})
		}
	}
	return analytics.SummarizeCoverage(required, s.Entries)
}

// Violations audits the period's entries against credentialing, one shift a
// day and the consecutive-day limits
func (s *Snapshot) Violations() []analytics.Violation {
	return analytics.AuditSchedule(s.Entries, s.Reference.Credentials, analytics.DefaultConsecutiveLimits())
}

// RatingSource lists stored happiness ratings
type RatingSource interface {
	GetRatings(ctx context.Context) ([]db.HappinessRating, error)
}

// BuildSnapshot loads the schedule and reference tables from their sources,
// and ratings from the store when one is given
func BuildSnapshot(ctx context.Context, reader SourceReader, ratings RatingSource, cfg *config.Config, logger *zap.Logger) (*Snapshot, error) {
	loaded, err := LoadSchedule(ctx, reader, cfg, logger)
	if err != nil {
		return nil, err
	}
	return assembleSnapshot(ctx, loaded.Schedule, loaded.Grid, reader, ratings, cfg, logger)
}

// BuildStoredSnapshot builds the snapshot from the last ingested schedule
// instead of the schedule source. Reference tables are still read from their sources.
func BuildStoredSnapshot(ctx context.Context, store db.Database, reader SourceReader, cfg *config.Config, logger *zap.Logger) (*Snapshot, error) {
	schedule, err := LoadStoredSchedule(ctx, store, logger)
	if err != nil {
		return nil, err
	}
	if len(schedule.Entries) == 0 {
		return nil, fmt.Errorf("no stored schedule: run ingest first")
	}
	return assembleSnapshot(ctx, schedule, nil, reader, store, cfg, logger)
}

func assembleSnapshot(ctx context.Context, schedule *model.Schedule, sheet *grid.Result, reader SourceReader, ratings RatingSource, cfg *config.Config, logger *zap.Logger) (*Snapshot, error) {
	ref, err := LoadReferenceData(ctx, reader, cfg, logger)
	if err != nil {
		return nil, err
	}

	var stored []model.HappinessRating
	if ratings != nil {
		records, err := ratings.GetRatings(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load happiness ratings: %w", err)
		}
		for _, r := range records {
			stored = append(stored, r.ToModel())
		}
	}

	snap, err := NewSnapshot(SnapshotInput{
		Schedule:    schedule,
		Grid:        sheet,
		Reference:   ref,
		Ratings:     stored,
		Period:      cfg.Period(),
		WeekendRule: cfg.WeekendRule,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Snapshot built",
		zap.String("period", snap.Period.Label()),
		zap.Bool("from_store", sheet == nil),
		zap.Int("providers_counted", len(snap.ShiftCounts)),
		zap.Int("ratings", len(stored)))

	return snap, nil
}

// SnapshotLoader hands out the current snapshot
type SnapshotLoader interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	Invalidate()
}

// CachedSnapshot rebuilds the snapshot at most once per TTL, or after Invalidate
type CachedSnapshot struct {
	load func(ctx context.Context) (*Snapshot, error)
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	snap     *Snapshot
	loadedAt time.Time
}

func NewCachedSnapshot(load func(ctx context.Context) (*Snapshot, error), ttl time.Duration) *CachedSnapshot {
	return &CachedSnapshot{load: load, ttl: ttl, now: time.Now}
}

func (c *CachedSnapshot) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && c.now().Sub(c.loadedAt) < c.ttl {
		return c.snap, nil
	}

	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.snap, c.loadedAt = snap, c.now()
	return snap, nil
}

func (c *CachedSnapshot) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
}
