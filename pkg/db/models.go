package db

import (
	"fmt"
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

// Provider represents a database provider record
type Provider struct {
	ID        string `ssql_header:"id" ssql_type:"text"`
	Name      string `ssql_header:"name" ssql_type:"text"`
	Specialty string `ssql_header:"specialty" ssql_type:"text"`
}

// Site represents a database site record
type Site struct {
	ID   string `ssql_header:"id" ssql_type:"text"`
	Name string `ssql_header:"name" ssql_type:"text"`
	Type string `ssql_header:"type" ssql_type:"text"`
}

// ScheduleEntry represents a database schedule entry record
type ScheduleEntry struct {
	ID         string `ssql_header:"id" ssql_type:"uuid"`
	ProviderID string `ssql_header:"provider_id" ssql_type:"text"`
	SiteID     string `ssql_header:"site_id" ssql_type:"text"`
	Date       string `ssql_header:"date" ssql_type:"date"`
	ShiftCode  string `ssql_header:"shift_code" ssql_type:"text"`
	ShiftType  string `ssql_header:"shift_type" ssql_type:"text"`
	Status     string `ssql_header:"status" ssql_type:"text"`
	Notes      string `ssql_header:"notes" ssql_type:"text"`
	StartTime  string `ssql_header:"start_time" ssql_type:"text"`
	EndTime    string `ssql_header:"end_time" ssql_type:"text"`
	IngestedAt string `ssql_header:"ingested_at" ssql_type:"timestamp"`
}

// HappinessRating represents a database happiness rating record.
// ID is derived from the user and provider so each user holds one rating per provider.
type HappinessRating struct {
	ID        string `ssql_header:"id" ssql_type:"text"`
	UserID    string `ssql_header:"user_id" ssql_type:"text"`
	Provider  string `ssql_header:"provider" ssql_type:"text"`
	Rating    int    `ssql_header:"rating" ssql_type:"int"`
	UpdatedAt string `ssql_header:"updated_at" ssql_type:"timestamp"`
}

// Models lists the record types in table order, for sheetssql.SchemaFromModels
func Models() []interface{} {
	return []interface{}{Provider{}, Site{}, ScheduleEntry{}, HappinessRating{}}
}

// RatingKey is the record ID of a user's rating for a provider
func RatingKey(userID, provider string) string {
	return userID + "|" + provider
}

// FromSchedule flattens a resolved schedule into database records
func FromSchedule(schedule *model.Schedule, ingestedAt time.Time) ([]Provider, []Site, []ScheduleEntry) {
	providers := make([]Provider, 0, len(schedule.Providers))
	for _, p := range schedule.Providers {
		providers = append(providers, Provider{ID: p.ID, Name: p.Name, Specialty: p.Specialty})
	}

	sites := make([]Site, 0, len(schedule.Sites))
	for _, s := range schedule.Sites {
		sites = append(sites, Site{ID: s.ID, Name: s.Name, Type: s.Type})
	}

	stamp := ingestedAt.UTC().Format(timestampLayout)
	entries := make([]ScheduleEntry, 0, len(schedule.Entries))
	for _, e := range schedule.Entries {
		entries = append(entries, ScheduleEntry{
			ID:         e.ID,
			ProviderID: e.ProviderID,
			SiteID:     e.SiteID,
			Date:       e.Date.Format(dateLayout),
			ShiftCode:  e.ShiftCode,
			ShiftType:  string(e.ShiftType),
			Status:     string(e.Status),
			Notes:      e.Notes,
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
			IngestedAt: stamp,
		})
	}

	return providers, sites, entries
}

// ToSchedule rebuilds a schedule from stored records. Entries whose provider
// or site is unknown keep their IDs but no display name.
func ToSchedule(providers []Provider, sites []Site, entries []ScheduleEntry) (*model.Schedule, error) {
	schedule := &model.Schedule{}

	providerNames := make(map[string]string, len(providers))
	for _, p := range providers {
		providerNames[p.ID] = p.Name
		schedule.Providers = append(schedule.Providers, model.Provider{ID: p.ID, Name: p.Name, Specialty: p.Specialty})
	}

	siteNames := make(map[string]string, len(sites))
	for _, s := range sites {
		siteNames[s.ID] = s.Name
		schedule.Sites = append(schedule.Sites, model.Site{ID: s.ID, Name: s.Name, Type: s.Type})
	}

	for _, e := range entries {
		date, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %s has invalid date %q: %w", e.ID, e.Date, err)
		}
		status := model.EntryStatus(e.Status)
		if !status.IsValid() {
			status = model.StatusScheduled
		}
		schedule.Entries = append(schedule.Entries, model.ScheduleEntry{
			ID:           e.ID,
			ProviderID:   e.ProviderID,
			ProviderName: providerNames[e.ProviderID],
			SiteID:       e.SiteID,
			SiteName:     siteNames[e.SiteID],
			Date:         calendar.DayKey(date),
			ShiftCode:    e.ShiftCode,
			ShiftType:    model.ClassifyShift(e.ShiftCode),
			Status:       status,
			Notes:        e.Notes,
			StartTime:    e.StartTime,
			EndTime:      e.EndTime,
		})
	}

	return schedule, nil
}

// RatingFromModel converts a domain rating into its record
func RatingFromModel(r model.HappinessRating) HappinessRating {
	return HappinessRating{
		ID:        RatingKey(r.UserID, r.Provider),
		UserID:    r.UserID,
		Provider:  r.Provider,
		Rating:    r.Rating,
		UpdatedAt: r.UpdatedAt.UTC().Format(timestampLayout),
	}
}

// ToModel converts a rating record into the domain type; an unreadable timestamp is left zero
func (r HappinessRating) ToModel() model.HappinessRating {
	updated, _ := time.Parse(timestampLayout, r.UpdatedAt)
	return model.HappinessRating{
		UserID:    r.UserID,
		Provider:  r.Provider,
		Rating:    r.Rating,
		UpdatedAt: updated,
	}
}
