package model

import "time"

type EntryStatus string

const (
	StatusScheduled EntryStatus = "scheduled"
	StatusConfirmed EntryStatus = "confirmed"
	StatusCancelled EntryStatus = "cancelled"
)

func (s EntryStatus) IsValid() bool {
	return s == StatusScheduled || s == StatusConfirmed || s == StatusCancelled
}

// Provider represents a clinician appearing on the schedule
type Provider struct {
	ID        string
	Name      string
	Specialty string
}

// Site represents a facility where shifts are worked
type Site struct {
	ID   string
	Name string
	Type string
}

// ScheduleEntry is one provider working one shift at one site on one date.
// Provider and site names are carried alongside their IDs so analytics can
// report without a lookup.
type ScheduleEntry struct {
	ID           string
	ProviderID   string
	ProviderName string
	SiteID       string
	SiteName     string
	Date         time.Time
	ShiftCode    string
	ShiftType    ShiftType
	Status       EntryStatus
	Notes        string
	StartTime    string // optional, "HH:MM"
	EndTime      string // optional, "HH:MM"
}

// Counts reports whether the entry participates in aggregations
func (e ScheduleEntry) Counts() bool {
	return e.Status != StatusCancelled
}

// Schedule is the resolved output of one ingested sheet
type Schedule struct {
	Providers []Provider
	Sites     []Site
	Entries   []ScheduleEntry
}

// ProviderByName finds a provider by exact display name
func (s *Schedule) ProviderByName(name string) (Provider, bool) {
	for _, p := range s.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return Provider{}, false
}

// ContractLimit holds a provider's contractual caps for the reporting month.
// A nil cap means the source cell was blank or unreadable.
type ContractLimit struct {
	Provider     string
	ContractType string
	Preferences  []ShiftType
	TotalCap     *int
	WeekendCap   *int
	PMCap        *int
}

// Prefers reports whether the shift type is listed in the contract preferences
func (c ContractLimit) Prefers(st ShiftType) bool {
	for _, p := range c.Preferences {
		if p == st {
			return true
		}
	}
	return false
}

// FacilityVolume is the per-shift patient volume of a facility. Nil means "NC".
type FacilityVolume struct {
	Facility string
	MD1      *float64
	MD2      *float64
	PM       *float64
}

// ForShift returns the volume for a shift type, or nil when unknown
func (v FacilityVolume) ForShift(st ShiftType) *float64 {
	switch st {
	case ShiftMD1:
		return v.MD1
	case ShiftMD2:
		return v.MD2
	case ShiftPM:
		return v.PM
	default:
		return nil
	}
}

// Credential lists the facilities a provider may work at
type Credential struct {
	Provider   string
	Facilities []string
}

// CoverageRequirement lists the days of the month a facility needs a shift staffed
type CoverageRequirement struct {
	Facility  string
	ShiftType ShiftType
	Days      []int
}

// HappinessRating is a provider's self-reported rating, keyed by user account
type HappinessRating struct {
	UserID    string
	Provider  string
	Rating    int
	UpdatedAt time.Time
}
