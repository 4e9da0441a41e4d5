package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/grid"
)

const (
	ProviderIDPrefix = "prov-"
	SiteIDPrefix     = "site-"
	GapNote          = "gap coverage"
)

// entryNamespace scopes the name-based UUIDs of schedule entries
var entryNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("schedule-entry"))

var (
	nonSlugRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	dashRe    = regexp.MustCompile(`[\s-]+`)
	rnWordRe  = regexp.MustCompile(`\brn\b`)
)

// Slug lower-cases a name, strips punctuation and joins words with dashes
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugRe.ReplaceAllString(s, "")
	s = dashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func ProviderID(name string) string {
	return ProviderIDPrefix + Slug(name)
}

func SiteID(name string) string {
	return SiteIDPrefix + Slug(name)
}

// EntryID derives the schedule entry identifier from its natural key
func EntryID(providerID, siteID, date, shiftCode string) string {
	key := fmt.Sprintf("%s|%s|%s|%s", providerID, siteID, date, shiftCode)
	return uuid.NewSHA1(entryNamespace, []byte(key)).String()
}

// InferSpecialty guesses a provider's category from their name
func InferSpecialty(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "dr."):
		return "Physician"
	case strings.Contains(n, "nurse") || rnWordRe.MatchString(n):
		return "Nursing"
	case strings.Contains(n, "tech"):
		return "Technical"
	default:
		return "General Practice"
	}
}

// InferSiteType guesses a site's category from the shift code it first appeared under
func InferSiteType(shiftCode string) string {
	switch model.ClassifyShift(shiftCode) {
	case model.ShiftMD1:
		return "Primary Care"
	case model.ShiftMD2:
		return "Specialty Care"
	case model.ShiftPM:
		return "Practice Management"
	default:
		return "Healthcare Facility"
	}
}

// Resolve turns normalized facts into deduplicated providers, sites and entries.
// Providers and sites keep first-seen order and display name; entries keep fact
// order, with repeated (provider, site, date, shift) facts merged into one.
func Resolve(facts []grid.Fact) *model.Schedule {
	schedule := &model.Schedule{}
	providers := make(map[string]string) // id -> display name
	sites := make(map[string]string)
	entries := make(map[string]int)

	for _, f := range facts {
		providerID := ProviderID(f.Provider)
		siteID := SiteID(f.Site)
		if providerID == ProviderIDPrefix || siteID == SiteIDPrefix {
			continue
		}

		if _, ok := providers[providerID]; !ok {
			providers[providerID] = f.Provider
			schedule.Providers = append(schedule.Providers, model.Provider{
				ID:        providerID,
				Name:      f.Provider,
				Specialty: InferSpecialty(f.Provider),
			})
		}
		if _, ok := sites[siteID]; !ok {
			sites[siteID] = f.Site
			schedule.Sites = append(schedule.Sites, model.Site{
				ID:   siteID,
				Name: f.Site,
				Type: InferSiteType(f.ShiftCode),
			})
		}

		day := f.Date.Format("2006-01-02")
		id := EntryID(providerID, siteID, day, f.ShiftCode)
		if idx, ok := entries[id]; ok {
			if f.Gap {
				schedule.Entries[idx].Notes = appendNote(schedule.Entries[idx].Notes, GapNote)
			}
			continue
		}

		status := model.EntryStatus(f.Status)
		if !status.IsValid() {
			status = model.StatusScheduled
		}
		notes := f.Notes
		if f.Gap {
			notes = appendNote(notes, GapNote)
		}

		entries[id] = len(schedule.Entries)
		schedule.Entries = append(schedule.Entries, model.ScheduleEntry{
			ID:           id,
			ProviderID:   providerID,
			ProviderName: providers[providerID],
			SiteID:       siteID,
			SiteName:     sites[siteID],
			Date:         f.Date,
			ShiftCode:    f.ShiftCode,
			ShiftType:    model.ClassifyShift(f.ShiftCode),
			Status:       status,
			Notes:        notes,
			StartTime:    f.StartTime,
			EndTime:      f.EndTime,
		})
	}

	return schedule
}

func appendNote(notes, note string) string {
	if strings.Contains(notes, note) {
		return notes
	}
	if notes == "" {
		return note
	}
	return notes + "; " + note
}
