package services

import (
	"context"
	"errors"
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/formsclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/sheetsclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
)

var errMock = errors.New("mock failure")

// mockSourceReader serves grids by source location
type mockSourceReader struct {
	grids  map[string][][]interface{}
	failOn string
}

func (m *mockSourceReader) Read(ctx context.Context, src config.Source) ([][]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.Location == m.failOn {
		return nil, errMock
	}
	rows, ok := m.grids[src.Location]
	if !ok {
		return nil, errors.New("no such grid: " + src.Location)
	}
	return rows, nil
}

type mockGridReader struct {
	rows        [][]interface{}
	gotLocation string
	gotTab      string
}

func (m *mockGridReader) ReadGrid(ctx context.Context, location, tab string) ([][]interface{}, error) {
	m.gotLocation, m.gotTab = location, tab
	return m.rows, nil
}

// mockStore keeps records in memory, keyed by ID
type mockStore struct {
	providers map[string]db.Provider
	sites     map[string]db.Site
	entries   map[string]db.ScheduleEntry
	ratings   map[string]db.HappinessRating
	order     []string

	upsertErr error
	getErr    error
}

func newMockStore() *mockStore {
	return &mockStore{
		providers: map[string]db.Provider{},
		sites:     map[string]db.Site{},
		entries:   map[string]db.ScheduleEntry{},
		ratings:   map[string]db.HappinessRating{},
	}
}

func (m *mockStore) UpsertSchedule(ctx context.Context, providers []db.Provider, sites []db.Site, entries []db.ScheduleEntry) (*db.ScheduleUpsertResult, error) {
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}

	result := &db.ScheduleUpsertResult{}
	for _, p := range providers {
		if _, ok := m.providers[p.ID]; ok {
			result.Providers.Updated++
		} else {
			result.Providers.Inserted++
		}
		m.providers[p.ID] = p
	}
	for _, s := range sites {
		if _, ok := m.sites[s.ID]; ok {
			result.Sites.Updated++
		} else {
			result.Sites.Inserted++
		}
		m.sites[s.ID] = s
	}
	for _, e := range entries {
		key := e.ID
		if _, ok := m.entries[key]; ok {
			result.Entries.Updated++
		} else {
			result.Entries.Inserted++
			m.order = append(m.order, key)
		}
		m.entries[key] = e
	}
	return result, nil
}

func (m *mockStore) GetProviders(ctx context.Context) ([]db.Provider, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []db.Provider
	for _, p := range m.providers {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockStore) GetSites(ctx context.Context) ([]db.Site, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []db.Site
	for _, s := range m.sites {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStore) GetScheduleEntries(ctx context.Context) ([]db.ScheduleEntry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([]db.ScheduleEntry, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.entries[key])
	}
	return out, nil
}

func (m *mockStore) UpsertRating(ctx context.Context, rating db.HappinessRating) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.ratings[rating.ID] = rating
	return nil
}

func (m *mockStore) GetRatings(ctx context.Context) ([]db.HappinessRating, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []db.HappinessRating
	for _, r := range m.ratings {
		out = append(out, r)
	}
	return out, nil
}

type mockPublisher struct {
	published map[string]*sheetsclient.Report
	failOn    string
	sheetID   string
}

func (m *mockPublisher) PublishReport(spreadsheetID string, report *sheetsclient.Report) error {
	if report.Title == m.failOn {
		return errMock
	}
	if m.published == nil {
		m.published = map[string]*sheetsclient.Report{}
	}
	m.sheetID = spreadsheetID
	m.published[report.Title] = report
	return nil
}

// Fixture: October 2025. Oct 4 is a Saturday.
//
//	Dr. A works North MD1 on 1, 2, 4 and South MD2 on 4
//	Dr. B works North PM on 1, 2, 4 and South MD2 on 2
//	South MD2 on 1 is uncovered
func fixtureSources() *mockSourceReader {
	return &mockSourceReader{grids: map[string][][]interface{}{
		"schedule": {
			{"Day", "North - MD1", "North - PM", "South - MD2"},
			{1, "Dr. A", "Dr. B", "UNCOVERED"},
			{2, "Dr. A", "Dr. B", "Dr. B"},
			{4, "Dr. A", "Dr. B", "Dr. A"},
		},
		"volume": {
			{"facility_name", "Volume_MD1", "Volume_MD2", "Volume_PM"},
			{"North", 10, "NC", 5},
			{"South", "", 7, ""},
		},
		"contract": {
			{"Provider_Name", "Contract_type", "Shift_preference", "Total_shift_count", "Weekend_shift_count", "PM_shift_count"},
			{"Dr. A", "FT", "MD1", 3, 2, ""},
		},
		"credential": {
			{"Provider", "Credentialed Facilities"},
			{"Dr. A", "North, South"},
			{"Dr. B", "North"},
			{"Dr. C", "North"},
		},
		"coverage": {
			{"Facility", "Shift", "Coverage dates"},
			{"North", "MD1", "1-5"},
		},
	}}
}

func fixtureConfig() *config.Config {
	return &config.Config{
		ReportingPeriod:   config.ReportingPeriod{Year: 2025, Month: 10},
		ScheduleSource:    config.Source{Kind: config.SourceXLSX, Location: "schedule"},
		VolumeSource:      &config.Source{Kind: config.SourceXLSX, Location: "volume"},
		ContractSource:    &config.Source{Kind: config.SourceXLSX, Location: "contract"},
		CredentialSource:  &config.Source{Kind: config.SourceXLSX, Location: "credential"},
		CoverageSource:    &config.Source{Kind: config.SourceXLSX, Location: "coverage"},
		Database:          config.Database{Kind: config.DatabaseNone},
		ReportSheetID:     "report-sheet",
		DateInferenceRows: 10,
	}
}

func oct(d int) time.Time {
	return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC)
}

type mockFormReader struct {
	responses []formsclient.RatingResponse
	err       error
	gotFormID string
}

func (m *mockFormReader) GetRatingResponses(formID string) ([]formsclient.RatingResponse, error) {
	m.gotFormID = formID
	return m.responses, m.err
}

type sentEmail struct {
	to, subject, body string
}

type mockSender struct {
	sent   []sentEmail
	failOn string
}

func (m *mockSender) SendEmail(to, subject, body string) error {
	if to == m.failOn {
		return errMock
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}
