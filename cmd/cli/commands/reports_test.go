package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/services"
)

type fakeGrids map[string][][]interface{}

func (f fakeGrids) ReadGrid(ctx context.Context, location, tab string) ([][]interface{}, error) {
	return f[location], nil
}

func testApp() *AppContext {
	grids := fakeGrids{
		"schedule.xlsx": {
			{"Day", "North - MD1", "North - PM"},
			{1, "Dr. A", "Dr. B"},
			{2, "Dr. A", "UNCOVERED"},
			{3, "Dr. A", "Dr. B"},
		},
		"credentials.xlsx": {
			{"Provider", "Credentialed Facilities"},
			{"Dr. A", "North"},
			{"Dr. B", "North"},
		},
	}

	return &AppContext{
		Cfg: &config.Config{
			ReportingPeriod:   config.ReportingPeriod{Year: 2025, Month: 10},
			ScheduleSource:    config.Source{Kind: config.SourceXLSX, Location: "schedule.xlsx"},
			CredentialSource:  &config.Source{Kind: config.SourceXLSX, Location: "credentials.xlsx"},
			Database:          config.Database{Kind: config.DatabaseNone},
			DateInferenceRows: 10,
		},
		Sources: services.Sources{XLSX: grids},
		Logger:  zap.NewNop(),
		Ctx:     context.Background(),
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestShiftCountsCmd_JSON(t *testing.T) {
	out := execute(t, ShiftCountsCmd(testApp()), "--json")

	var counts []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	require.Len(t, counts, 2)
	assert.Equal(t, "Dr. A", counts[0]["Provider"])
	assert.Equal(t, 3.0, counts[0]["MD1"])
}

func TestReportCommands_Render(t *testing.T) {
	tests := []struct {
		name     string
		cmd      func(*AppContext) *cobra.Command
		args     []string
		contains []string
	}{
		{"shift counts", ShiftCountsCmd, nil, []string{"Shift counts - Oct 2025", "Dr. A"}},
		{"volume", VolumeCmd, nil, []string{"Volume - Oct 2025", "NC shifts"}},
		{"compliance", ComplianceCmd, nil, []string{"Contract compliance", "No limit", "0 of 2 providers exceed a limit"}},
		{"utilization", UtilizationCmd, []string{"--top", "1"}, []string{"Top 1 of 2 providers work 3 of 5 shifts (60.0%)"}},
		{"coverage", CoverageCmd, nil, []string{"Required: 6  Covered: 5", "2025-10-02", "North"}},
		{"consecutive", ConsecutiveCmd, []string{"Dr. A"}, []string{"Longest run:      3 days", "Oct 1"}},
		{"satisfaction", SatisfactionCmd, []string{"Dr. B"}, []string{"Satisfaction - Dr. B", "Self-reported", "Overall"}},
		{"replacement", ReplacementCmd, []string{"North", "PM", "2025-10-07"}, []string{"Dr. A", "Dr. B", "No contract"}},
		{"violations", ViolationsCmd, nil, []string{"Schedule audit - Oct 2025", "No violations"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := execute(t, tt.cmd(testApp()), tt.args...)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestProviderCommands_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     func(*AppContext) *cobra.Command
		args    []string
		errText string
	}{
		{"unknown provider", SatisfactionCmd, []string{"Dr. Z"}, "provider not found"},
		{"unknown provider violations", ViolationsCmd, []string{"Dr. Z"}, "provider not found"},
		{"bad date", ReplacementCmd, []string{"North", "PM", "7 Oct"}, "YYYY-MM-DD"},
		{"bad shift", ReplacementCmd, []string{"North", "Night", "2025-10-07"}, "unsupported shift type"},
		{"rate without database", RateCmd, []string{"u1", "Dr. A", "5"}, "no database configured"},
		{"ingest without database", IngestCmd, nil, "no database configured"},
		{"import without database", ImportRatingsCmd, []string{"form123"}, "no database configured"},
		{"publish without report sheet", PublishReportCmd, nil, "no report sheet configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd(testApp())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestAppContext_FromStoreNeedsDatabase(t *testing.T) {
	app := testApp()
	app.FromStore = true

	cmd := ShiftCountsCmd(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from-store")
}

func TestAppContext_SnapshotIsCached(t *testing.T) {
	app := testApp()

	first, err := app.Snapshot()
	require.NoError(t, err)
	second, err := app.Snapshot()
	require.NoError(t, err)
	assert.Same(t, first, second)

	app.Snapshots().Invalidate()
	third, err := app.Snapshot()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}
