package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/grid"
)

func TestLoadSchedule(t *testing.T) {
	result, err := LoadSchedule(context.Background(), fixtureSources(), fixtureConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, grid.FormatDayHeader, result.Grid.Format)
	assert.Equal(t, calendar.NewPeriod(2025, 10), result.Grid.Period)
	assert.Len(t, result.Grid.Uncovered, 1)

	schedule := result.Schedule
	assert.Len(t, schedule.Providers, 2)
	assert.Len(t, schedule.Sites, 2)
	assert.Len(t, schedule.Entries, 8)
	assert.Equal(t, "Dr. A", schedule.Entries[0].ProviderName)
	assert.Equal(t, oct(1), schedule.Entries[0].Date)
}

func TestLoadSchedule_Errors(t *testing.T) {
	t.Run("read failure", func(t *testing.T) {
		reader := fixtureSources()
		reader.failOn = "schedule"

		_, err := LoadSchedule(context.Background(), reader, fixtureConfig(), zap.NewNop())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errMock))
		assert.Contains(t, err.Error(), "failed to read schedule")
	})

	t.Run("unrecognized layout", func(t *testing.T) {
		reader := fixtureSources()
		reader.grids["schedule"] = [][]interface{}{{"foo", "bar"}, {"baz", "qux"}}

		_, err := LoadSchedule(context.Background(), reader, fixtureConfig(), zap.NewNop())
		require.Error(t, err)

		var formatErr *grid.FormatError
		require.True(t, errors.As(err, &formatErr))
		assert.Equal(t, "schedule", formatErr.Sheet)
	})
}

func TestIngestSchedule_Idempotent(t *testing.T) {
	store := newMockStore()
	reader := fixtureSources()
	cfg := fixtureConfig()

	first, err := IngestSchedule(context.Background(), store, reader, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 8, first.Counts.Entries.Inserted)
	assert.Equal(t, 0, first.Counts.Entries.Updated)
	assert.Equal(t, 2, first.Counts.Providers.Inserted)
	assert.Equal(t, 2, first.Counts.Sites.Inserted)

	second, err := IngestSchedule(context.Background(), store, reader, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Counts.Entries.Inserted)
	assert.Equal(t, 8, second.Counts.Entries.Updated)
	assert.Len(t, store.entries, 8)
}

func TestIngestSchedule_StoreError(t *testing.T) {
	store := newMockStore()
	store.upsertErr = errMock

	_, err := IngestSchedule(context.Background(), store, fixtureSources(), fixtureConfig(), zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMock))
	assert.Contains(t, err.Error(), "failed to store schedule")
}

func TestLoadStoredSchedule(t *testing.T) {
	store := newMockStore()
	_, err := IngestSchedule(context.Background(), store, fixtureSources(), fixtureConfig(), zap.NewNop())
	require.NoError(t, err)

	schedule, err := LoadStoredSchedule(context.Background(), store, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, schedule.Entries, 8)
	assert.Len(t, schedule.Providers, 2)

	store.getErr = errMock
	_, err = LoadStoredSchedule(context.Background(), store, zap.NewNop())
	assert.True(t, errors.Is(err, errMock))
}
