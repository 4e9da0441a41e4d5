package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

func TestLoadReferenceData(t *testing.T) {
	ref, err := LoadReferenceData(context.Background(), fixtureSources(), fixtureConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, ref.Volumes, 2)
	assert.Contains(t, ref.Contracts, "Dr. A")
	assert.Len(t, ref.Credentials, 3)
	assert.Equal(t, []model.CoverageRequirement{
		{Facility: "North", ShiftType: model.ShiftMD1, Days: []int{1, 2, 3, 4, 5}},
	}, ref.Coverage)
}

func TestLoadReferenceData_UnconfiguredTablesAreEmpty(t *testing.T) {
	cfg := fixtureConfig()
	cfg.VolumeSource = nil
	cfg.ContractSource = nil
	cfg.CredentialSource = nil
	cfg.CoverageSource = nil

	ref, err := LoadReferenceData(context.Background(), fixtureSources(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Empty(t, ref.Volumes)
	assert.NotNil(t, ref.Contracts)
	assert.Empty(t, ref.Contracts)
	assert.Empty(t, ref.Credentials)
	assert.Empty(t, ref.Coverage)
}

func TestLoadReferenceData_Errors(t *testing.T) {
	t.Run("read failure", func(t *testing.T) {
		reader := fixtureSources()
		reader.failOn = "credential"

		_, err := LoadReferenceData(context.Background(), reader, fixtureConfig(), zap.NewNop())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errMock))
		assert.Contains(t, err.Error(), "credentialing table")
	})

	t.Run("parse failure", func(t *testing.T) {
		reader := fixtureSources()
		reader.grids["volume"] = [][]interface{}{{"name", "value"}, {"x", "1"}}

		_, err := LoadReferenceData(context.Background(), reader, fixtureConfig(), zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse volume table from volume")
	})
}
