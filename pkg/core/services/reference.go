package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/reftables"
)

// ReferenceData holds the tables the analytics join against. Tables whose
// source is not configured are empty.
type ReferenceData struct {
	Volumes     []model.FacilityVolume
	Contracts   map[string]model.ContractLimit
	Credentials []model.Credential
	Coverage    []model.CoverageRequirement
}

// LoadReferenceData reads the configured reference tables concurrently.
// The first failure cancels the remaining reads.
func LoadReferenceData(ctx context.Context, reader SourceReader, cfg *config.Config, logger *zap.Logger) (*ReferenceData, error) {
	ref := &ReferenceData{Contracts: map[string]model.ContractLimit{}}

	g, gctx := errgroup.WithContext(ctx)

	load := func(name string, src *config.Source, parse func([][]interface{}) error) {
		if src == nil {
			logger.Debug("Reference table not configured", zap.String("table", name))
			return
		}
		g.Go(func() error {
			rows, err := reader.Read(gctx, *src)
			if err != nil {
				return fmt.Errorf("failed to read %s table: %w", name, err)
			}
			if err := parse(rows); err != nil {
				return fmt.Errorf("failed to parse %s table from %s: %w", name, sheetName(*src), err)
			}
			logger.Debug("Loaded reference table", zap.String("table", name), zap.Int("rows", len(rows)))
			return nil
		})
	}

	// each closure writes a distinct field, so no locking is needed
	load("volume", cfg.VolumeSource, func(rows [][]interface{}) (err error) {
		ref.Volumes, err = reftables.ParseVolumes(rows)
		return err
	})
	load("contract", cfg.ContractSource, func(rows [][]interface{}) (err error) {
		ref.Contracts, err = reftables.ParseContracts(rows)
		return err
	})
	load("credentialing", cfg.CredentialSource, func(rows [][]interface{}) (err error) {
		ref.Credentials, err = reftables.ParseCredentials(rows)
		return err
	})
	load("coverage", cfg.CoverageSource, func(rows [][]interface{}) (err error) {
		ref.Coverage, err = reftables.ParseCoverage(rows)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Reference data loaded",
		zap.Int("facilities", len(ref.Volumes)),
		zap.Int("contracts", len(ref.Contracts)),
		zap.Int("credentials", len(ref.Credentials)),
		zap.Int("coverage_rules", len(ref.Coverage)))

	return ref, nil
}
