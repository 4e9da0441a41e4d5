package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/formsclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
)

// RatingFormReader lists the submissions of a happiness form, oldest first
type RatingFormReader interface {
	GetRatingResponses(formID string) ([]formsclient.RatingResponse, error)
}

// ImportResult counts what an import did with each form response
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportRatings records every usable form response as a happiness rating.
// Responses are applied oldest first so a respondent's latest answer per provider wins.
// Responses without an email, provider or a 1-10 rating are skipped.
func ImportRatings(ctx context.Context, forms RatingFormReader, store db.RatingStore, formID string, logger *zap.Logger) (ImportResult, error) {
	if formID == "" {
		return ImportResult{}, fmt.Errorf("no ratings form configured")
	}

	responses, err := forms.GetRatingResponses(formID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read rating form: %w", err)
	}

	var result ImportResult
	for _, resp := range responses {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rating, err := strconv.Atoi(strings.TrimSpace(resp.Rating))
		if err != nil {
			logger.Warn("Skipping form response with non-numeric rating",
				zap.String("response_id", resp.ResponseID),
				zap.String("rating", resp.Rating))
			result.Skipped++
			continue
		}

		if _, err := RecordHappiness(ctx, store, logger, resp.Respondent, resp.Provider, rating); err != nil {
			if errors.Is(err, ErrInvalidRating) {
				logger.Warn("Skipping invalid form response",
					zap.String("response_id", resp.ResponseID),
					zap.Error(err))
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Imported++
	}

	logger.Info("Imported happiness ratings",
		zap.String("form_id", formID),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	return result, nil
}
