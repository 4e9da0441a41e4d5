package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
)

const (
	MinRating = 1
	MaxRating = 10
)

var ErrInvalidRating = errors.New("invalid happiness rating")

// RecordHappiness stores a provider's self-reported rating. A user has one
// rating per provider; rating again replaces it.
func RecordHappiness(ctx context.Context, store db.RatingStore, logger *zap.Logger, userID, provider string, rating int) (model.HappinessRating, error) {
	userID = strings.TrimSpace(userID)
	provider = strings.TrimSpace(provider)

	if userID == "" || provider == "" {
		return model.HappinessRating{}, fmt.Errorf("%w: user and provider are required", ErrInvalidRating)
	}
	if rating < MinRating || rating > MaxRating {
		return model.HappinessRating{}, fmt.Errorf("%w: %d is outside %d-%d", ErrInvalidRating, rating, MinRating, MaxRating)
	}

	r := model.HappinessRating{
		UserID:    userID,
		Provider:  provider,
		Rating:    rating,
		UpdatedAt: time.Now().UTC(),
	}

	if err := store.UpsertRating(ctx, db.RatingFromModel(r)); err != nil {
		return model.HappinessRating{}, fmt.Errorf("failed to save happiness rating: %w", err)
	}

	logger.Info("Recorded happiness rating",
		zap.String("user_id", userID),
		zap.String("provider", provider),
		zap.Int("rating", rating))

	return r, nil
}
