package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/analytics"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/services"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/grid"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// errBadRequest marks errors caused by the request's own parameters
var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Success: code < http.StatusBadRequest, Data: data})
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	var formatErr *grid.FormatError
	switch {
	case errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrProviderNotFound):
		return http.StatusNotFound
	case errors.Is(err, analytics.ErrUnsupportedShiftType),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errRatingsUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, err error) {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
		message = "something went wrong"
	} else {
		logger.Debug("Request rejected", zap.Int("status", code), zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Success: false, Message: message})
}
