package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/analytics"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/services"
)

const dateLayout = "2006-01-02"

var errRatingsUnavailable = errors.New("ratings storage is not configured")

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// snapshot loads the current snapshot, writing the error response on failure
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (*services.Snapshot, bool) {
	snap, err := h.snapshots.Snapshot(r.Context())
	if err != nil {
		writeError(h.logger, w, err)
		return nil, false
	}
	return snap, true
}

func (h *Handler) ShiftCounts(w http.ResponseWriter, r *http.Request) {
	if snap, ok := h.snapshot(w, r); ok {
		writeJSON(w, http.StatusOK, nonNil(snap.ShiftCounts))
	}
}

func (h *Handler) Volume(w http.ResponseWriter, r *http.Request) {
	if snap, ok := h.snapshot(w, r); ok {
		writeJSON(w, http.StatusOK, nonNil(snap.Volume))
	}
}

func (h *Handler) Compliance(w http.ResponseWriter, r *http.Request) {
	if snap, ok := h.snapshot(w, r); ok {
		writeJSON(w, http.StatusOK, nonNil(snap.Compliance))
	}
}

func (h *Handler) Coverage(w http.ResponseWriter, r *http.Request) {
	if snap, ok := h.snapshot(w, r); ok {
		writeJSON(w, http.StatusOK, snap.Coverage())
	}
}

// Utilization accepts ?top=N; without it every provider is listed
func (h *Handler) Utilization(w http.ResponseWriter, r *http.Request) {
	top := 0
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(h.logger, w, badRequest("top must be a non-negative integer, got %q", raw))
			return
		}
		top = n
	}

	if snap, ok := h.snapshot(w, r); ok {
		writeJSON(w, http.StatusOK, analytics.Utilization(snap.Entries, top))
	}
}

// Violations accepts ?provider= to narrow the audit to one provider
func (h *Handler) Violations(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	violations, err := services.ProviderViolations(snap, strings.TrimSpace(r.URL.Query().Get("provider")))
	if err != nil {
		writeError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, violations)
}

func (h *Handler) Consecutive(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	result, err := services.ProviderConsecutive(snap, chi.URLParam(r, "name"))
	if err != nil {
		writeError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Satisfaction(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	score, err := services.ProviderSatisfaction(snap, chi.URLParam(r, "name"))
	if err != nil {
		writeError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// Replacements takes ?facility=&shift=&date=YYYY-MM-DD
func (h *Handler) Replacements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	facility := strings.TrimSpace(q.Get("facility"))
	shift := strings.TrimSpace(q.Get("shift"))
	if facility == "" || shift == "" {
		writeError(h.logger, w, badRequest("facility and shift are required"))
		return
	}
	date, err := time.Parse(dateLayout, q.Get("date"))
	if err != nil {
		writeError(h.logger, w, badRequest("date must be YYYY-MM-DD, got %q", q.Get("date")))
		return
	}

	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	candidates, err := services.SuggestReplacement(snap, facility, shift, date)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(candidates))
}

type ratingRequest struct {
	UserID   string `json:"user_id"`
	Provider string `json:"provider"`
	Rating   int    `json:"rating"`
}

type ratingResponse struct {
	UserID    string    `json:"user_id"`
	Provider  string    `json:"provider"`
	Rating    int       `json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordRating stores a self-reported happiness rating and drops the cached
// snapshot so satisfaction scores pick it up
func (h *Handler) RecordRating(w http.ResponseWriter, r *http.Request) {
	if h.ratings == nil {
		writeError(h.logger, w, errRatingsUnavailable)
		return
	}

	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, badRequest("invalid JSON body: %v", err))
		return
	}

	rating, err := services.RecordHappiness(r.Context(), h.ratings, h.logger, req.UserID, req.Provider, req.Rating)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}
	h.snapshots.Invalidate()

	writeJSON(w, http.StatusCreated, ratingResponse{
		UserID:    rating.UserID,
		Provider:  rating.Provider,
		Rating:    rating.Rating,
		UpdatedAt: rating.UpdatedAt,
	})
}

// nonNil keeps empty lists as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
