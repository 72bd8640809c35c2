package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/fitjournal/internal/domain"
)

// WorkoutRequest is the payload for POST /api/workouts/. A missing
// performed_at defaults to the creation time.
type WorkoutRequest struct {
	Title           string     `json:"title"`
	Notes           *string    `json:"notes"`
	PerformedAt     *time.Time `json:"performed_at"`
	DurationMinutes *int       `json:"duration_minutes"`
}

// Validate ensures request correctness.
func (r WorkoutRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if r.DurationMinutes != nil && *r.DurationMinutes < 0 {
		return errors.New("duration_minutes must not be negative")
	}
	return nil
}

// WorkoutPatchRequest is the PATCH payload; absent fields stay untouched.
type WorkoutPatchRequest struct {
	Title           *string    `json:"title"`
	Notes           *string    `json:"notes"`
	PerformedAt     *time.Time `json:"performed_at"`
	DurationMinutes *int       `json:"duration_minutes"`
}

// Validate checks only the fields that are present.
func (r WorkoutPatchRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}
	if r.DurationMinutes != nil && *r.DurationMinutes < 0 {
		return errors.New("duration_minutes must not be negative")
	}
	return nil
}

// WorkoutView exposes a workout session record.
type WorkoutView struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Notes           *string   `json:"notes"`
	PerformedAt     time.Time `json:"performed_at"`
	DurationMinutes *int      `json:"duration_minutes"`
}

func newWorkoutHandler(repo domain.OwnedRepository[domain.WorkoutSession, domain.WorkoutSessionPatch]) *resourceHandler[domain.WorkoutSession, domain.WorkoutSessionPatch] {
	return newResourceHandler(repo, resourceBinding[domain.WorkoutSession, domain.WorkoutSessionPatch]{
		kind: "workout",
		create: func(r *http.Request) (domain.WorkoutSession, error) {
			var req WorkoutRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.WorkoutSession{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.WorkoutSession{}, err
			}
			performedAt := time.Now().UTC()
			if req.PerformedAt != nil {
				performedAt = req.PerformedAt.UTC()
			}
			return domain.WorkoutSession{
				Title:           req.Title,
				Notes:           req.Notes,
				PerformedAt:     performedAt,
				DurationMinutes: req.DurationMinutes,
			}, nil
		},
		patch: func(r *http.Request) (domain.WorkoutSessionPatch, error) {
			var req WorkoutPatchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.WorkoutSessionPatch{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.WorkoutSessionPatch{}, err
			}
			return domain.WorkoutSessionPatch{
				Title:           req.Title,
				Notes:           req.Notes,
				PerformedAt:     req.PerformedAt,
				DurationMinutes: req.DurationMinutes,
			}, nil
		},
		view: func(w domain.WorkoutSession) any {
			return WorkoutView{
				ID:              w.ID,
				Title:           w.Title,
				Notes:           w.Notes,
				PerformedAt:     w.PerformedAt,
				DurationMinutes: w.DurationMinutes,
			}
		},
	})
}
