package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/fitjournal/internal/domain"
)

// PlanRequest is the payload for POST /api/plans/.
type PlanRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Validate ensures request correctness.
func (r PlanRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// PlanPatchRequest is the PATCH payload; absent fields stay untouched.
type PlanPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Validate checks only the fields that are present.
func (r PlanPatchRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}
	return nil
}

// PlanView exposes a workout plan record.
type PlanView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func newPlanHandler(repo domain.OwnedRepository[domain.WorkoutPlan, domain.WorkoutPlanPatch]) *resourceHandler[domain.WorkoutPlan, domain.WorkoutPlanPatch] {
	return newResourceHandler(repo, resourceBinding[domain.WorkoutPlan, domain.WorkoutPlanPatch]{
		kind: "plan",
		create: func(r *http.Request) (domain.WorkoutPlan, error) {
			var req PlanRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.WorkoutPlan{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.WorkoutPlan{}, err
			}
			return domain.WorkoutPlan{
				Title:       req.Title,
				Description: req.Description,
				CreatedAt:   time.Now().UTC(),
			}, nil
		},
		patch: func(r *http.Request) (domain.WorkoutPlanPatch, error) {
			var req PlanPatchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.WorkoutPlanPatch{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.WorkoutPlanPatch{}, err
			}
			return domain.WorkoutPlanPatch{Title: req.Title, Description: req.Description}, nil
		},
		view: func(p domain.WorkoutPlan) any {
			return PlanView{
				ID:          p.ID,
				Title:       p.Title,
				Description: p.Description,
				CreatedAt:   p.CreatedAt,
			}
		},
	})
}
