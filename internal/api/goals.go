package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"example.com/fitjournal/internal/domain"
)

// GoalRequest is the payload for POST /api/goals/.
type GoalRequest struct {
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	TargetDate  *domain.Date `json:"target_date"`
	IsCompleted bool         `json:"is_completed"`
}

// Validate ensures request correctness.
func (r GoalRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// GoalPatchRequest is the PATCH payload; absent fields stay untouched.
type GoalPatchRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	TargetDate  *domain.Date `json:"target_date"`
	IsCompleted *bool        `json:"is_completed"`
}

// Validate checks only the fields that are present.
func (r GoalPatchRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}
	return nil
}

// GoalView exposes a goal record.
type GoalView struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	TargetDate  *domain.Date `json:"target_date"`
	IsCompleted bool         `json:"is_completed"`
}

func newGoalHandler(repo domain.OwnedRepository[domain.Goal, domain.GoalPatch]) *resourceHandler[domain.Goal, domain.GoalPatch] {
	return newResourceHandler(repo, resourceBinding[domain.Goal, domain.GoalPatch]{
		kind: "goal",
		create: func(r *http.Request) (domain.Goal, error) {
			var req GoalRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.Goal{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.Goal{}, err
			}
			return domain.Goal{
				Title:       req.Title,
				Description: req.Description,
				TargetDate:  req.TargetDate,
				IsCompleted: req.IsCompleted,
			}, nil
		},
		patch: func(r *http.Request) (domain.GoalPatch, error) {
			var req GoalPatchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.GoalPatch{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.GoalPatch{}, err
			}
			return domain.GoalPatch{
				Title:       req.Title,
				Description: req.Description,
				TargetDate:  req.TargetDate,
				IsCompleted: req.IsCompleted,
			}, nil
		},
		view: func(g domain.Goal) any {
			return GoalView{
				ID:          g.ID,
				Title:       g.Title,
				Description: g.Description,
				TargetDate:  g.TargetDate,
				IsCompleted: g.IsCompleted,
			}
		},
	})
}
