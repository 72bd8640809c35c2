package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"example.com/fitjournal/internal/domain"
)

// ExerciseRequest is the payload for POST /api/exercises/.
type ExerciseRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
}

// Validate ensures request correctness.
func (r ExerciseRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if !domain.ValidCategory(r.Category) {
		return errors.New("category must be one of Cardio, Strength, Flexibility")
	}
	return nil
}

// ExercisePatchRequest is the PATCH payload; absent fields stay untouched.
type ExercisePatchRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

// Validate checks only the fields that are present.
func (r ExercisePatchRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.Category != nil && !domain.ValidCategory(*r.Category) {
		return errors.New("category must be one of Cardio, Strength, Flexibility")
	}
	return nil
}

// ExerciseView exposes an exercise record.
type ExerciseView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
}

func newExerciseHandler(repo domain.OwnedRepository[domain.Exercise, domain.ExercisePatch]) *resourceHandler[domain.Exercise, domain.ExercisePatch] {
	return newResourceHandler(repo, resourceBinding[domain.Exercise, domain.ExercisePatch]{
		kind: "exercise",
		create: func(r *http.Request) (domain.Exercise, error) {
			var req ExerciseRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.Exercise{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.Exercise{}, err
			}
			return domain.Exercise{Name: req.Name, Category: req.Category, Description: req.Description}, nil
		},
		patch: func(r *http.Request) (domain.ExercisePatch, error) {
			var req ExercisePatchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.ExercisePatch{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.ExercisePatch{}, err
			}
			return domain.ExercisePatch{Name: req.Name, Category: req.Category, Description: req.Description}, nil
		},
		view: func(e domain.Exercise) any {
			return ExerciseView{ID: e.ID, Name: e.Name, Category: e.Category, Description: e.Description}
		},
	})
}
