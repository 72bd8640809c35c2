package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"example.com/fitjournal/internal/domain"
)

// ProgressRequest is the payload for POST /api/progress/.
type ProgressRequest struct {
	Date        *domain.Date `json:"date"`
	MetricName  string       `json:"metric_name"`
	MetricValue *float64     `json:"metric_value"`
	Unit        *string      `json:"unit"`
}

// Validate ensures request correctness.
func (r ProgressRequest) Validate() error {
	if r.Date == nil {
		return errors.New("date is required")
	}
	if strings.TrimSpace(r.MetricName) == "" {
		return errors.New("metric_name is required")
	}
	if r.MetricValue == nil {
		return errors.New("metric_value is required")
	}
	return nil
}

// ProgressPatchRequest is the PATCH payload; absent fields stay untouched.
type ProgressPatchRequest struct {
	Date        *domain.Date `json:"date"`
	MetricName  *string      `json:"metric_name"`
	MetricValue *float64     `json:"metric_value"`
	Unit        *string      `json:"unit"`
}

// Validate checks only the fields that are present.
func (r ProgressPatchRequest) Validate() error {
	if r.MetricName != nil && strings.TrimSpace(*r.MetricName) == "" {
		return errors.New("metric_name must not be empty")
	}
	return nil
}

// ProgressView exposes a progress entry.
type ProgressView struct {
	ID          int64       `json:"id"`
	Date        domain.Date `json:"date"`
	MetricName  string      `json:"metric_name"`
	MetricValue float64     `json:"metric_value"`
	Unit        *string     `json:"unit"`
}

func newProgressHandler(repo domain.OwnedRepository[domain.Progress, domain.ProgressPatch]) *resourceHandler[domain.Progress, domain.ProgressPatch] {
	return newResourceHandler(repo, resourceBinding[domain.Progress, domain.ProgressPatch]{
		kind: "progress",
		create: func(r *http.Request) (domain.Progress, error) {
			var req ProgressRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.Progress{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.Progress{}, err
			}
			return domain.Progress{
				Date:        *req.Date,
				MetricName:  req.MetricName,
				MetricValue: *req.MetricValue,
				Unit:        req.Unit,
			}, nil
		},
		patch: func(r *http.Request) (domain.ProgressPatch, error) {
			var req ProgressPatchRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return domain.ProgressPatch{}, errBadBody
			}
			if err := req.Validate(); err != nil {
				return domain.ProgressPatch{}, err
			}
			return domain.ProgressPatch{
				Date:        req.Date,
				MetricName:  req.MetricName,
				MetricValue: req.MetricValue,
				Unit:        req.Unit,
			}, nil
		},
		view: func(p domain.Progress) any {
			return ProgressView{
				ID:          p.ID,
				Date:        p.Date,
				MetricName:  p.MetricName,
				MetricValue: p.MetricValue,
				Unit:        p.Unit,
			}
		},
	})
}
