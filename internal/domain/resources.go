package domain

import (
	"context"
	"time"
)

// Exercise categories accepted by the API.
const (
	CategoryCardio      = "Cardio"
	CategoryStrength    = "Strength"
	CategoryFlexibility = "Flexibility"
)

// ValidCategory reports whether the given exercise category is one of the
// accepted values.
func ValidCategory(category string) bool {
	switch category {
	case CategoryCardio, CategoryStrength, CategoryFlexibility:
		return true
	}
	return false
}

// Exercise is a reusable movement definition in a user's catalogue.
type Exercise struct {
	ID          int64
	OwnerID     int64
	Name        string
	Category    string
	Description *string
}

// ExercisePatch holds a partial update; nil fields are left untouched.
type ExercisePatch struct {
	Name        *string
	Category    *string
	Description *string
}

// Goal is a target a user is working towards.
type Goal struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description *string
	TargetDate  *Date
	IsCompleted bool
}

// GoalPatch holds a partial update; nil fields are left untouched.
type GoalPatch struct {
	Title       *string
	Description *string
	TargetDate  *Date
	IsCompleted *bool
}

// Progress is a single measurement of a tracked metric.
type Progress struct {
	ID          int64
	OwnerID     int64
	Date        Date
	MetricName  string
	MetricValue float64
	Unit        *string
}

// ProgressPatch holds a partial update; nil fields are left untouched.
type ProgressPatch struct {
	Date        *Date
	MetricName  *string
	MetricValue *float64
	Unit        *string
}

// WorkoutSession records a completed workout.
type WorkoutSession struct {
	ID              int64
	OwnerID         int64
	Title           string
	Notes           *string
	PerformedAt     time.Time
	DurationMinutes *int
}

// WorkoutSessionPatch holds a partial update; nil fields are left untouched.
type WorkoutSessionPatch struct {
	Title           *string
	Notes           *string
	PerformedAt     *time.Time
	DurationMinutes *int
}

// WorkoutPlan is a named workout template a user can build sessions from.
type WorkoutPlan struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description *string
	CreatedAt   time.Time
}

// WorkoutPlanPatch holds a partial update; nil fields are left untouched.
type WorkoutPlanPatch struct {
	Title       *string
	Description *string
}

// OwnedRepository is the ownership-scoped persistence contract shared by every
// resource kind. Every operation is filtered by the authenticated owner:
// a missing row and a row owned by someone else both surface as ErrNotFound.
type OwnedRepository[T any, P any] interface {
	// Create persists item for ownerID and returns the stored record with its
	// assigned id. The owner always comes from this parameter, never from item.
	Create(ctx context.Context, ownerID int64, item T) (*T, error)
	// List returns all records owned by ownerID in the kind-specific order.
	List(ctx context.Context, ownerID int64) ([]T, error)
	// Get fetches one record by id, scoped to ownerID.
	Get(ctx context.Context, ownerID, id int64) (*T, error)
	// Update applies the non-nil fields of patch and returns the new record.
	Update(ctx context.Context, ownerID, id int64, patch P) (*T, error)
	// Delete removes the record.
	Delete(ctx context.Context, ownerID, id int64) error
}
