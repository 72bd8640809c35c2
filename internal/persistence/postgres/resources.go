package postgres

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fitjournal/internal/domain"
)

// NewExerciseStore instantiates the generic store for exercises,
// listed alphabetically by name.
func NewExerciseStore(pool *pgxpool.Pool) *Store[domain.Exercise, domain.ExercisePatch] {
	return NewStore(pool, Descriptor[domain.Exercise, domain.ExercisePatch]{
		Table:   "exercises",
		Columns: []string{"name", "category", "description"},
		OrderBy: "name ASC, id ASC",
		Scan: func(row pgx.Row) (*domain.Exercise, error) {
			var e domain.Exercise
			if err := row.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Category, &e.Description); err != nil {
				return nil, err
			}
			return &e, nil
		},
		InsertArgs: func(e *domain.Exercise) []any {
			return []any{e.Name, e.Category, e.Description}
		},
		Patch: func(p domain.ExercisePatch, set *PatchSet) {
			SetIfPresent(set, "name", p.Name)
			SetIfPresent(set, "category", p.Category)
			SetIfPresent(set, "description", p.Description)
		},
	})
}

// NewGoalStore instantiates the generic store for goals,
// listed most-recently-created first.
func NewGoalStore(pool *pgxpool.Pool) *Store[domain.Goal, domain.GoalPatch] {
	return NewStore(pool, Descriptor[domain.Goal, domain.GoalPatch]{
		Table:   "goals",
		Columns: []string{"title", "description", "target_date", "is_completed"},
		OrderBy: "id DESC",
		Scan: func(row pgx.Row) (*domain.Goal, error) {
			var g domain.Goal
			if err := row.Scan(&g.ID, &g.OwnerID, &g.Title, &g.Description, &g.TargetDate, &g.IsCompleted); err != nil {
				return nil, err
			}
			return &g, nil
		},
		InsertArgs: func(g *domain.Goal) []any {
			return []any{g.Title, g.Description, g.TargetDate, g.IsCompleted}
		},
		Patch: func(p domain.GoalPatch, set *PatchSet) {
			SetIfPresent(set, "title", p.Title)
			SetIfPresent(set, "description", p.Description)
			SetIfPresent(set, "target_date", p.TargetDate)
			SetIfPresent(set, "is_completed", p.IsCompleted)
		},
	})
}

// NewProgressStore instantiates the generic store for progress entries,
// listed newest date first.
func NewProgressStore(pool *pgxpool.Pool) *Store[domain.Progress, domain.ProgressPatch] {
	return NewStore(pool, Descriptor[domain.Progress, domain.ProgressPatch]{
		Table:   "progress_entries",
		Columns: []string{"date", "metric_name", "metric_value", "unit"},
		OrderBy: "date DESC, id DESC",
		Scan: func(row pgx.Row) (*domain.Progress, error) {
			var p domain.Progress
			if err := row.Scan(&p.ID, &p.OwnerID, &p.Date, &p.MetricName, &p.MetricValue, &p.Unit); err != nil {
				return nil, err
			}
			return &p, nil
		},
		InsertArgs: func(p *domain.Progress) []any {
			return []any{p.Date, p.MetricName, p.MetricValue, p.Unit}
		},
		Patch: func(p domain.ProgressPatch, set *PatchSet) {
			SetIfPresent(set, "date", p.Date)
			SetIfPresent(set, "metric_name", p.MetricName)
			SetIfPresent(set, "metric_value", p.MetricValue)
			SetIfPresent(set, "unit", p.Unit)
		},
	})
}

// NewWorkoutSessionStore instantiates the generic store for workout sessions,
// listed most recently performed first.
func NewWorkoutSessionStore(pool *pgxpool.Pool) *Store[domain.WorkoutSession, domain.WorkoutSessionPatch] {
	return NewStore(pool, Descriptor[domain.WorkoutSession, domain.WorkoutSessionPatch]{
		Table:   "workout_sessions",
		Columns: []string{"title", "notes", "performed_at", "duration_minutes"},
		OrderBy: "performed_at DESC, id DESC",
		Scan: func(row pgx.Row) (*domain.WorkoutSession, error) {
			var w domain.WorkoutSession
			if err := row.Scan(&w.ID, &w.OwnerID, &w.Title, &w.Notes, &w.PerformedAt, &w.DurationMinutes); err != nil {
				return nil, err
			}
			return &w, nil
		},
		InsertArgs: func(w *domain.WorkoutSession) []any {
			return []any{w.Title, w.Notes, w.PerformedAt, w.DurationMinutes}
		},
		Patch: func(p domain.WorkoutSessionPatch, set *PatchSet) {
			SetIfPresent(set, "title", p.Title)
			SetIfPresent(set, "notes", p.Notes)
			SetIfPresent(set, "performed_at", p.PerformedAt)
			SetIfPresent(set, "duration_minutes", p.DurationMinutes)
		},
	})
}

// NewWorkoutPlanStore instantiates the generic store for workout plans,
// listed most recently created first.
func NewWorkoutPlanStore(pool *pgxpool.Pool) *Store[domain.WorkoutPlan, domain.WorkoutPlanPatch] {
	return NewStore(pool, Descriptor[domain.WorkoutPlan, domain.WorkoutPlanPatch]{
		Table:   "workout_plans",
		Columns: []string{"title", "description", "created_at"},
		OrderBy: "created_at DESC, id DESC",
		Scan: func(row pgx.Row) (*domain.WorkoutPlan, error) {
			var w domain.WorkoutPlan
			if err := row.Scan(&w.ID, &w.OwnerID, &w.Title, &w.Description, &w.CreatedAt); err != nil {
				return nil, err
			}
			return &w, nil
		},
		InsertArgs: func(w *domain.WorkoutPlan) []any {
			return []any{w.Title, w.Description, w.CreatedAt}
		},
		Patch: func(p domain.WorkoutPlanPatch, set *PatchSet) {
			SetIfPresent(set, "title", p.Title)
			SetIfPresent(set, "description", p.Description)
		},
	})
}
