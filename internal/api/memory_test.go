package api

import (
	"context"
	"sort"
	"sync"

	"example.com/fitjournal/internal/domain"
)

// memStore is an in-memory OwnedRepository with the same ownership semantics
// as the Postgres store: owner mismatch and absence are both ErrNotFound.
type memStore[T any, P any] struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*T
	owners map[int64]int64
	set    func(item *T, id, owner int64)
	apply  func(item *T, patch P)
	less   func(a, b T) bool
}

func newMemStore[T any, P any](
	set func(item *T, id, owner int64),
	apply func(item *T, patch P),
	less func(a, b T) bool,
) *memStore[T, P] {
	return &memStore[T, P]{
		items:  make(map[int64]*T),
		owners: make(map[int64]int64),
		set:    set,
		apply:  apply,
		less:   less,
	}
}

func (m *memStore[T, P]) Create(ctx context.Context, ownerID int64, item T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	stored := item
	m.set(&stored, m.nextID, ownerID)
	m.items[m.nextID] = &stored
	m.owners[m.nextID] = ownerID

	out := stored
	return &out, nil
}

func (m *memStore[T, P]) List(ctx context.Context, ownerID int64) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]T, 0)
	for id, item := range m.items {
		if m.owners[id] == ownerID {
			results = append(results, *item)
		}
	}
	sort.Slice(results, func(i, j int) bool { return m.less(results[i], results[j]) })
	return results, nil
}

func (m *memStore[T, P]) Get(ctx context.Context, ownerID, id int64) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked(ownerID, id)
}

func (m *memStore[T, P]) Update(ctx context.Context, ownerID, id int64, patch P) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok || m.owners[id] != ownerID {
		return nil, domain.ErrNotFound
	}
	m.apply(item, patch)
	out := *item
	return &out, nil
}

func (m *memStore[T, P]) Delete(ctx context.Context, ownerID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.locked(ownerID, id); err != nil {
		return err
	}
	delete(m.items, id)
	delete(m.owners, id)
	return nil
}

func (m *memStore[T, P]) locked(ownerID, id int64) (*T, error) {
	item, ok := m.items[id]
	if !ok || m.owners[id] != ownerID {
		return nil, domain.ErrNotFound
	}
	out := *item
	return &out, nil
}

func newMemExercises() *memStore[domain.Exercise, domain.ExercisePatch] {
	return newMemStore(
		func(e *domain.Exercise, id, owner int64) { e.ID = id; e.OwnerID = owner },
		func(e *domain.Exercise, p domain.ExercisePatch) {
			if p.Name != nil {
				e.Name = *p.Name
			}
			if p.Category != nil {
				e.Category = *p.Category
			}
			if p.Description != nil {
				e.Description = p.Description
			}
		},
		func(a, b domain.Exercise) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		},
	)
}

func newMemGoals() *memStore[domain.Goal, domain.GoalPatch] {
	return newMemStore(
		func(g *domain.Goal, id, owner int64) { g.ID = id; g.OwnerID = owner },
		func(g *domain.Goal, p domain.GoalPatch) {
			if p.Title != nil {
				g.Title = *p.Title
			}
			if p.Description != nil {
				g.Description = p.Description
			}
			if p.TargetDate != nil {
				g.TargetDate = p.TargetDate
			}
			if p.IsCompleted != nil {
				g.IsCompleted = *p.IsCompleted
			}
		},
		func(a, b domain.Goal) bool { return a.ID > b.ID },
	)
}

func newMemProgress() *memStore[domain.Progress, domain.ProgressPatch] {
	return newMemStore(
		func(p *domain.Progress, id, owner int64) { p.ID = id; p.OwnerID = owner },
		func(entry *domain.Progress, p domain.ProgressPatch) {
			if p.Date != nil {
				entry.Date = *p.Date
			}
			if p.MetricName != nil {
				entry.MetricName = *p.MetricName
			}
			if p.MetricValue != nil {
				entry.MetricValue = *p.MetricValue
			}
			if p.Unit != nil {
				entry.Unit = p.Unit
			}
		},
		func(a, b domain.Progress) bool {
			if !a.Date.Equal(b.Date.Time) {
				return a.Date.After(b.Date.Time)
			}
			return a.ID > b.ID
		},
	)
}

func newMemWorkouts() *memStore[domain.WorkoutSession, domain.WorkoutSessionPatch] {
	return newMemStore(
		func(w *domain.WorkoutSession, id, owner int64) { w.ID = id; w.OwnerID = owner },
		func(w *domain.WorkoutSession, p domain.WorkoutSessionPatch) {
			if p.Title != nil {
				w.Title = *p.Title
			}
			if p.Notes != nil {
				w.Notes = p.Notes
			}
			if p.PerformedAt != nil {
				w.PerformedAt = *p.PerformedAt
			}
			if p.DurationMinutes != nil {
				w.DurationMinutes = p.DurationMinutes
			}
		},
		func(a, b domain.WorkoutSession) bool {
			if !a.PerformedAt.Equal(b.PerformedAt) {
				return a.PerformedAt.After(b.PerformedAt)
			}
			return a.ID > b.ID
		},
	)
}

func newMemPlans() *memStore[domain.WorkoutPlan, domain.WorkoutPlanPatch] {
	return newMemStore(
		func(w *domain.WorkoutPlan, id, owner int64) { w.ID = id; w.OwnerID = owner },
		func(w *domain.WorkoutPlan, p domain.WorkoutPlanPatch) {
			if p.Title != nil {
				w.Title = *p.Title
			}
			if p.Description != nil {
				w.Description = p.Description
			}
		},
		func(a, b domain.WorkoutPlan) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		},
	)
}

func memRepositories() Repositories {
	return Repositories{
		Exercises: newMemExercises(),
		Goals:     newMemGoals(),
		Progress:  newMemProgress(),
		Workouts:  newMemWorkouts(),
		Plans:     newMemPlans(),
	}
}

// memUsers backs the accounts service and the auth middleware in tests.
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[int64]*domain.User)}
}

func (m *memUsers) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.byID {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	m.nextID++
	user.ID = m.nextID
	m.byID[user.ID] = &user
	copied := user
	return &copied, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}
