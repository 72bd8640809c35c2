// Package postgres provides pgx-backed persistence for the fitness journal.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/fitjournal/internal/domain"
)

// Descriptor tells the generic store how one resource kind maps onto its
// table. The store itself carries the ownership-scoping contract; descriptors
// only contribute schema details.
type Descriptor[T any, P any] struct {
	Table   string
	Columns []string // domain columns, excluding id and owner_id
	OrderBy string   // kind-specific list ordering
	// Scan reads id, owner_id and Columns, in that order.
	Scan func(row pgx.Row) (*T, error)
	// InsertArgs returns values for Columns, in the same order.
	InsertArgs func(item *T) []any
	// Patch appends one assignment per present field of patch.
	Patch func(patch P, set *PatchSet)
}

// PatchSet accumulates SET assignments for a partial update.
type PatchSet struct {
	columns []string
	args    []any
}

// SetIfPresent records an assignment for col when value is non-nil. Absent
// fields never reach the statement, so they stay untouched.
func SetIfPresent[V any](set *PatchSet, col string, value *V) {
	if value == nil {
		return
	}
	set.columns = append(set.columns, col)
	set.args = append(set.args, *value)
}

// Store is the ownership-scoped repository, instantiated once per resource
// kind. Every statement filters by owner_id; a row that exists but belongs to
// another user is indistinguishable from one that does not exist.
type Store[T any, P any] struct {
	pool *pgxpool.Pool
	desc Descriptor[T, P]
}

// NewStore constructs a Store over the shared connection pool.
func NewStore[T any, P any](pool *pgxpool.Pool, desc Descriptor[T, P]) *Store[T, P] {
	return &Store[T, P]{pool: pool, desc: desc}
}

func (s *Store[T, P]) selectList() string {
	return "id, owner_id, " + strings.Join(s.desc.Columns, ", ")
}

// Create inserts item for ownerID and returns the stored record. The owner
// column is always bound to ownerID, never to anything client-supplied.
func (s *Store[T, P]) Create(ctx context.Context, ownerID int64, item T) (*T, error) {
	placeholders := make([]string, 0, len(s.desc.Columns)+1)
	for i := 0; i <= len(s.desc.Columns); i++ {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}

	query := fmt.Sprintf("INSERT INTO %s (owner_id, %s) VALUES (%s) RETURNING %s",
		s.desc.Table,
		strings.Join(s.desc.Columns, ", "),
		strings.Join(placeholders, ", "),
		s.selectList(),
	)

	args := append([]any{ownerID}, s.desc.InsertArgs(&item)...)
	return s.desc.Scan(s.pool.QueryRow(ctx, query, args...))
}

// List returns every record owned by ownerID in the kind-specific order.
func (s *Store[T, P]) List(ctx context.Context, ownerID int64) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE owner_id=$1 ORDER BY %s",
		s.selectList(), s.desc.Table, s.desc.OrderBy)

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		item, err := s.desc.Scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *item)
	}
	return results, rows.Err()
}

// Get fetches one record by id, scoped to ownerID.
func (s *Store[T, P]) Get(ctx context.Context, ownerID, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE owner_id=$1 AND id=$2",
		s.selectList(), s.desc.Table)

	item, err := s.desc.Scan(s.pool.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// Update applies the present fields of patch and returns the updated record.
// A patch with no fields set degenerates to a Get.
func (s *Store[T, P]) Update(ctx context.Context, ownerID, id int64, patch P) (*T, error) {
	var set PatchSet
	s.desc.Patch(patch, &set)
	if len(set.columns) == 0 {
		return s.Get(ctx, ownerID, id)
	}

	assignments := make([]string, 0, len(set.columns))
	for i, col := range set.columns {
		assignments = append(assignments, fmt.Sprintf("%s=$%d", col, i+3))
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE owner_id=$1 AND id=$2 RETURNING %s",
		s.desc.Table, strings.Join(assignments, ", "), s.selectList())

	args := append([]any{ownerID, id}, set.args...)
	item, err := s.desc.Scan(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// Delete removes the record scoped to ownerID.
func (s *Store[T, P]) Delete(ctx context.Context, ownerID, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE owner_id=$1 AND id=$2", s.desc.Table)

	tag, err := s.pool.Exec(ctx, query, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
