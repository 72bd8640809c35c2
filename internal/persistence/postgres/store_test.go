package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetIfPresentSkipsAbsentFields(t *testing.T) {
	var set PatchSet

	name := "Squat"
	SetIfPresent(&set, "name", &name)
	SetIfPresent[string](&set, "description", nil)
	SetIfPresent[int](&set, "duration_minutes", nil)

	require.Equal(t, []string{"name"}, set.columns)
	require.Equal(t, []any{"Squat"}, set.args)
}

func TestSetIfPresentKeepsColumnOrder(t *testing.T) {
	var set PatchSet

	title := "A"
	completed := true
	SetIfPresent(&set, "title", &title)
	SetIfPresent(&set, "is_completed", &completed)

	require.Equal(t, []string{"title", "is_completed"}, set.columns)
	require.Equal(t, []any{"A", true}, set.args)
}
