package records_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/records"
)

func testRecord(id, name string, notes ...string) records.Record {
	r := records.Record{ID: id, Name: name, File: id + ".mp4", Tags: []string{"test"}}
	for i, n := range notes {
		r.Note = append(r.Note, records.Note{Time: (i + 1) * 30, Data: n})
	}
	return r
}

func TestCreateAndGet(t *testing.T) {
	repo := records.NewInMemoryRepo()

	created, err := repo.Create(testRecord("r1", "Calculus lecture", "limits", "derivatives"))
	require.NoError(t, err)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := repo.Get("r1")
	require.NoError(t, err)
	require.Equal(t, "Calculus lecture", got.Name)
	require.Len(t, got.Note, 2)
	require.Equal(t, []string{"test"}, got.Tags)

	t.Run("duplicate", func(t *testing.T) {
		_, err := repo.Create(testRecord("r1", "again"))
		require.ErrorIs(t, err, autherrors.ErrConflict)
		require.Contains(t, err.Error(), "record with ID 'r1'")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.Create(records.Record{Name: "no id"})
		require.ErrorIs(t, err, autherrors.ErrMissingField)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Get("nope")
		require.ErrorIs(t, err, autherrors.ErrNotFound)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		got.Tags[0] = "mutated"
		again, err := repo.Get("r1")
		require.NoError(t, err)
		require.Equal(t, "test", again.Tags[0])
	})
}

func TestList(t *testing.T) {
	repo := records.NewInMemoryRepo()

	list, err := repo.List()
	require.NoError(t, err)
	require.Empty(t, list)

	for _, id := range []string{"b", "c", "a"} {
		_, err := repo.Create(testRecord(id, id))
		require.NoError(t, err)
	}

	list, err = repo.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "a", list[0].ID)
	require.Equal(t, "c", list[2].ID)
}

func TestUpdate(t *testing.T) {
	repo := records.NewInMemoryRepo()
	created, err := repo.Create(testRecord("r1", "old name", "old note"))
	require.NoError(t, err)

	updated, err := repo.Update("r1", records.Update{Name: "new name", File: "new.mp4", Tags: []string{"x", "y"}})
	require.NoError(t, err)
	require.Equal(t, "new name", updated.Name)
	require.Equal(t, "new.mp4", updated.File)
	require.Empty(t, updated.Note)
	require.Equal(t, []string{"x", "y"}, updated.Tags)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = repo.Update("missing", records.Update{Name: "x"})
	require.ErrorIs(t, err, autherrors.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := records.NewInMemoryRepo()
	_, err := repo.Create(testRecord("r1", "n"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete("r1"))
	require.ErrorIs(t, repo.Delete("r1"), autherrors.ErrNotFound)
}

func TestSearch(t *testing.T) {
	repo := records.NewInMemoryRepo()
	_, err := repo.Create(testRecord("r1", "Linear Algebra", "eigenvalues"))
	require.NoError(t, err)
	_, err = repo.Create(testRecord("r2", "Organic Chemistry", "benzene rings", "Algebraic notation"))
	require.NoError(t, err)
	_, err = repo.Create(testRecord("r3", "History"))
	require.NoError(t, err)

	t.Run("matches name or note ignoring case", func(t *testing.T) {
		results, err := repo.Search("ALGEBRA")
		require.NoError(t, err)
		require.Len(t, results, 2)
		require.Equal(t, "r1", results[0].ID)
		require.Equal(t, "r2", results[1].ID)
	})

	t.Run("no match", func(t *testing.T) {
		results, err := repo.Search("physics")
		require.NoError(t, err)
		require.NotNil(t, results)
		require.Empty(t, results)
	})

	t.Run("blank query", func(t *testing.T) {
		_, err := repo.Search("  ")
		require.ErrorIs(t, err, autherrors.ErrMissingField)
	})
}
