package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *RecordRepo {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewRecordRepo(db)
	require.NoError(t, repo.Seed(context.Background()))
	return repo
}

func ids(recs []Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := newRepo(t)
	require.NoError(t, repo.Seed(ctx))

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, ids(recs))
	require.Equal(t, KindPassword, recs[0].Kind)
	require.Equal(t, KindNote, recs[1].Kind)
	require.Equal(t, "Work Email", recs[0].Title)
}

func TestDeleteKeepsRelativeOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Delete(ctx, "2"))
	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "3"}, ids(recs))

	require.ErrorIs(t, repo.Delete(ctx, "2"), ErrNotFound)
}

func TestAddThenDeleteKeepsIDsUnique(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	const n = 5
	added := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		rec, err := repo.Add(ctx, KindNote, "  note  ", "body")
		require.NoError(t, err)
		require.Equal(t, "note", rec.Title)
		added = append(added, rec)
	}
	require.NoError(t, repo.Delete(ctx, added[2].ID))

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3+n-1)
	seen := map[string]bool{}
	for _, r := range recs {
		require.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
	require.False(t, seen[added[2].ID])
	require.Equal(t, added[n-1].ID, recs[len(recs)-1].ID, "new records append at the end")
}

func TestSeparateDatabasesDoNotShareRecords(t *testing.T) {
	ctx := context.Background()
	a := newRepo(t)
	b := newRepo(t)
	require.NoError(t, a.Delete(ctx, "1"))
	recs, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
}

func TestParseKind(t *testing.T) {
	require.Equal(t, KindNote, ParseKind(" Note "))
	require.Equal(t, KindPassword, ParseKind("anything"))
	require.True(t, KindPassword.Sensitive())
	require.False(t, KindNote.Sensitive())
}
