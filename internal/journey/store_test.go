package journey_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comigor/journey-go/internal/journey"
)

func newEntry(t *testing.T, text string) journey.Entry {
	t.Helper()
	e, err := journey.NewEntry(text, "reply to "+text, nil)
	require.NoError(t, err)
	return e
}

func testStoreContract(t *testing.T, st journey.Store) {
	ctx := context.Background()

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	first := newEntry(t, "pertama")
	second := newEntry(t, "kedua")
	third := newEntry(t, "ketiga")
	for _, e := range []journey.Entry{first, second, third} {
		require.NoError(t, st.Append(ctx, e))
	}

	n, err := st.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	all, err = st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, third.ID, all[0].ID, "newest entry first")
	require.Equal(t, second.ID, all[1].ID)
	require.Equal(t, first.ID, all[2].ID)
	require.Equal(t, third.Text, all[0].Text)
	require.Equal(t, third.AIResponse, all[0].AIResponse)
	require.Equal(t, third.Category, all[0].Category)
	require.True(t, third.Timestamp.Equal(all[0].Timestamp))

	// snapshots are detached from the store
	all[0].Text = "mutated"
	again, err := st.All(ctx)
	require.NoError(t, err)
	require.Equal(t, "ketiga", again[0].Text)
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, journey.NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	st, err := journey.NewSQLiteStore(context.Background())
	require.NoError(t, err)
	testStoreContract(t, st)
}

func TestSQLiteStore_Isolated(t *testing.T) {
	ctx := context.Background()
	a, err := journey.NewSQLiteStore(ctx)
	require.NoError(t, err)
	b, err := journey.NewSQLiteStore(ctx)
	require.NoError(t, err)

	require.NoError(t, a.Append(ctx, newEntry(t, "hanya di a")))

	n, err := b.Len(ctx)
	require.NoError(t, err)
	require.Zero(t, n, "each store owns its own in-memory database")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{"", "memory", "sqlite"} {
		st, err := journey.Open(ctx, backend)
		require.NoError(t, err, backend)
		n, err := st.Len(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
	}
	_, err := journey.Open(ctx, "redis")
	require.Error(t, err)
}

func TestClose(t *testing.T) {
	ctx := context.Background()

	st, err := journey.NewSQLiteStore(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Append(ctx, newEntry(t, "sebelum tutup")))
	require.NoError(t, journey.Close(st))
	_, err = st.All(ctx)
	require.Error(t, err, "a closed store no longer answers")

	require.NoError(t, journey.Close(journey.NewMemoryStore()))
}
