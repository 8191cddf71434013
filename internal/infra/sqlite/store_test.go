package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yesno-quiz/internal/domain"
	"yesno-quiz/internal/history"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "quiz.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestKVGetMissing(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.ForProfile("alice").Get(context.Background(), history.Key)
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)
}

func TestKVPutOverwrites(t *testing.T) {
	store, _ := openTestStore(t)
	kv := store.ForProfile("alice")
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, history.Key, "[50]"))
	require.NoError(t, kv.Put(ctx, history.Key, "[50,100]"))

	got, err := kv.Get(ctx, history.Key)
	require.NoError(t, err)
	assert.Equal(t, "[50,100]", got)

	_, err = store.ForProfile("bob").Get(ctx, history.Key)
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)
}

func TestHistorySurvivesReopen(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, history.NewAdapter(store.ForProfile("alice")).Save(ctx, []float64{50, 100, 75}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := history.NewAdapter(reopened.ForProfile("alice")).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 100, 75}, got)
}
