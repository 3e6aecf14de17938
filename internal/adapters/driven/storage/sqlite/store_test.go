package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sheetmail/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "ledger.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var name string
	err = store.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='processed_messages'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "processed_messages", name)
}

func TestStore_MigrationIdempotency(t *testing.T) {
	dir := t.TempDir()

	store1, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store1.LedgerStore().Save(context.Background(), domain.NewLedger("a")))
	require.NoError(t, store1.Close())

	// Reopening must not rerun migrations or drop data.
	store2, err := NewStore(dir)
	require.NoError(t, err)
	defer store2.Close()

	var count int
	require.NoError(t, store2.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	ledger, err := store2.LedgerStore().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ledger.IDs())
}

func TestLedgerStore_Load_Empty(t *testing.T) {
	store := setupTestStore(t)

	ledger, err := store.LedgerStore().Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, ledger.Len())
}

func TestLedgerStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	ls := setupTestStore(t).LedgerStore()

	ledger := domain.NewLedger("L1", "L2")
	require.NoError(t, ls.Save(ctx, ledger))

	loaded, err := ls.Load(ctx)
	require.NoError(t, err)
	loaded.Add("i")
	require.NoError(t, ls.Save(ctx, loaded))

	final, err := ls.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"L1", "L2", "i"}, final.IDs())
}

func TestLedgerStore_Save_Replaces(t *testing.T) {
	ctx := context.Background()
	ls := setupTestStore(t).LedgerStore()

	require.NoError(t, ls.Save(ctx, domain.NewLedger("a", "b", "c")))
	require.NoError(t, ls.Save(ctx, domain.NewLedger("c", "d")))

	loaded, err := ls.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, loaded.IDs())
}

func TestLedgerStore_Save_KeepsProcessedAt(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	ls := store.LedgerStore()

	require.NoError(t, ls.Save(ctx, domain.NewLedger("a")))
	_, err := store.db.Exec("UPDATE processed_messages SET processed_at = '2024-01-01 00:00:00' WHERE id = 'a'")
	require.NoError(t, err)

	require.NoError(t, ls.Save(ctx, domain.NewLedger("a", "b")))

	var processedAt string
	require.NoError(t, store.db.QueryRow("SELECT processed_at FROM processed_messages WHERE id = 'a'").Scan(&processedAt))
	assert.Contains(t, processedAt, "2024-01-01")
}

func TestLedgerStore_Save_Nil(t *testing.T) {
	ls := setupTestStore(t).LedgerStore()
	assert.ErrorIs(t, ls.Save(context.Background(), nil), domain.ErrInvalidInput)
}

func TestLedgerStore_ExactMatch(t *testing.T) {
	ctx := context.Background()
	ls := setupTestStore(t).LedgerStore()

	require.NoError(t, ls.Save(ctx, domain.NewLedger("Abc")))
	loaded, err := ls.Load(ctx)
	require.NoError(t, err)

	assert.True(t, loaded.Contains("Abc"))
	assert.False(t, loaded.Contains("abc"))
}
