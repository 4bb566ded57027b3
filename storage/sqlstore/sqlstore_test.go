package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/storage"
	"rental-backend/storage/storagetest"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), SQLite, filepath.Join(t.TempDir(), "rental.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return newSQLiteStore(t) })
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	ctx := context.Background()

	s, err := Open(ctx, SQLite, path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, SQLite, path)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open(context.Background(), Dialect("oracle"), "x")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: Postgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pg.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	lite := &Store{dialect: SQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}
