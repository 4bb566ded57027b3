package boltstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/storage"
	"rental-backend/storage/boltstore"
	"rental-backend/storage/storagetest"
)

func newTestStore(t *testing.T) *boltstore.Store {
	t.Helper()
	s, err := boltstore.New(filepath.Join(t.TempDir(), "test.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return newTestStore(t) })
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := boltstore.New(path, time.Second)
	require.NoError(t, err)
	_, err = s.SeedProperties(ctx, storagetest.Properties())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = boltstore.New(path, time.Second)
	require.NoError(t, err)
	defer s.Close()

	list, err := s.ListProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
