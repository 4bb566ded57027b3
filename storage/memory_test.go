package storage_test

import (
	"testing"

	"rental-backend/storage"
	"rental-backend/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return storage.NewMemoryStore()
	})
}
