package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pathakanu/healthAI/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewGormStore(db)
}

func storesUnderTest(t *testing.T) map[string]Store {
	return map[string]Store{
		"gorm":   newTestGormStore(t),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "data", "storage.json")),
		"memory": NewMemoryStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "healthAI_reminders")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Put(ctx, "healthAI_reminders", []byte(`[{"id":0}]`)))
			got, err := store.Get(ctx, "healthAI_reminders")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":0}]`, string(got))

			require.NoError(t, store.Put(ctx, "healthAI_reminders", []byte(`[]`)))
			got, err = store.Get(ctx, "healthAI_reminders")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got), "put must overwrite the previous value")
		})
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	t.Parallel()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "a", []byte("1")))
			require.NoError(t, store.Put(ctx, "b", []byte("2")))

			a, err := store.Get(ctx, "a")
			require.NoError(t, err)
			b, err := store.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, "1", string(a))
			assert.Equal(t, "2", string(b))
		})
	}
}

func TestFileStoreCorruptDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Get(context.Background(), "healthAI_reminders")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStorePutReplacesCorruptDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewFileStore(path)
	require.NoError(t, s.Put(ctx, "healthAI_reminders", []byte("[]")))

	got, err := s.Get(ctx, "healthAI_reminders")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	aside, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(aside))
}

func TestFileStoreEmptyFileIsEmptyStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := NewFileStore(path).Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}
