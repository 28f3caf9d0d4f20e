package database

import (
	"path/filepath"
	"testing"

	"github.com/pathakanu/healthAI/internal/logger"
	"github.com/pathakanu/healthAI/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteMigratesEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "healthai.db")
	db, err := New("", path, logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", db.Dialector.Name())
	assert.True(t, db.Migrator().HasTable(&model.Entry{}))
	assert.FileExists(t, path)
}
