package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tasks_api/internal/models"
)

func TestOpen_MigratesSchema(t *testing.T) {
	db, err := Open(context.Background(), "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Task{}))
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}
