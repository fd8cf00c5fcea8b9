package db_test

import (
	"testing"

	"mrmm/internal/storage/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_RecordAndList(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.RecordActivity(db.Activity{Operation: "apply", Added: 2}))
	require.NoError(t, database.RecordActivity(db.Activity{Operation: "load", ProfileName: "Ranked", Added: 1, Removed: 3}))
	require.NoError(t, database.RecordActivity(db.Activity{Operation: "clear", Removed: 1, Failed: 1, Detail: "x.pak: permission denied"}))

	entries, err := database.RecentActivity(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first
	assert.Equal(t, "clear", entries[0].Operation)
	assert.Equal(t, 1, entries[0].Failed)
	assert.Equal(t, "x.pak: permission denied", entries[0].Detail)
	assert.Equal(t, "load", entries[1].Operation)
	assert.Equal(t, "Ranked", entries[1].ProfileName)
	assert.Equal(t, 3, entries[1].Removed)
	assert.Equal(t, "apply", entries[2].Operation)
	assert.Empty(t, entries[2].ProfileName)
}

func TestActivity_Limit(t *testing.T) {
	database := newTestDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, database.RecordActivity(db.Activity{Operation: "apply"}))
	}

	entries, err := database.RecentActivity(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Greater(t, entries[0].ID, entries[1].ID)

	entries, err = database.RecentActivity(0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
