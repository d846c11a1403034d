package store

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/recipes-api/pkg/logging"
)

func TestWriteLogEntry(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.WriteLogEntry(ctx, logging.Entry{Level: "ERROR", Message: "boom", Attributes: `{"id":1}`, Time: at}))
	require.NoError(t, db.WriteLogEntry(ctx, logging.Entry{Level: "WARN", Message: "careful"}))

	entries, err := db.LogEntries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "careful", entries[0].Message)
	assert.False(t, entries[0].InsertDateTime.IsZero())
	assert.Equal(t, "boom", entries[1].Message)
	assert.True(t, at.Equal(entries[1].InsertDateTime))
}

func TestPersistentHandlerOverStore(t *testing.T) {
	db := testDB(t)

	h := logging.NewPersistentHandler(slog.DiscardHandler, db, slog.LevelWarn)
	logger := slog.New(h)
	logger.Info("ignored")
	logger.Warn("stored", "recipe", 3)

	entries, err := db.LogEntries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "stored", entries[0].Message)
	assert.Contains(t, entries[0].Attributes, "recipe")
}
