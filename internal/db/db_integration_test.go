//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests require a running PostgreSQL database.
// Set TEST_DATABASE_URL environment variable to run them.

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestIntegration_InsertAndCountCompletions(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()

	before, err := db.CountCompletions(ctx)
	require.NoError(t, err)

	require.NoError(t, db.InsertCompletion(ctx))
	require.NoError(t, db.InsertCompletion(ctx))

	after, err := db.CountCompletions(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after, before+2)
}

func TestIntegration_EnsureSchemaIdempotent(t *testing.T) {
	db := getTestDB(t)
	assert.NoError(t, db.EnsureSchema(context.Background()))
}
