// Package testdb hands each test its own migrated in-memory SQLite database.
package testdb

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/catalog/database/migrations"
	"github.com/shashiranjanraj/catalog/pkg/database"
	"github.com/shashiranjanraj/catalog/pkg/migration"
)

// New opens a fresh database named after a random UUID, runs every
// migration and closes it when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		// A shared-cache memory database lives as long as one connection does.
		MaxIdleConns: 1,
	})
	require.NoError(t, err)

	_, err = migration.New(db, nil).Run(context.Background())
	require.NoError(t, err)

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
