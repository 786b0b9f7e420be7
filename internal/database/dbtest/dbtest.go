// Package dbtest opens throwaway in-memory sqlite databases for tests.
package dbtest

import (
	"testing"

	"inventory/internal/config"
	"inventory/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a migrated, private in-memory database closed at test cleanup.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
