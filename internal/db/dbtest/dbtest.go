// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/config"
	"github.com/manojkumarbalamurugan16/task/internal/db/database"
)

// Open creates an in-memory SQLite database with the dbGroup and dbInputs tables.
// Every connection to ":memory:" sees its own database, so the pool is limited to one.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{DB: config.DB{GormEngine: config.EngineSQLite, LogLevel: "silent"}}

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(cfg))
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db), "failed to migrate test database")

	return db
}
