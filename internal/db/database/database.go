// Package database opens the gorm connection for the configured engine and migrates the schema.
package database

import (
	"errors"

	"github.com/glebarez/sqlite"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/config"
	"github.com/manojkumarbalamurugan16/task/internal/db/dsn"
	"github.com/manojkumarbalamurugan16/task/internal/db/models"
	"github.com/manojkumarbalamurugan16/task/internal/logger/adapter/gormlog"
)

var (
	// ErrConfigNil is returned when Open is called without a config.
	ErrConfigNil = errors.New("config is nil")

	// ErrUnsupportedEngine is returned for an unknown gorm engine.
	ErrUnsupportedEngine = errors.New("unsupported gorm engine")
)

// Dialector returns the gorm dialector for cfg.DB.GormEngine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(dsn.Create(cfg)), nil
	default:
		return nil, pkgerrors.Wrap(ErrUnsupportedEngine, cfg.DB.GormEngine)
	}
}

// GormConfig is the gorm configuration shared by the daemon and the tests.
//
// TranslateError turns unique index violations into gorm.ErrDuplicatedKey.
// Foreign key constraints are not created: a group is hard deleted while its
// soft-deleted inputs stay behind as history.
func GormConfig(cfg *config.Config) *gorm.Config {
	return &gorm.Config{
		Logger:                                   gormlog.New(nil, gormlog.ParseLevel(cfg.DB.LogLevel), cfg.DB.SlowThreshold),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(cfg))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB, errDB := db.DB()
		if errDB != nil {
			return nil, pkgerrors.Wrap(errDB, "failed to access sql.DB")
		}

		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Str("name", cfg.DB.Name).
		Msg("database connected")

	return db, nil
}

// Migrate creates or updates the dbGroup and dbInputs tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return pkgerrors.Wrap(err, "failed to migrate database")
	}

	return nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to access sql.DB")
	}

	if err = sqlDB.Close(); err != nil {
		return pkgerrors.Wrap(err, "failed to close database")
	}

	return nil
}
