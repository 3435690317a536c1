// Package daemon wires configuration, logging, the database and the web service together.
package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/config"
	"github.com/manojkumarbalamurugan16/task/internal/db/database"
	"github.com/manojkumarbalamurugan16/task/internal/logger"
	"github.com/manojkumarbalamurugan16/task/internal/web"
)

// ErrConfigNil is returned when New is called without a config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start runs the web service until it is shut down and closes the database afterwards.
func (d *Daemon) Start() error {
	defer d.close()

	log.Info().
		Str("title", d.cfg.Title).
		Int("port", d.cfg.Webserver.Port).
		Bool("dev", d.cfg.DevMode).
		Msg("starting daemon")

	return d.webService.Start()
}

func (d *Daemon) close() {
	closeDB(d.db)
}

func closeDB(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}

// New initializes the logger, opens and migrates the database and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		closeDB(db)

		return nil, err
	}

	webService, err := web.New(cfg, db)
	if err != nil {
		closeDB(db)

		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         db,
		webService: webService,
	}, nil
}
