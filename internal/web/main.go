// Package web builds the fiber application that serves the JSON API.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/config"
	accesslog "github.com/manojkumarbalamurugan16/task/internal/logger/adapter/fiber"
	"github.com/manojkumarbalamurugan16/task/internal/web/handler"
	"github.com/manojkumarbalamurugan16/task/internal/web/handler/group"
	"github.com/manojkumarbalamurugan16/task/internal/web/handler/input"
)

var (
	// ErrConfigNil is returned by New without a config.
	ErrConfigNil = errors.New("config cannot be nil")
	// ErrDBNil is returned by New without a database.
	ErrDBNil = errors.New("db cannot be nil")
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start listens on the configured port until the server is shut down.
// SIGINT and SIGTERM trigger WaitShutdown.
func (s *Service) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Webserver.Port)
	listenErr := make(chan error, 1)

	go func() {
		listenErr <- s.App.Listen(addr)
	}()

	s.alive.Store(true)
	log.Info().Str("addr", addr).Msg("http server started")

	go s.WaitShutdown()

	if err := <-listenErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return pkgerrors.Wrap(err, "fiber listen error")
	}

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and stops the server gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown lets check alive fail for the configured time so load balancers
// drop this instance, then stops the http server.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers 200 while the service accepts traffic and 503 otherwise.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// New creates the web service with all middlewares and API routes.
func New(cfg *config.Config, db *gorm.DB) (*Service, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	if db == nil {
		return nil, ErrDBNil
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			UnescapePath:   true,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
	}

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: accesslog.RequestIDKey,
	}))

	app.Use(accesslog.New(accesslog.Config{
		Config:   cfg.Log,
		SkipURIs: []string{cfg.Webserver.CheckAliveURI, cfg.Webserver.MetricsURI},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Webserver.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	if cfg.Webserver.RateLimit > 0 {
		app.Use(handler.APIPath, limiter.New(limiter.Config{
			Max:        cfg.Webserver.RateLimit,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(handler.ErrorResponse{
					Error: "Too many requests",
				})
			},
		}))
	}

	if cfg.Webserver.CheckAliveURI != "" {
		app.Get(cfg.Webserver.CheckAliveURI, service.CheckAlive)
	}

	if cfg.Webserver.MetricsURI != "" {
		app.Get(cfg.Webserver.MetricsURI, adaptor.HTTPHandler(promhttp.Handler()))
	}

	for _, h := range []handler.Service{&group.Service{}, &input.Service{}} {
		if err := h.Init(app, cfg, db); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to init handler")
		}
	}

	return service, nil
}
