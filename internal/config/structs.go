package config

import (
	"time"

	"github.com/manojkumarbalamurugan16/task/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	AllowOrigins   string // CORS allowed origins, comma separated
	CheckAliveURI  string // path of the liveness endpoint
	DisableRecover bool   // disable recover middleware
	MetricsURI     string // path of the prometheus endpoint, empty disables it
	Port           int    // listening port for the webserver
	RateLimit      int    // requests per minute and client ip on /api, 0 disables
	ShutDownTime   int    // seconds to answer 503 on checkalive before stopping
}

// DB holds the database configuration settings.
type DB struct {
	GormEngine    string // mysql, postgres or sqlite
	Extras        string // appended to the DSN (query string for mysql)
	Host          string
	Port          int
	User          string
	Password      string
	Name          string        // database name, file path for sqlite
	LogLevel      string        // silent, error, warn, info
	SlowThreshold time.Duration // queries slower than this are logged as warnings
	MaxOpenConns  int
}
