package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

type App struct {
	// DB
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	DBHost          string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort          string        `envconfig:"DB_PORT" default:"5432"`
	DBUser          string        `envconfig:"DB_USER"`
	DBPassword      string        `envconfig:"DB_PASSWORD"`
	DBName          string        `envconfig:"DB_NAME"`
	DBSSL           bool          `envconfig:"DB_SSL" default:"false"`
	DBDriver        string        `envconfig:"DB_DRIVER" default:"postgres"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"5m"`

	// HTTP
	Port               string   `envconfig:"PORT" default:"3000"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Reservas
	BatchPolicy       string `envconfig:"BATCH_POLICY" default:"partial"`
	PoolStatsSchedule string `envconfig:"POOL_STATS_SCHEDULE" default:"@every 5m"`
}

// Load reads an optional .env file and then the process environment.
func Load() (App, error) {
	_ = godotenv.Load()

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, fmt.Errorf("loading config: %w", err)
	}
	if c.DBDriver != DriverPQ && c.DBDriver != DriverPGX {
		return App{}, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return c, nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL built from the DB_* parts.
func (c App) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	sslMode := "disable"
	if c.DBSSL {
		// encrypted, certificate not verified
		sslMode = "require"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}
