// Package config holds the server settings. Every setting is a command-line
// flag with an environment variable fallback.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the server configuration.
type Config struct {
	Addr string

	DBDriver    string
	DBPath      string
	DatabaseURL string

	// ShareSecret signs share links; sharing is disabled when empty.
	// ShareTTL of zero issues links that never expire.
	ShareSecret string
	ShareTTL    time.Duration
	PublicURL   string

	// S3Bucket enables summary publishing when set.
	S3Bucket string
	S3Region string
	S3Prefix string

	LogLevel string
}

// Flags returns the flags FromContext reads.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "listen address",
			Value:   ":8080",
			EnvVars: []string{"ADDR"},
		},
		&cli.StringFlag{
			Name:    "db-driver",
			Usage:   "storage driver: sqlite or postgres",
			Value:   DriverSQLite,
			EnvVars: []string{"DB_DRIVER"},
		},
		&cli.StringFlag{
			Name:    "db-path",
			Usage:   "SQLite database file",
			Value:   "./data/bills.db",
			EnvVars: []string{"DB_PATH"},
		},
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "PostgreSQL connection string",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.StringFlag{
			Name:    "share-secret",
			Usage:   "HMAC secret for share links (sharing is off when empty)",
			EnvVars: []string{"SHARE_SECRET"},
		},
		&cli.DurationFlag{
			Name:    "share-ttl",
			Usage:   "share link lifetime, 0 for no expiry",
			Value:   30 * 24 * time.Hour,
			EnvVars: []string{"SHARE_TTL"},
		},
		&cli.StringFlag{
			Name:    "public-url",
			Usage:   "base URL share links point at",
			Value:   "http://localhost:8080",
			EnvVars: []string{"PUBLIC_URL"},
		},
		&cli.StringFlag{
			Name:    "s3-bucket",
			Usage:   "bucket for published PDF summaries",
			EnvVars: []string{"S3_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "s3-region",
			Value:   "us-east-1",
			EnvVars: []string{"S3_REGION", "AWS_REGION"},
		},
		&cli.StringFlag{
			Name:    "s3-prefix",
			Value:   "summaries",
			EnvVars: []string{"S3_PREFIX"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error",
			Value:   "info",
			EnvVars: []string{"LOG_LEVEL"},
		},
	}
}

// FromContext reads a Config from parsed flags.
func FromContext(c *cli.Context) Config {
	return Config{
		Addr:        c.String("addr"),
		DBDriver:    c.String("db-driver"),
		DBPath:      c.String("db-path"),
		DatabaseURL: c.String("database-url"),
		ShareSecret: c.String("share-secret"),
		ShareTTL:    c.Duration("share-ttl"),
		PublicURL:   c.String("public-url"),
		S3Bucket:    c.String("s3-bucket"),
		S3Region:    c.String("s3-region"),
		S3Prefix:    c.String("s3-prefix"),
		LogLevel:    c.String("log-level"),
	}
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("db-path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database-url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown db-driver %q", c.DBDriver)
	}
	if c.ShareTTL < 0 {
		return fmt.Errorf("share-ttl must not be negative, got %s", c.ShareTTL)
	}
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	return nil
}

// SharingEnabled reports whether share links can be issued.
func (c Config) SharingEnabled() bool {
	return c.ShareSecret != ""
}

// PublishingEnabled reports whether PDF summaries can be published.
func (c Config) PublishingEnabled() bool {
	return c.S3Bucket != ""
}
