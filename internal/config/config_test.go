package config

import (
	"testing"
	"time"

	"github.com/urfave/cli/v2"
)

// parse runs a throwaway app over args and returns the resulting config.
func parse(t *testing.T, args ...string) Config {
	t.Helper()
	var cfg Config
	app := &cli.App{
		Name:  "test",
		Flags: Flags(),
		Action: func(c *cli.Context) error {
			cfg = FromContext(c)
			return nil
		},
	}
	if err := app.Run(append([]string{"test"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := parse(t)
	if cfg.Addr != ":8080" || cfg.DBDriver != DriverSQLite || cfg.DBPath != "./data/bills.db" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShareTTL != 30*24*time.Hour {
		t.Errorf("expected 720h share TTL, got %s", cfg.ShareTTL)
	}
	if cfg.SharingEnabled() || cfg.PublishingEnabled() {
		t.Error("expected sharing and publishing to be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestFlagsAndEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/splitit")
	t.Setenv("SHARE_SECRET", "env-secret")

	cfg := parse(t, "--addr", ":9090", "--share-ttl", "2h", "--s3-bucket", "bills")
	if cfg.Addr != ":9090" {
		t.Errorf("expected flag addr, got %q", cfg.Addr)
	}
	if cfg.DBDriver != DriverPostgres || cfg.DatabaseURL != "postgres://localhost/splitit" {
		t.Errorf("expected env database settings, got %+v", cfg)
	}
	if cfg.ShareSecret != "env-secret" || cfg.ShareTTL != 2*time.Hour {
		t.Errorf("unexpected share settings: %q %s", cfg.ShareSecret, cfg.ShareTTL)
	}
	if !cfg.SharingEnabled() || !cfg.PublishingEnabled() {
		t.Error("expected sharing and publishing to be on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Addr: ":8080", DBDriver: DriverSQLite, DBPath: "bills.db"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }, true},
		{"postgres without url", func(c *Config) { c.DBDriver = DriverPostgres }, true},
		{"postgres with url", func(c *Config) { c.DBDriver = DriverPostgres; c.DatabaseURL = "postgres://x" }, false},
		{"negative ttl", func(c *Config) { c.ShareTTL = -time.Second }, true},
		{"no addr", func(c *Config) { c.Addr = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
