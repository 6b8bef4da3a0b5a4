package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Backoffice"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Workbook struct {
		DataDir  string `envconfig:"DATA_DIR" default:"./data"`
		Filename string `envconfig:"WORKBOOK_FILE" default:"backoffice.xlsx"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret   string        `envconfig:"JWT_SECRET"`
		TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
		Username string        `envconfig:"DASHBOARD_USER" default:"admin"`
		Password string        `envconfig:"DASHBOARD_PASSWORD"`
	}
}

// WorkbookPath is the full path of the XLSX file acting as system of record.
func (c *Config) WorkbookPath() string {
	return filepath.Join(c.Workbook.DataDir, c.Workbook.Filename)
}

// ValidateAuth rejects a blank token secret or dashboard password. With
// either empty, every login would succeed against an empty credential and
// tokens would be signed with an empty key, so the API refuses to start.
func (c *Config) ValidateAuth() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	if c.Auth.Password == "" {
		return fmt.Errorf("DASHBOARD_PASSWORD must be set")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
