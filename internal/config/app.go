package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/medagent/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"MEDAGENT_RUNTIME_PATH" envDefault:".medagent"`
	// LogDir holds the per-session JSON and text logs.
	LogDir string `env:"MEDAGENT_LOG_DIR" envDefault:"diagnosis_logs"`

	// Transport Flags
	HTTPAddr       string `env:"MEDAGENT_HTTP_ADDR" envDefault:":8080"`
	EnableTelegram bool   `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Retention of persisted sessions: the newest RetentionKeep sessions
	// survive, everything older is swept.
	RetentionKeep  int           `env:"MEDAGENT_RETENTION_KEEP" envDefault:"200"`
	RetentionEvery time.Duration `env:"MEDAGENT_RETENTION_EVERY" envDefault:"1h"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "medagent.db")
}
