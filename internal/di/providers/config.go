// Package providers contains dependency injection providers for the PostDesk server.
package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/postdeskapp/postdesk-server/internal/config"
	"github.com/postdeskapp/postdesk-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(_ do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting PostDesk Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"database_path", cfg.Database.Path,
		"contacts_url", cfg.Contacts.BaseURL,
	)

	return log, nil
}
