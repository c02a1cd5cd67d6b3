package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/postdeskapp/postdesk-server/internal/config"
	"github.com/postdeskapp/postdesk-server/internal/contacts"
)

// ProvideContactsClient provides the HTTP client for the external contacts service.
func ProvideContactsClient(i do.Injector) (*contacts.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	client := contacts.NewClient(cfg.Contacts.BaseURL, cfg.Contacts.Timeout, log)

	log.Info("Contacts gateway configured",
		"base_url", cfg.Contacts.BaseURL,
		"timeout", cfg.Contacts.Timeout,
	)

	return client, nil
}
