// Package di provides dependency injection configuration for the PostDesk server.
package di

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/postdeskapp/postdesk-server/internal/config"
	"github.com/postdeskapp/postdesk-server/internal/contacts"
	"github.com/postdeskapp/postdesk-server/internal/di/providers"
	"github.com/postdeskapp/postdesk-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Contacts gateway
	do.Provide(injector, providers.ProvideContactsClient)

	// Business services
	do.Provide(injector, providers.ProvidePostService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*slog.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*contacts.Client](injector)
	_ = do.MustInvoke[*service.PostService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
