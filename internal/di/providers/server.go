package providers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/postdeskapp/postdesk-server/internal/api"
	"github.com/postdeskapp/postdesk-server/internal/config"
	"github.com/postdeskapp/postdesk-server/internal/contacts"
	"github.com/postdeskapp/postdesk-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	gateway := do.MustInvoke[*contacts.Client](i)
	posts := do.MustInvoke[*service.PostService](i)
	log := do.MustInvoke[*slog.Logger](i)

	writeLimiter := api.NewRateLimiter(cfg.RateLimit.WritesPerMinute, time.Minute, cfg.RateLimit.Burst)

	handler := api.NewServer(storeHandle.Store, gateway, posts, writeLimiter, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
