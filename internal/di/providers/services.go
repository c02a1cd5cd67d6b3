package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/postdeskapp/postdesk-server/internal/contacts"
	"github.com/postdeskapp/postdesk-server/internal/service"
)

// ProvidePostService provides the post business service.
func ProvidePostService(i do.Injector) (*service.PostService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	gateway := do.MustInvoke[*contacts.Client](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewPostService(storeHandle.Store, gateway, log), nil
}
