package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/postdeskapp/postdesk-server/internal/contacts"
	"github.com/postdeskapp/postdesk-server/internal/domain"
	domainerrors "github.com/postdeskapp/postdesk-server/internal/errors"
)

// ContactResolver decides how a write request obtains its associated contact
// and turns gateway failures into field-scoped validation errors.
type ContactResolver struct {
	gateway contacts.Gateway
	logger  *slog.Logger
}

// NewContactResolver creates a resolver over the given gateway.
func NewContactResolver(gateway contacts.Gateway, logger *slog.Logger) *ContactResolver {
	return &ContactResolver{gateway: gateway, logger: logger}
}

// Resolve obtains the contact for a write request: by reference when
// contactID is set, by value when contact is set (update with id, create
// without), or not at all. When both are set the contactID branch wins and
// the embedded contact is ignored.
//
// Field errors returned here take priority over everything else: they are the
// sole errors the request reports, so callers must discard any previously
// accumulated validation errors when the result is non-empty.
func (r *ContactResolver) Resolve(ctx context.Context, contactID *int64, contact *domain.Contact) (*domain.Contact, domainerrors.FieldErrors) {
	switch {
	case contactID != nil:
		resolved, err := r.gateway.Get(ctx, *contactID)
		if err != nil {
			return nil, r.fieldError(ctx, "contactId", err)
		}
		return resolved, nil

	case contact != nil:
		var (
			resolved *domain.Contact
			err      error
		)
		if contact.ID != nil {
			resolved, err = r.gateway.Update(ctx, contact)
		} else {
			resolved, err = r.gateway.Create(ctx, contact)
		}
		if err != nil {
			return nil, r.fieldError(ctx, "contact", err)
		}
		return resolved, nil

	default:
		return nil, nil
	}
}

// fieldError maps a gateway failure onto the field that caused it.
func (r *ContactResolver) fieldError(ctx context.Context, field string, err error) domainerrors.FieldErrors {
	fe := domainerrors.FieldErrors{}

	var badReq *contacts.BadRequestError
	switch {
	case errors.Is(err, contacts.ErrNotFound):
		fe.Add(field, "Contact not found")
	case errors.As(err, &badReq):
		fe.Add(field, badReq.Message)
	default:
		// Transport failures and timeouts surface as a field error rather
		// than a 500 so clients handle every contact failure the same way.
		r.logger.WarnContext(ctx, "contact resolution failed", "field", field, "error", err)
		fe.Add(field, "contacts service unavailable")
	}
	return fe
}
