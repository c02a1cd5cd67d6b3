// Package contacts talks to the external contacts service that owns contact records.
package contacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/postdeskapp/postdesk-server/internal/domain"
)

// Gateway errors. A BadRequestError carries the contacts service's own
// rejection message and is returned by value-based writes; the sentinels
// cover the remaining failure modes.
var (
	// ErrNotFound means the referenced contact does not exist.
	ErrNotFound = errors.New("contact not found")
	// ErrUnavailable means the contacts service could not be reached in time.
	ErrUnavailable = errors.New("contacts service unavailable")
)

// BadRequestError carries the contacts service's rejection message verbatim.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("contacts service rejected request: %s", e.Message)
}

// Gateway is the capability surface of the contacts service. Any transport
// (HTTP in production, the in-memory Fake in tests) implements it.
type Gateway interface {
	// Get fetches a contact by id. Fails with ErrNotFound.
	Get(ctx context.Context, id int64) (*domain.Contact, error)
	// Create stores a new contact and returns it with its assigned id.
	// Fails with *BadRequestError.
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	// Update overwrites the contact identified by contact.ID.
	// Fails with ErrNotFound or *BadRequestError.
	Update(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
}
