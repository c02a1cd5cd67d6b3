package contacts

import (
	"context"
	"sync"

	"github.com/postdeskapp/postdesk-server/internal/domain"
)

// Fake is an in-memory Gateway for tests. It records which operations were
// called and can be forced to fail every call with a fixed error.
type Fake struct {
	mu     sync.Mutex
	byID   map[int64]*domain.Contact
	nextID int64

	GetCalls    int
	CreateCalls int
	UpdateCalls int

	// FailWith, when set, is returned by every operation.
	FailWith error
}

var _ Gateway = (*Fake)(nil)

// NewFake creates an empty fake gateway.
func NewFake() *Fake {
	return &Fake{byID: make(map[int64]*domain.Contact), nextID: 1}
}

// Add seeds a contact, assigning an id when it has none, and returns it.
func (f *Fake) Add(contact *domain.Contact) *domain.Contact {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store(contact)
}

func (f *Fake) store(contact *domain.Contact) *domain.Contact {
	if contact.ID == nil {
		id := f.nextID
		contact.ID = &id
	}
	if *contact.ID >= f.nextID {
		f.nextID = *contact.ID + 1
	}
	f.byID[*contact.ID] = contact
	return contact
}

// Get implements Gateway.
func (f *Fake) Get(_ context.Context, id int64) (*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.GetCalls++
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	contact, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return contact, nil
}

// Create implements Gateway.
func (f *Fake) Create(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls++
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	stored := &domain.Contact{Fields: contact.Fields}
	return f.store(stored), nil
}

// Update implements Gateway.
func (f *Fake) Update(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdateCalls++
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	if contact.ID == nil {
		return nil, &BadRequestError{Message: "contact id is required for update"}
	}
	if _, ok := f.byID[*contact.ID]; !ok {
		return nil, ErrNotFound
	}
	f.byID[*contact.ID] = contact
	return contact, nil
}
