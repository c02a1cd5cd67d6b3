// Package service contains the post write pipeline: validation, contact
// resolution, partial-update merging, and persistence orchestration.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/postdeskapp/postdesk-server/internal/contacts"
	"github.com/postdeskapp/postdesk-server/internal/domain"
	domainerrors "github.com/postdeskapp/postdesk-server/internal/errors"
	"github.com/postdeskapp/postdesk-server/internal/store"
	"github.com/postdeskapp/postdesk-server/internal/validation"
)

// PostService orchestrates the post operations against the store and the
// contacts gateway. Persistence happens only after every validation pass,
// contact resolution included, has succeeded.
type PostService struct {
	store     store.PostStore
	gateway   contacts.Gateway
	resolver  *ContactResolver
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(st store.PostStore, gateway contacts.Gateway, logger *slog.Logger) *PostService {
	return &PostService{
		store:     st,
		gateway:   gateway,
		resolver:  NewContactResolver(gateway, logger),
		validator: validation.New(),
		logger:    logger,
	}
}

// Get returns a post with its contact resolved.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	rec, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, s.storeErr(err)
	}
	return s.toPost(ctx, rec, nil)
}

// List returns all posts in store order, each contact resolved independently.
func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	recs, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]*domain.Post, 0, len(recs))
	for _, rec := range recs {
		post, err := s.toPost(ctx, rec, nil)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Create validates the request, resolves its contact, and persists a new
// post. Contact-resolution errors replace any other validation errors and a
// failed request leaves nothing persisted.
func (s *PostService) Create(ctx context.Context, req *domain.SavePostRequest) (*domain.Post, error) {
	fieldErrs := s.validator.Validate(req)

	contact, contactErrs := s.resolver.Resolve(ctx, req.ContactID, req.Contact)
	if len(contactErrs) > 0 {
		fieldErrs = contactErrs
	}
	if err := fieldErrs.Err(); err != nil {
		return nil, err
	}

	rec := &domain.PostRecord{
		Title:     req.Title,
		Content:   req.Content,
		TagsJSON:  domain.EncodeTags(req.Tags),
		ContactID: contactIDOf(contact),
	}
	if err := s.store.CreatePost(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "post created", "post_id", rec.ID, "has_contact", contact != nil)

	return s.toPost(ctx, rec, contact)
}

// Replace overwrites every field of an existing post with the request,
// including the contact association: when resolution yields no contact the
// stored contact reference is cleared.
func (s *PostService) Replace(ctx context.Context, id int64, req *domain.SavePostRequest) (*domain.Post, error) {
	rec, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, s.storeErr(err)
	}

	fieldErrs := s.validator.Validate(req)

	contact, contactErrs := s.resolver.Resolve(ctx, req.ContactID, req.Contact)
	if len(contactErrs) > 0 {
		fieldErrs = contactErrs
	}
	if err := fieldErrs.Err(); err != nil {
		return nil, err
	}

	rec.Title = req.Title
	rec.Content = req.Content
	rec.TagsJSON = domain.EncodeTags(req.Tags)
	rec.ContactID = contactIDOf(contact)

	if err := s.store.UpdatePost(ctx, rec); err != nil {
		return nil, s.storeErr(err)
	}

	s.logger.InfoContext(ctx, "post replaced", "post_id", rec.ID)

	return s.toPost(ctx, rec, contact)
}

// Patch overlays the present fields onto the existing post, re-validates the
// merged result under full-save rules, then resolves the contact from the
// original patch request. Unlike Replace, the stored contact reference is
// kept when resolution yields no contact.
func (s *PostService) Patch(ctx context.Context, id int64, patch *domain.PatchPostRequest) (*domain.Post, error) {
	rec, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, s.storeErr(err)
	}

	merged, err := mergeSave(rec, patch)
	if err != nil {
		return nil, fmt.Errorf("merge post %d: %w", id, err)
	}

	// Merged content/title/tags are validated first and reported alone;
	// contact resolution only runs as a second validation pass.
	if err := s.validator.Validate(merged).Err(); err != nil {
		return nil, err
	}

	contact, contactErrs := s.resolver.Resolve(ctx, patch.ContactID, patch.Contact)
	if err := contactErrs.Err(); err != nil {
		return nil, err
	}

	rec.Title = merged.Title
	rec.Content = merged.Content
	rec.TagsJSON = domain.EncodeTags(merged.Tags)
	if contact != nil {
		rec.ContactID = contact.ID
	}

	if err := s.store.UpdatePost(ctx, rec); err != nil {
		return nil, s.storeErr(err)
	}

	s.logger.InfoContext(ctx, "post patched", "post_id", rec.ID)

	return s.toPost(ctx, rec, contact)
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeletePost(ctx, id); err != nil {
		return s.storeErr(err)
	}
	s.logger.InfoContext(ctx, "post deleted", "post_id", id)
	return nil
}

// toPost assembles the read model from a record. The resolved contact, when
// already known from the write path, avoids a second gateway round-trip;
// otherwise the stored reference is looked up, treating a missing contact as
// no contact. This read-path leniency is deliberate: only writes report a
// dangling reference as a validation error.
func (s *PostService) toPost(ctx context.Context, rec *domain.PostRecord, resolved *domain.Contact) (*domain.Post, error) {
	tags, err := domain.DecodeTags(rec.TagsJSON)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", rec.ID, err)
	}

	contact := resolved
	if contact == nil && rec.ContactID != nil {
		contact, err = s.gateway.Get(ctx, *rec.ContactID)
		if errors.Is(err, contacts.ErrNotFound) {
			contact = nil
		} else if err != nil {
			return nil, err
		}
	}

	return &domain.Post{
		ID:      rec.ID,
		Title:   rec.Title,
		Content: rec.Content,
		Tags:    tags,
		Contact: contact,
		Created: rec.Created,
		Updated: rec.Updated,
	}, nil
}

// storeErr maps store sentinels onto domain errors.
func (s *PostService) storeErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound("Post not found")
	}
	return err
}

func contactIDOf(contact *domain.Contact) *int64 {
	if contact == nil {
		return nil
	}
	return contact.ID
}
