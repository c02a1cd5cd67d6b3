// Package store defines the persistence interface for posts.
package store

import (
	"context"
	"errors"

	"github.com/postdeskapp/postdesk-server/internal/domain"
)

// ErrNotFound is returned when no post exists for the requested id.
var ErrNotFound = errors.New("post not found")

// PostStore is the persistence surface for post records.
//
// CreatePost assigns the record's id and both timestamps; UpdatePost advances
// the updated timestamp and leaves created untouched. Implementations return
// ErrNotFound from the id-scoped operations when the post does not exist.
type PostStore interface {
	GetPost(ctx context.Context, id int64) (*domain.PostRecord, error)
	ListPosts(ctx context.Context) ([]*domain.PostRecord, error)
	CreatePost(ctx context.Context, rec *domain.PostRecord) error
	UpdatePost(ctx context.Context, rec *domain.PostRecord) error
	DeletePost(ctx context.Context, id int64) error
}
