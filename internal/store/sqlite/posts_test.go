package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postdeskapp/postdesk-server/internal/domain"
	"github.com/postdeskapp/postdesk-server/internal/store"
)

// setupTestStore creates a store backed by a temp database.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	s, err := Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestCreatePost_AssignsIDAndTimestamps(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	rec := &domain.PostRecord{Title: "T", Content: "C", TagsJSON: "[]"}
	require.NoError(t, s.CreatePost(ctx, rec))

	assert.NotZero(t, rec.ID)
	assert.False(t, rec.Created.IsZero())
	assert.Equal(t, rec.Created, rec.Updated)

	got, err := s.GetPost(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "C", got.Content)
	assert.Equal(t, "[]", got.TagsJSON)
	assert.Nil(t, got.ContactID)
}

func TestCreatePost_SequentialIDs(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := &domain.PostRecord{Title: "a", Content: "a", TagsJSON: "[]"}
	second := &domain.PostRecord{Title: "b", Content: "b", TagsJSON: "[]"}
	require.NoError(t, s.CreatePost(ctx, first))
	require.NoError(t, s.CreatePost(ctx, second))

	assert.Greater(t, second.ID, first.ID)
}

func TestGetPost_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetPost(context.Background(), 12345)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetPost_RoundTripsContactID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	contactID := int64(9)
	rec := &domain.PostRecord{Title: "T", Content: "C", TagsJSON: `["a"]`, ContactID: &contactID}
	require.NoError(t, s.CreatePost(ctx, rec))

	got, err := s.GetPost(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ContactID)
	assert.Equal(t, int64(9), *got.ContactID)
}

func TestUpdatePost_AdvancesUpdatedOnly(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	rec := &domain.PostRecord{Title: "T", Content: "C", TagsJSON: "[]"}
	require.NoError(t, s.CreatePost(ctx, rec))
	created := rec.Created

	time.Sleep(5 * time.Millisecond)

	rec.Title = "T2"
	rec.ContactID = nil
	require.NoError(t, s.UpdatePost(ctx, rec))

	got, err := s.GetPost(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, created, got.Created)
	assert.True(t, got.Updated.After(created))
}

func TestUpdatePost_ClearsContactID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	contactID := int64(3)
	rec := &domain.PostRecord{Title: "T", Content: "C", TagsJSON: "[]", ContactID: &contactID}
	require.NoError(t, s.CreatePost(ctx, rec))

	rec.ContactID = nil
	require.NoError(t, s.UpdatePost(ctx, rec))

	got, err := s.GetPost(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ContactID)
}

func TestUpdatePost_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.UpdatePost(context.Background(), &domain.PostRecord{ID: 999, TagsJSON: "[]"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListPosts_StoreOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, s.CreatePost(ctx, &domain.PostRecord{Title: title, Content: "c", TagsJSON: "[]"}))
	}

	recs, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "first", recs[0].Title)
	assert.Equal(t, "third", recs[2].Title)
}

func TestListPosts_EmptyIsNotNil(t *testing.T) {
	s := setupTestStore(t)

	recs, err := s.ListPosts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	rec := &domain.PostRecord{Title: "T", Content: "C", TagsJSON: "[]"}
	require.NoError(t, s.CreatePost(ctx, rec))

	require.NoError(t, s.DeletePost(ctx, rec.ID))

	_, err := s.GetPost(ctx, rec.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.DeletePost(ctx, rec.ID), store.ErrNotFound)
}
