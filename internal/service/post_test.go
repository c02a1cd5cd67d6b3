package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postdeskapp/postdesk-server/internal/contacts"
	"github.com/postdeskapp/postdesk-server/internal/domain"
	domainerrors "github.com/postdeskapp/postdesk-server/internal/errors"
	"github.com/postdeskapp/postdesk-server/internal/store/sqlite"
)

// setupTestService creates a post service over a temp database and a fake
// contacts gateway.
func setupTestService(t *testing.T) (*PostService, *contacts.Fake, *sqlite.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	fake := contacts.NewFake()
	return NewPostService(st, fake, logger), fake, st
}

// fieldDetails extracts the field→messages map from a validation error.
func fieldDetails(t *testing.T, err error) domainerrors.FieldErrors {
	t.Helper()

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(domainerrors.FieldErrors)
	require.True(t, ok, "details should be field errors, got %T", domainErr.Details)
	return details
}

func intp(v int64) *int64   { return &v }
func strp(v string) *string { return &v }

func TestCreate_NoContact(t *testing.T) {
	svc, fake, _ := setupTestService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, &domain.SavePostRequest{
		Title:   "T",
		Content: "C",
		Tags:    []string{"a", "b"},
	})
	require.NoError(t, err)

	assert.NotZero(t, post.ID)
	assert.Equal(t, []string{"a", "b"}, post.Tags)
	assert.Nil(t, post.Contact)
	assert.Zero(t, fake.GetCalls)
}

func TestCreate_DanglingContactID(t *testing.T) {
	svc, _, st := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.SavePostRequest{
		Title:     "T",
		Content:   "C",
		ContactID: intp(999),
	})

	details := fieldDetails(t, err)
	assert.Equal(t, domainerrors.FieldErrors{"contactId": {"Contact not found"}}, details)

	// Nothing persisted.
	recs, listErr := st.ListPosts(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, recs)
}

func TestCreate_ContactErrorsReportedAlone(t *testing.T) {
	svc, _, _ := setupTestService(t)

	// Title and content are missing too, but the contact error wins and is
	// the only one reported.
	_, err := svc.Create(context.Background(), &domain.SavePostRequest{
		ContactID: intp(999),
	})

	details := fieldDetails(t, err)
	assert.Equal(t, domainerrors.FieldErrors{"contactId": {"Contact not found"}}, details)
}

func TestCreate_MissingFields(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.Create(context.Background(), &domain.SavePostRequest{})

	details := fieldDetails(t, err)
	assert.Equal(t, []string{"is required"}, details["title"])
	assert.Equal(t, []string{"is required"}, details["content"])
}

func TestCreate_EmbeddedContactWithoutIDCreates(t *testing.T) {
	svc, fake, _ := setupTestService(t)

	post, err := svc.Create(context.Background(), &domain.SavePostRequest{
		Title:   "T",
		Content: "C",
		Contact: &domain.Contact{Fields: map[string]any{"firstName": "Ada"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.CreateCalls)
	assert.Zero(t, fake.UpdateCalls)
	require.NotNil(t, post.Contact)
	assert.NotNil(t, post.Contact.ID)
}

func TestCreate_EmbeddedContactWithIDUpdates(t *testing.T) {
	svc, fake, _ := setupTestService(t)
	existing := fake.Add(&domain.Contact{Fields: map[string]any{"firstName": "Ada"}})

	post, err := svc.Create(context.Background(), &domain.SavePostRequest{
		Title:   "T",
		Content: "C",
		Contact: &domain.Contact{ID: existing.ID, Fields: map[string]any{"firstName": "Grace"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.UpdateCalls)
	assert.Zero(t, fake.CreateCalls)
	require.NotNil(t, post.Contact)
	assert.Equal(t, *existing.ID, *post.Contact.ID)
}

func TestCreate_ContactIDWinsOverEmbeddedContact(t *testing.T) {
	svc, fake, _ := setupTestService(t)
	existing := fake.Add(&domain.Contact{Fields: map[string]any{"firstName": "Ada"}})

	post, err := svc.Create(context.Background(), &domain.SavePostRequest{
		Title:     "T",
		Content:   "C",
		ContactID: existing.ID,
		Contact:   &domain.Contact{Fields: map[string]any{"firstName": "Ignored"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.GetCalls)
	assert.Zero(t, fake.CreateCalls)
	require.NotNil(t, post.Contact)
	assert.Equal(t, "Ada", post.Contact.Fields["firstName"])
}

func TestCreate_GatewayUnavailable(t *testing.T) {
	svc, fake, st := setupTestService(t)
	fake.FailWith = contacts.ErrUnavailable

	_, err := svc.Create(context.Background(), &domain.SavePostRequest{
		Title:     "T",
		Content:   "C",
		ContactID: intp(1),
	})

	details := fieldDetails(t, err)
	assert.Equal(t, domainerrors.FieldErrors{"contactId": {"contacts service unavailable"}}, details)

	recs, listErr := st.ListPosts(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, recs)
}

func TestCreate_BadRequestMessageVerbatim(t *testing.T) {
	svc, fake, _ := setupTestService(t)
	fake.FailWith = &contacts.BadRequestError{Message: "email is invalid"}

	_, err := svc.Create(context.Background(), &domain.SavePostRequest{
		Title:   "T",
		Content: "C",
		Contact: &domain.Contact{Fields: map[string]any{"email": "nope"}},
	})

	details := fieldDetails(t, err)
	assert.Equal(t, domainerrors.FieldErrors{"contact": {"email is invalid"}}, details)
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGet_MissingContactReadsAsNone(t *testing.T) {
	svc, fake, _ := setupTestService(t)
	ctx := context.Background()

	contact := fake.Add(&domain.Contact{Fields: map[string]any{"firstName": "Ada"}})
	created, err := svc.Create(ctx, &domain.SavePostRequest{
		Title: "T", Content: "C", ContactID: contact.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Contact)

	// Contact vanishes from the external service; the read path treats the
	// dangling reference as no contact, not as an error.
	fake.FailWith = contacts.ErrNotFound

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Contact)
}

func TestReplace_ClearsContactWhenAbsent(t *testing.T) {
	svc, fake, st := setupTestService(t)
	ctx := context.Background()

	contact := fake.Add(&domain.Contact{Fields: map[string]any{"firstName": "Ada"}})
	created, err := svc.Create(ctx, &domain.SavePostRequest{
		Title: "T", Content: "C", ContactID: contact.ID,
	})
	require.NoError(t, err)

	replaced, err := svc.Replace(ctx, created.ID, &domain.SavePostRequest{
		Title: "T2", Content: "C2",
	})
	require.NoError(t, err)
	assert.Nil(t, replaced.Contact)

	rec, err := st.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, rec.ContactID)
}

func TestReplace_NotFound(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.Replace(context.Background(), 404, &domain.SavePostRequest{Title: "T", Content: "C"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPatch_TitleOnly(t *testing.T) {
	svc, fake, _ := setupTestService(t)
	ctx := context.Background()

	contact := fake.Add(&domain.Contact{Fields: map[string]any{"firstName": "Ada"}})
	created, err := svc.Create(ctx, &domain.SavePostRequest{
		Title: "T", Content: "C", Tags: []string{"a"}, ContactID: contact.ID,
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	patched, err := svc.Patch(ctx, created.ID, &domain.PatchPostRequest{Title: strp("new")})
	require.NoError(t, err)

	assert.Equal(t, "new", patched.Title)
	assert.Equal(t, "C", patched.Content)
	assert.Equal(t, []string{"a"}, patched.Tags)
	require.NotNil(t, patched.Contact)
	assert.Equal(t, *contact.ID, *patched.Contact.ID)
	assert.True(t, patched.Updated.After(created.Updated))
	assert.True(t, patched.Created.Equal(created.Created))
}

func TestPatch_PreservesContactWhenAbsent(t *testing.T) {
	svc, fake, st := setupTestService(t)
	ctx := context.Background()

	contact := fake.Add(&domain.Contact{Fields: map[string]any{"firstName": "Ada"}})
	created, err := svc.Create(ctx, &domain.SavePostRequest{
		Title: "T", Content: "C", ContactID: contact.ID,
	})
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, created.ID, &domain.PatchPostRequest{Content: strp("C2")})
	require.NoError(t, err)
	require.NotNil(t, patched.Contact)

	rec, err := st.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, rec.ContactID)
	assert.Equal(t, *contact.ID, *rec.ContactID)
}

func TestPatch_DanglingContactMutatesNothing(t *testing.T) {
	svc, _, st := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.SavePostRequest{
		Title: "T", Content: "C", Tags: []string{"a"},
	})
	require.NoError(t, err)

	_, err = svc.Patch(ctx, created.ID, &domain.PatchPostRequest{
		Title:     strp("new"),
		ContactID: intp(999),
	})
	details := fieldDetails(t, err)
	assert.Equal(t, domainerrors.FieldErrors{"contactId": {"Contact not found"}}, details)

	// A subsequent read shows no change, title included.
	rec, err := st.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", rec.Title)
	assert.True(t, rec.Updated.Equal(created.Updated))
}

func TestPatch_MergedValidationRunsBeforeContactResolution(t *testing.T) {
	svc, fake, _ := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.SavePostRequest{Title: "T", Content: "C"})
	require.NoError(t, err)
	getCallsBefore := fake.GetCalls

	// Emptying the title fails the merged validation; the dangling contact
	// reference is never resolved.
	_, err = svc.Patch(ctx, created.ID, &domain.PatchPostRequest{
		Title:     strp(""),
		ContactID: intp(999),
	})
	details := fieldDetails(t, err)
	assert.Equal(t, domainerrors.FieldErrors{"title": {"is required"}}, details)
	assert.Equal(t, getCallsBefore, fake.GetCalls)
}

func TestPatch_EmptyTagsReplaces(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.SavePostRequest{
		Title: "T", Content: "C", Tags: []string{"a", "b"},
	})
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, created.ID, &domain.PatchPostRequest{Tags: []string{}})
	require.NoError(t, err)
	assert.Empty(t, patched.Tags)
}

func TestPatch_NotFound(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.Patch(context.Background(), 404, &domain.PatchPostRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.SavePostRequest{Title: "T", Content: "C"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domainerrors.ErrNotFound)
}

func TestList_ResolvesEachContact(t *testing.T) {
	svc, fake, _ := setupTestService(t)
	ctx := context.Background()

	contact := fake.Add(&domain.Contact{Fields: map[string]any{"firstName": "Ada"}})
	_, err := svc.Create(ctx, &domain.SavePostRequest{Title: "a", Content: "a", ContactID: contact.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.SavePostRequest{Title: "b", Content: "b"})
	require.NoError(t, err)

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a", posts[0].Title)
	assert.NotNil(t, posts[0].Contact)
	assert.Nil(t, posts[1].Contact)
}
