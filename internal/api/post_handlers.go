package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/postdeskapp/postdesk-server/internal/domain"
)

func (s *Server) registerPostRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPosts",
		Method:      http.MethodGet,
		Path:        "/posts",
		Summary:     "List posts",
		Description: "Returns all posts with their contacts resolved",
		Tags:        []string{"Posts"},
	}, s.handleListPosts)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createPost",
		Method:        http.MethodPost,
		Path:          "/posts",
		Summary:       "Create post",
		Description:   "Creates a post, resolving any referenced or embedded contact first",
		Tags:          []string{"Posts"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreatePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPost",
		Method:      http.MethodGet,
		Path:        "/posts/{id}",
		Summary:     "Get post",
		Description: "Returns a post by ID",
		Tags:        []string{"Posts"},
	}, s.handleGetPost)

	huma.Register(s.api, huma.Operation{
		OperationID: "replacePost",
		Method:      http.MethodPut,
		Path:        "/posts/{id}",
		Summary:     "Replace post",
		Description: "Replaces a post in full; the contact association is overwritten",
		Tags:        []string{"Posts"},
	}, s.handleReplacePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "patchPost",
		Method:      http.MethodPatch,
		Path:        "/posts/{id}",
		Summary:     "Patch post",
		Description: "Updates only the provided fields; the contact association is kept unless the patch names one",
		Tags:        []string{"Posts"},
	}, s.handlePatchPost)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deletePost",
		Method:        http.MethodDelete,
		Path:          "/posts/{id}",
		Summary:       "Delete post",
		Description:   "Deletes a post",
		Tags:          []string{"Posts"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeletePost)
}

// === DTOs ===

// PostIDInput contains the path parameter shared by single-post operations.
type PostIDInput struct {
	ID int64 `path:"id" doc:"Post ID"`
}

// PostOutput wraps a single post for Huma.
type PostOutput struct {
	Body domain.Post
}

// ListPostsOutput wraps the post list for Huma.
type ListPostsOutput struct {
	Body []*domain.Post
}

// CreatePostInput wraps the create request body for Huma.
type CreatePostInput struct {
	Body domain.SavePostRequest
}

// CreatePostOutput wraps the created post and its Location header for Huma.
type CreatePostOutput struct {
	Location string `header:"Location"`
	Body     domain.Post
}

// ReplacePostInput wraps the replace request for Huma.
type ReplacePostInput struct {
	ID   int64 `path:"id" doc:"Post ID"`
	Body domain.SavePostRequest
}

// PatchPostInput wraps the patch request for Huma.
type PatchPostInput struct {
	ID   int64 `path:"id" doc:"Post ID"`
	Body domain.PatchPostRequest
}

// === Handlers ===

func (s *Server) handleListPosts(ctx context.Context, _ *struct{}) (*ListPostsOutput, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListPostsOutput{Body: posts}, nil
}

func (s *Server) handleGetPost(ctx context.Context, input *PostIDInput) (*PostOutput, error) {
	post, err := s.posts.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PostOutput{Body: *post}, nil
}

func (s *Server) handleCreatePost(ctx context.Context, input *CreatePostInput) (*CreatePostOutput, error) {
	post, err := s.posts.Create(ctx, &input.Body)
	if err != nil {
		return nil, err
	}
	return &CreatePostOutput{
		Location: fmt.Sprintf("/posts/%d", post.ID),
		Body:     *post,
	}, nil
}

func (s *Server) handleReplacePost(ctx context.Context, input *ReplacePostInput) (*PostOutput, error) {
	post, err := s.posts.Replace(ctx, input.ID, &input.Body)
	if err != nil {
		return nil, err
	}
	return &PostOutput{Body: *post}, nil
}

func (s *Server) handlePatchPost(ctx context.Context, input *PatchPostInput) (*PostOutput, error) {
	post, err := s.posts.Patch(ctx, input.ID, &input.Body)
	if err != nil {
		return nil, err
	}
	return &PostOutput{Body: *post}, nil
}

func (s *Server) handleDeletePost(ctx context.Context, input *PostIDInput) (*struct{}, error) {
	if err := s.posts.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
