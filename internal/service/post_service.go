package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/validation"
)

// PostService provides post creation, deletion and the follow feed.
type PostService struct {
	posts repository.PostRepository
}

type CreatePostInput struct {
	AuthorHandle string
	Content      string
	MediaIDs     []uint
}

type DeletePostInput struct {
	AuthorHandle string
	PostID       uint
}

// NewPostService returns a new PostService.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreatePost validates the content and stores the post with its attachments.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (uint, error) {
	if err := validation.ValidateContent(in.Content); err != nil {
		return 0, models.NewInvalidArgumentError(err.Error())
	}

	var postID uint
	err := traced(ctx, "PostService", "CreatePost", func(ctx context.Context) error {
		var err error
		postID, err = s.posts.AddPost(ctx, in.AuthorHandle, in.Content, in.MediaIDs)
		return err
	})
	return postID, err
}

// DeletePost removes a post the caller authored.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	return traced(ctx, "PostService", "DeletePost", func(ctx context.Context) error {
		return s.posts.DeletePost(ctx, in.AuthorHandle, in.PostID)
	})
}

// Feed returns posts from accounts the viewer follows.
func (s *PostService) Feed(ctx context.Context, viewerHandle string) ([]models.PostView, error) {
	var feed []models.PostView
	err := traced(ctx, "PostService", "Feed", func(ctx context.Context) error {
		var err error
		feed, err = s.posts.FeedFor(ctx, viewerHandle)
		return err
	})
	return feed, err
}
