package server

import (
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Content  string `json:"tweet_data"`
	MediaIDs []uint `json:"tweet_media_ids"`
}

// GetFeed returns posts by the accounts the caller follows.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	feed, err := s.postService.Feed(ctx, caller(c))
	if err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"tweets": feed})
}

// CreatePost publishes a post, optionally attaching previously uploaded media.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return respondWithError(c, models.NewInvalidArgumentError("Invalid request body"))
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	postID, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorHandle: caller(c),
		Content:      req.Content,
		MediaIDs:     req.MediaIDs,
	})
	if err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, fiber.Map{"tweet_id": postID})
}

// DeletePost removes one of the caller's posts.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		AuthorHandle: caller(c),
		PostID:       id,
	}); err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusOK, nil)
}

// LikePost records the caller's like on a post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.likeService.Like(ctx, caller(c), id); err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, nil)
}

// UnlikePost withdraws the caller's like.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.likeService.Unlike(ctx, caller(c), id); err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusOK, nil)
}
