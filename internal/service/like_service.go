package service

import (
	"context"

	"chirp/internal/repository"
)

// LikeService records likes on posts.
type LikeService struct {
	likes repository.LikeRepository
}

// NewLikeService returns a new LikeService.
func NewLikeService(likes repository.LikeRepository) *LikeService {
	return &LikeService{likes: likes}
}

func (s *LikeService) Like(ctx context.Context, handle string, postID uint) error {
	return traced(ctx, "LikeService", "Like", func(ctx context.Context) error {
		return s.likes.AddLike(ctx, handle, postID)
	})
}

func (s *LikeService) Unlike(ctx context.Context, handle string, postID uint) error {
	return traced(ctx, "LikeService", "Unlike", func(ctx context.Context) error {
		return s.likes.RemoveLike(ctx, handle, postID)
	})
}
