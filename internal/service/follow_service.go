package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// FollowService manages the follow graph.
type FollowService struct {
	follows repository.FollowRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(follows repository.FollowRepository) *FollowService {
	return &FollowService{follows: follows}
}

// Follow makes handle follow the account with targetID.
func (s *FollowService) Follow(ctx context.Context, handle string, targetID uint) error {
	if targetID == 0 {
		return models.NewInvalidArgumentError("account id is required")
	}
	return traced(ctx, "FollowService", "Follow", func(ctx context.Context) error {
		return s.follows.Follow(ctx, handle, targetID)
	})
}

// Unfollow removes the edge handle -> targetID.
func (s *FollowService) Unfollow(ctx context.Context, handle string, targetID uint) error {
	if targetID == 0 {
		return models.NewInvalidArgumentError("account id is required")
	}
	return traced(ctx, "FollowService", "Unfollow", func(ctx context.Context) error {
		return s.follows.Unfollow(ctx, handle, targetID)
	})
}
