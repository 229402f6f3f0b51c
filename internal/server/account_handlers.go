package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the caller's profile with followers and following.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := s.accountService.Profile(ctx, models.ProfileQuery{Handle: caller(c)})
	if err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"user": profile})
}

// GetProfile returns another account's profile by id.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := s.accountService.Profile(ctx, models.ProfileQuery{ID: id})
	if err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"user": profile})
}

// FollowAccount makes the caller follow the account in the path.
func (s *Server) FollowAccount(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.followService.Follow(ctx, caller(c), id); err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, nil)
}

// UnfollowAccount removes the caller's follow edge to the account in the path.
func (s *Server) UnfollowAccount(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.followService.Unfollow(ctx, caller(c), id); err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusOK, nil)
}
