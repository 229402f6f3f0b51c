package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// FollowRepository creates and removes directed follow edges. An edge is
// either absent or present; following twice or unfollowing a missing edge
// fails instead of doing nothing.
type FollowRepository interface {
	Follow(ctx context.Context, followerHandle string, followingID uint) error
	Unfollow(ctx context.Context, followerHandle string, followingID uint) error
}

type followRepository struct {
	db *gorm.DB
	in instrument
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db, in: newInstrument("follows")}
}

func (r *followRepository) resolve(tx *gorm.DB, followerHandle string, followingID uint) (uint, error) {
	followerID, err := requireAccountID(tx, followerHandle)
	if err != nil {
		return 0, err
	}
	if err := requireAccount(tx, followingID); err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return 0, models.NewNotFoundMessage("account does not exist")
		}
		return 0, err
	}
	return followerID, nil
}

// Follow inserts the edge. A duplicate edge is rejected by the primary key and
// reported as INTEGRITY_VIOLATION.
func (r *followRepository) Follow(ctx context.Context, followerHandle string, followingID uint) error {
	return r.in.write(ctx, "Follow", func(ctx context.Context) error {
		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			followerID, err := r.resolve(tx, followerHandle, followingID)
			if err != nil {
				return err
			}
			if followerID == followingID {
				return models.NewInvalidArgumentError("cannot follow yourself")
			}

			edge := models.Follow{FollowerID: followerID, FollowingID: followingID}
			if err := tx.Create(&edge).Error; err != nil {
				return writeError("could not follow account", err)
			}
			return nil
		})
	})
}

func (r *followRepository) Unfollow(ctx context.Context, followerHandle string, followingID uint) error {
	return r.in.write(ctx, "Unfollow", func(ctx context.Context) error {
		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			followerID, err := r.resolve(tx, followerHandle, followingID)
			if err != nil {
				return err
			}

			res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
			if res.Error != nil {
				return writeError("could not unfollow account", res.Error)
			}
			if res.RowsAffected == 0 {
				return models.NewNotFoundMessage("no follow entry found for these IDs")
			}
			return nil
		})
	})
}
