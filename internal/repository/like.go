package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// LikeRepository records at most one like per account and post.
type LikeRepository interface {
	Exists(ctx context.Context, accountID, postID uint) (bool, error)
	AddLike(ctx context.Context, accountHandle string, postID uint) error
	RemoveLike(ctx context.Context, accountHandle string, postID uint) error
}

type likeRepository struct {
	db *gorm.DB
	in instrument
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, in: newInstrument("likes")}
}

func (r *likeRepository) Exists(ctx context.Context, accountID, postID uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Like{}, "account_id = ? AND post_id = ?", accountID, postID)
}

func (r *likeRepository) resolve(tx *gorm.DB, accountHandle string, postID uint) (uint, error) {
	accountID, err := requireAccountID(tx, accountHandle)
	if err != nil {
		return 0, err
	}
	if err := requirePost(tx, postID); err != nil {
		return 0, err
	}
	return accountID, nil
}

// AddLike rejects a repeated like with CONFLICT. Two concurrent first likes
// both pass that check; the unique index stops the second one, which is then
// reported as INTEGRITY_VIOLATION.
func (r *likeRepository) AddLike(ctx context.Context, accountHandle string, postID uint) error {
	return r.in.write(ctx, "AddLike", func(ctx context.Context) error {
		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			accountID, err := r.resolve(tx, accountHandle, postID)
			if err != nil {
				return err
			}

			liked, err := exists(tx, &models.Like{}, "account_id = ? AND post_id = ?", accountID, postID)
			if err != nil {
				return err
			}
			if liked {
				return models.NewConflictError("like already exists")
			}

			like := models.Like{AccountID: accountID, PostID: postID}
			if err := tx.Create(&like).Error; err != nil {
				return writeError("could not add like", err)
			}
			return nil
		})
	})
}

func (r *likeRepository) RemoveLike(ctx context.Context, accountHandle string, postID uint) error {
	return r.in.write(ctx, "RemoveLike", func(ctx context.Context) error {
		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			accountID, err := r.resolve(tx, accountHandle, postID)
			if err != nil {
				return err
			}

			res := tx.Where("account_id = ? AND post_id = ?", accountID, postID).Delete(&models.Like{})
			if res.Error != nil {
				return writeError("could not remove like", res.Error)
			}
			if res.RowsAffected == 0 {
				return models.NewNotFoundMessage("no like entry found for this account and post")
			}
			return nil
		})
	})
}
