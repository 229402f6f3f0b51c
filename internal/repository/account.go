package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// AccountRepository defines the interface for account lookups and the
// follow-graph projections of an account.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	IDByHandle(ctx context.Context, handle string) (uint, bool, error)
	FollowersOf(ctx context.Context, id uint) ([]models.Account, error)
	FollowingOf(ctx context.Context, id uint) ([]models.Account, error)
	ProfileWithConnections(ctx context.Context, q models.ProfileQuery) (*models.Profile, error)
}

type accountRepository struct {
	db *gorm.DB
	in instrument
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db, in: newInstrument("accounts")}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.in.write(ctx, "Create", func(ctx context.Context) error {
		err := transaction(ctx, r.db, func(tx *gorm.DB) error {
			return tx.Create(account).Error
		})
		if isUniqueConstraintError(err) {
			return models.NewConflictError("handle already taken")
		}
		if err != nil {
			return writeError("could not create account", err)
		}
		return nil
	})
}

// Delete removes the account; posts, likes and follow edges go with it.
func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	return r.in.write(ctx, "Delete", func(ctx context.Context) error {
		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			res := tx.Delete(&models.Account{}, id)
			if res.Error != nil {
				return writeError("could not delete account", res.Error)
			}
			if res.RowsAffected == 0 {
				return models.NewNotFoundError("Account", id)
			}
			return nil
		})
	})
}

func (r *accountRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Account{}, "id = ?", id)
}

// IDByHandle returns ok=false for an unknown handle rather than an error.
func (r *accountRepository) IDByHandle(ctx context.Context, handle string) (uint, bool, error) {
	return accountIDByHandle(r.db.WithContext(ctx), handle)
}

func (r *accountRepository) FollowersOf(ctx context.Context, id uint) ([]models.Account, error) {
	return followersOf(r.db.WithContext(ctx), id)
}

func (r *accountRepository) FollowingOf(ctx context.Context, id uint) ([]models.Account, error) {
	return followingOf(r.db.WithContext(ctx), id)
}

func followersOf(tx *gorm.DB, id uint) ([]models.Account, error) {
	var accounts []models.Account
	err := tx.Joins("JOIN follows ON follows.follower_id = accounts.id").
		Where("follows.following_id = ?", id).
		Order("accounts.id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, readError(err)
	}
	return accounts, nil
}

func followingOf(tx *gorm.DB, id uint) ([]models.Account, error) {
	var accounts []models.Account
	err := tx.Joins("JOIN follows ON follows.following_id = accounts.id").
		Where("follows.follower_id = ?", id).
		Order("accounts.id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, readError(err)
	}
	return accounts, nil
}

// ProfileWithConnections loads an account by handle, or by id when no handle
// is given, together with its followers and followees.
func (r *accountRepository) ProfileWithConnections(ctx context.Context, q models.ProfileQuery) (*models.Profile, error) {
	var profile *models.Profile
	err := r.in.observe(ctx, "ProfileWithConnections", func(ctx context.Context) error {
		if q.Handle == "" && q.ID == 0 {
			return models.NewNotFoundMessage("account not found")
		}

		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			var account models.Account
			query := tx
			if q.Handle != "" {
				query = query.Where("handle = ?", q.Handle)
			} else {
				query = query.Where("id = ?", q.ID)
			}
			if err := query.Take(&account).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewNotFoundMessage("account not found")
				}
				return readError(err)
			}

			followers, err := followersOf(tx, account.ID)
			if err != nil {
				return err
			}
			following, err := followingOf(tx, account.ID)
			if err != nil {
				return err
			}

			profile = &models.Profile{
				ID:        account.ID,
				Name:      account.DisplayName,
				Followers: models.Summaries(followers),
				Following: models.Summaries(following),
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
