package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// MediaRepository registers stored files and resolves their links.
type MediaRepository interface {
	LinkFor(ctx context.Context, mediaID uint) (string, error)
	AddMedia(ctx context.Context, link string) (uint, error)
}

type mediaRepository struct {
	db *gorm.DB
	in instrument
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db, in: newInstrument("media")}
}

func (r *mediaRepository) LinkFor(ctx context.Context, mediaID uint) (string, error) {
	var media models.Media
	err := r.db.WithContext(ctx).Select("link").Where("id = ?", mediaID).Take(&media).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", models.NewNotFoundError("Media", mediaID)
	}
	if err != nil {
		return "", readError(err)
	}
	return media.Link, nil
}

// AddMedia registers an unattached media row and returns its id.
func (r *mediaRepository) AddMedia(ctx context.Context, link string) (uint, error) {
	media := models.Media{Link: link}
	err := r.in.write(ctx, "AddMedia", func(ctx context.Context) error {
		return transaction(ctx, r.db, func(tx *gorm.DB) error {
			if err := tx.Create(&media).Error; err != nil {
				return models.NewIntegrityError("could not register media", err)
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return media.ID, nil
}
