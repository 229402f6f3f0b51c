package service

import (
	"context"
	"errors"
	"io"

	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/storage"
	"chirp/internal/validation"
)

// MediaService stores uploaded files and registers them for later attachment.
type MediaService struct {
	media    repository.MediaRepository
	accounts repository.AccountRepository
	saver    storage.Saver
}

type UploadMediaInput struct {
	OwnerHandle string
	Filename    string
	Content     io.Reader
}

// NewMediaService returns a new MediaService.
func NewMediaService(media repository.MediaRepository, accounts repository.AccountRepository, saver storage.Saver) *MediaService {
	return &MediaService{media: media, accounts: accounts, saver: saver}
}

// Upload saves the file under the owner's directory and returns the new media id.
func (s *MediaService) Upload(ctx context.Context, in UploadMediaInput) (uint, error) {
	var mediaID uint
	err := traced(ctx, "MediaService", "Upload", func(ctx context.Context) error {
		_, ok, err := s.accounts.IDByHandle(ctx, in.OwnerHandle)
		if err != nil {
			return err
		}
		if !ok {
			return models.NewNotFoundMessage("account does not exist")
		}

		link, err := s.saver.Save(ctx, in.OwnerHandle, in.Filename, in.Content)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrUnsupportedType):
				return models.NewUnprocessableError("file type not allowed", err)
			case errors.Is(err, storage.ErrTooLarge):
				return models.NewUnprocessableError("file too large", err)
			case errors.Is(err, storage.ErrInvalidOwner):
				return models.NewUnprocessableError("cannot store files for this account", err)
			default:
				return models.NewInternalError(err)
			}
		}
		if err := validation.ValidateLink(link); err != nil {
			return models.NewUnprocessableError("stored link is invalid", err)
		}

		mediaID, err = s.media.AddMedia(ctx, link)
		return err
	})
	return mediaID, err
}

// Link resolves a media id to its stored link.
func (s *MediaService) Link(ctx context.Context, mediaID uint) (string, error) {
	return s.media.LinkFor(ctx, mediaID)
}
