package server

import (
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadMedia stores the multipart "file" field and returns its media id.
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return respondWithError(c, models.NewInvalidArgumentError("file field is required"))
	}

	file, err := header.Open()
	if err != nil {
		return respondWithError(c, models.NewInternalError(err))
	}
	defer func() { _ = file.Close() }()

	ctx, cancel := requestContext(c)
	defer cancel()

	mediaID, err := s.mediaService.Upload(ctx, service.UploadMediaInput{
		OwnerHandle: caller(c),
		Filename:    header.Filename,
		Content:     file,
	})
	if err != nil {
		return respondWithError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, fiber.Map{"media_id": mediaID})
}
