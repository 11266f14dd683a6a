package uploads

import (
	"fmt"
	"os"
	"path/filepath"

	"badabuilder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles upload handlers with the service.
type Handlers struct {
	Service *Service
}

// saveTemp writes the multipart file to a temp path and returns it. Callers
// remove it after the upload finishes.
func saveTemp(c *fiber.Ctx, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(fh.Filename)))
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

// UploadImage POST /api/v1/uploads/image
func (h *Handlers) UploadImage(c *fiber.Ctx) error {
	path, err := saveTemp(c, "file")
	if err != nil {
		return response.Error(c, "file is required", 400, nil)
	}
	defer os.Remove(path)

	url, err := h.Service.UploadImage(c.Context(), path)
	if err != nil {
		return response.Error(c, "Failed to upload image", 500, nil)
	}
	return response.Success(c, "Image uploaded", fiber.Map{"url": url}, nil)
}

// UploadBrochure POST /api/v1/uploads/brochure
func (h *Handlers) UploadBrochure(c *fiber.Ctx) error {
	path, err := saveTemp(c, "file")
	if err != nil {
		return response.Error(c, "file is required", 400, nil)
	}
	defer os.Remove(path)

	url, err := h.Service.UploadBrochure(c.Context(), path)
	if err != nil {
		return response.Error(c, "Failed to upload brochure", 500, nil)
	}
	return response.Success(c, "Brochure uploaded", fiber.Map{"url": url}, nil)
}
