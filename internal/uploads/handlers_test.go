package uploads

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	lastResource string
	err          error
}

func (f *fakeClient) Upload(ctx context.Context, filePath, resource string) (string, error) {
	f.lastResource = resource
	if f.err != nil {
		return "", f.err
	}
	return "https://res.cloudinary.com/demo/image/upload/sample.jpg", nil
}

func setupUploadTest(t *testing.T) (*Handlers, *fakeClient) {
	client := &fakeClient{}
	h := &Handlers{Service: &Service{Client: client}}
	return h, client
}

func multipartBody(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage_MissingFile(t *testing.T) {
	h, _ := setupUploadTest(t)
	app := fiber.New()
	app.Post("/api/v1/uploads/image", h.UploadImage)

	req := httptest.NewRequest("POST", "/api/v1/uploads/image", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadImage_Success(t *testing.T) {
	h, client := setupUploadTest(t)
	app := fiber.New()
	app.Post("/api/v1/uploads/image", h.UploadImage)

	buf, contentType := multipartBody(t, "file", "tower.png")
	req := httptest.NewRequest("POST", "/api/v1/uploads/image", buf)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image", client.lastResource)
}

func TestUploadBrochure_Success(t *testing.T) {
	h, client := setupUploadTest(t)
	app := fiber.New()
	app.Post("/api/v1/uploads/brochure", h.UploadBrochure)

	buf, contentType := multipartBody(t, "file", "brochure.pdf")
	req := httptest.NewRequest("POST", "/api/v1/uploads/brochure", buf)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "auto", client.lastResource)
}
