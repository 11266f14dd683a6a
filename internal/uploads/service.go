package uploads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CloudinaryClient defines what we need from Cloudinary storage.
type CloudinaryClient interface {
	Upload(ctx context.Context, filePath, resource string) (string, error)
}

// HTTPClient is a CloudinaryClient backed by the unsigned upload HTTP API.
type HTTPClient struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	Client       *http.Client
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts the file to {base}/v1_1/{cloud}/{resource}/upload with the
// unsigned preset and returns the secure URL.
func (c *HTTPClient) Upload(ctx context.Context, filePath, resource string) (string, error) {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.CloudName == "" {
		return "", fmt.Errorf("cloudinary: CLOUDINARY_CLOUD_NAME is not set")
	}
	if c.UploadPreset == "" {
		return "", fmt.Errorf("cloudinary: CLOUDINARY_UPLOAD_PRESET is not set")
	}
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = "https://api.cloudinary.com"
	}
	url := fmt.Sprintf("%s/v1_1/%s/%s/upload", base, c.CloudName, resource)

	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("cloudinary open file: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("upload_preset", c.UploadPreset); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var data cloudinaryUploadResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", fmt.Errorf("cloudinary response decode: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if data.Error.Message != "" {
			return "", fmt.Errorf("cloudinary error: %s", data.Error.Message)
		}
		return "", fmt.Errorf("cloudinary error: status %d body: %s", resp.StatusCode, string(respBody))
	}
	if data.SecureURL != "" {
		return data.SecureURL, nil
	}
	if data.URL != "" {
		return data.URL, nil
	}
	return "", fmt.Errorf("cloudinary returned no URL, body: %s", string(respBody))
}

// Service encapsulates upload logic.
type Service struct {
	Client CloudinaryClient
}

// UploadImage uploads an image file and returns its hosted URL.
func (s *Service) UploadImage(ctx context.Context, filePath string) (string, error) {
	return s.Client.Upload(ctx, filePath, "image")
}

// UploadBrochure uploads a document (PDF) and returns its hosted URL.
func (s *Service) UploadBrochure(ctx context.Context, filePath string) (string, error) {
	return s.Client.Upload(ctx, filePath, "auto")
}
