package properties

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPropertyHandlers(t *testing.T) (*fiber.App, *Service) {
	svc, db := setupPropertyTest(t)
	ownerID := subscribedUser(t, db)
	h := &Handlers{Service: svc}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": ownerID.String(),
			"role":    "user",
		})
		return c.Next()
	})
	app.Get("/api/v1/properties/search", h.Search)
	app.Get("/api/v1/properties/get-property/:property_id", h.GetProperty)
	app.Post("/api/v1/properties/post-property", h.PostProperty)
	return app, svc
}

func TestPostPropertyHandler(t *testing.T) {
	app, _ := setupPropertyHandlers(t)

	body, _ := json.Marshal(validPost())
	req := httptest.NewRequest("POST", "/api/v1/properties/post-property", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestSearchHandler_TypeFilter(t *testing.T) {
	app, svc := setupPropertyHandlers(t)

	ownerID := subscribedUser(t, svc.DB)
	_, err := svc.PostProperty(context.Background(), ownerID, validPost())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/properties/search?type=flat", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var decoded struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Len(t, decoded.Data, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/properties/search?type=villa", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Empty(t, decoded.Data)
}

func TestGetPropertyHandler_InvalidID(t *testing.T) {
	app, _ := setupPropertyHandlers(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/properties/get-property/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
