package visits

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"badabuilder-backend/internal/models"
	"badabuilder-backend/internal/payments"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCreator struct {
	lastAmount int64
	lastMeta   map[string]string
}

func (f *fakeCreator) Create(amountCents int64, currency string, metadata map[string]string) (*payments.PaymentIntentResult, error) {
	f.lastAmount = amountCents
	f.lastMeta = metadata
	return &payments.PaymentIntentResult{ID: "pi_test", ClientSecret: "secret_test"}, nil
}

func setupVisitHandlers(t *testing.T) (*fiber.App, *fakeCreator) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SiteVisit{}))

	creator := &fakeCreator{}
	h := &Handlers{Service: &Service{DB: db}, StripeCreator: creator}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": uuid.New().String(),
			"role":    "user",
		})
		return c.Next()
	})
	app.Post("/api/v1/visits/book-visit", h.BookVisit)
	app.Get("/api/v1/visits/get-my-visits", h.GetMyVisits)
	return app, creator
}

func TestBookVisit_PrevisitCreatesPaymentIntent(t *testing.T) {
	app, creator := setupVisitHandlers(t)

	in := validBooking()
	in.PaymentMethod = "previsit"
	body, _ := json.Marshal(in)
	req := httptest.NewRequest("POST", "/api/v1/visits/book-visit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var decoded struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, "pi_test", decoded.Data["payment_intent_id"])
	assert.Equal(t, "secret_test", decoded.Data["client_secret"])
	assert.Equal(t, int64(30000), creator.lastAmount)
	assert.Equal(t, "site_visit", creator.lastMeta["kind"])
}

func TestBookVisit_PostvisitSkipsStripe(t *testing.T) {
	app, creator := setupVisitHandlers(t)

	body, _ := json.Marshal(validBooking())
	req := httptest.NewRequest("POST", "/api/v1/visits/book-visit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Zero(t, creator.lastAmount)
}
