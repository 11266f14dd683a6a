package subscriptions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"badabuilder-backend/internal/models"
	"badabuilder-backend/internal/payments"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSubscriptionTest(t *testing.T) (*Service, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	user := &models.User{
		UserID:       uuid.New(),
		Fullname:     "Asha Rao",
		Email:        "asha@example.com",
		PasswordHash: "x",
		Role:         "user",
	}
	require.NoError(t, db.Create(user).Error)
	return &Service{DB: db}, user.UserID
}

func TestSubscribe_StampsPlan(t *testing.T) {
	svc, userID := setupSubscriptionTest(t)

	user, plan, err := svc.Subscribe(context.Background(), userID, "3_months")
	require.NoError(t, err)
	assert.Equal(t, 8000.0, plan.PriceINR)
	require.NotNil(t, user.SubscriptionPlan)
	assert.Equal(t, "3_months", *user.SubscriptionPlan)
	require.NotNil(t, user.SubscriptionExpiry)
	assert.True(t, user.HasActiveSubscription(time.Now()))

	var stored models.User
	require.NoError(t, svc.DB.Where("user_id = ?", userID).First(&stored).Error)
	assert.True(t, stored.HasActiveSubscription(time.Now()))
}

func TestSubscribe_UnknownPlan(t *testing.T) {
	svc, userID := setupSubscriptionTest(t)

	_, _, err := svc.Subscribe(context.Background(), userID, "lifetime")
	require.Error(t, err)
	assert.Equal(t, "Unknown subscription plan", err.Error())
}

func TestSubscribe_UnknownUser(t *testing.T) {
	svc, _ := setupSubscriptionTest(t)

	_, _, err := svc.Subscribe(context.Background(), uuid.New(), "1_month")
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())
}

func TestSubscribe_RenewalExtendsFromExpiry(t *testing.T) {
	svc, userID := setupSubscriptionTest(t)

	first, _, err := svc.Subscribe(context.Background(), userID, "6_months")
	require.NoError(t, err)
	firstExpiry := *first.SubscriptionExpiry

	renewed, _, err := svc.Subscribe(context.Background(), userID, "6_months")
	require.NoError(t, err)
	assert.WithinDuration(t, firstExpiry.AddDate(0, 6, 0), *renewed.SubscriptionExpiry, time.Hour)
}

type fakeCreator struct {
	lastAmount int64
	lastMeta   map[string]string
}

func (f *fakeCreator) Create(amountCents int64, currency string, metadata map[string]string) (*payments.PaymentIntentResult, error) {
	f.lastAmount = amountCents
	f.lastMeta = metadata
	return &payments.PaymentIntentResult{ID: "pi_sub", ClientSecret: "secret_sub"}, nil
}

func TestSubscribeHandler(t *testing.T) {
	svc, userID := setupSubscriptionTest(t)
	creator := &fakeCreator{}
	h := &Handlers{Service: svc, StripeCreator: creator}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": userID.String(),
			"role":    "user",
		})
		return c.Next()
	})
	app.Get("/api/v1/subscriptions/plans", h.GetPlans)
	app.Post("/api/v1/subscriptions/subscribe", h.Subscribe)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/subscriptions/plans", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(map[string]string{"plan_id": "12_months"})
	req := httptest.NewRequest("POST", "/api/v1/subscriptions/subscribe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var decoded struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, "pi_sub", decoded.Data["payment_intent_id"])
	assert.Equal(t, "secret_sub", decoded.Data["client_secret"])
	assert.Equal(t, int64(2500000), creator.lastAmount)
	assert.Equal(t, "subscription", creator.lastMeta["kind"])
}
