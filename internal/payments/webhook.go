package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"badabuilder-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type WebhookHandler struct {
	DB            *gorm.DB
	WebhookSecret string
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type paymentIntentObject struct {
	ID             string            `json:"id"`
	AmountReceived int               `json:"amount_received"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	Metadata       map[string]string `json:"metadata"`
}

// HandleWebhook POST /api/v1/stripe/webhook — raw body, signature
// verification, then process.
func (wh *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	rawBody := c.BodyRaw()
	sig := c.Get("Stripe-Signature")

	if len(rawBody) == 0 {
		log.Warn().Msg("Stripe webhook received empty body (ensure no global body parser consumes the webhook body)")
		return c.Status(400).SendString("Webhook Error: empty body")
	}

	if err := verifyStripeSignature(rawBody, sig, wh.WebhookSecret); err != nil {
		log.Warn().Err(err).Bool("has_sig", sig != "").Msg("Stripe webhook signature verification failed")
		return c.Status(400).SendString(fmt.Sprintf("Webhook Error: %s", err.Error()))
	}

	var event stripeEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return c.Status(400).SendString(fmt.Sprintf("Webhook Error: %s", err.Error()))
	}

	if event.Type == "payment_intent.succeeded" {
		var pi paymentIntentObject
		if err := json.Unmarshal(event.Data.Object, &pi); err != nil {
			return c.Status(200).SendString("ok")
		}
		// Domain errors still return 200 so Stripe does not retry forever.
		if err := wh.handlePaymentIntentSucceeded(pi); err != nil {
			log.Warn().Err(err).Str("payment_intent", pi.ID).Msg("Stripe webhook processing failed")
		}
	}

	return c.Status(200).SendString("ok")
}

func (wh *WebhookHandler) handlePaymentIntentSucceeded(pi paymentIntentObject) error {
	switch pi.Metadata["kind"] {
	case "unit_booking":
		return wh.confirmUnitBooking(pi)
	case "site_visit":
		return wh.confirmVisitPayment(pi)
	}
	return nil
}

// confirmUnitBooking moves the paid unit to booked, idempotently: a unit
// already booked with this payment intent is skipped.
func (wh *WebhookHandler) confirmUnitBooking(pi paymentIntentObject) error {
	unitID := pi.Metadata["unit_id"]
	bookedBy := pi.Metadata["booked_by"]
	if unitID == "" {
		return nil
	}
	return wh.DB.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.Where("unit_id = ?", unitID).First(&unit).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New("Unit not found")
			}
			return err
		}
		if unit.Status == models.UnitStatusBooked {
			return nil
		}
		amount := float64(pi.AmountReceived) / 100
		return tx.Model(&unit).Updates(map[string]interface{}{
			"status":         models.UnitStatusBooked,
			"booked_by":      bookedBy,
			"payment_id":     pi.ID,
			"booking_amount": amount,
		}).Error
	})
}

// confirmVisitPayment stamps the payment intent on a previsit booking.
func (wh *WebhookHandler) confirmVisitPayment(pi paymentIntentObject) error {
	visitID := pi.Metadata["visit_id"]
	if visitID == "" {
		return nil
	}
	return wh.DB.Model(&models.SiteVisit{}).
		Where("visit_id = ?", visitID).
		Update("payment_id", pi.ID).Error
}

// verifyStripeSignature verifies the Stripe-Signature header using the
// webhook secret.
func verifyStripeSignature(payload []byte, sigHeader, secret string) error {
	if sigHeader == "" || secret == "" {
		return errors.New("missing signature or secret")
	}

	var timestamp string
	var signatures []string

	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == "" || len(signatures) == 0 {
		return errors.New("invalid signature format")
	}

	signedPayload := timestamp + "." + string(payload)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signedPayload))
	expectedSig := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expectedSig)) {
			ts, err := strconv.ParseInt(timestamp, 10, 64)
			if err != nil {
				return errors.New("invalid timestamp")
			}
			diff := time.Now().Unix() - ts
			if diff < 0 {
				diff = -diff
			}
			if diff > 300 {
				return errors.New("timestamp too old")
			}
			return nil
		}
	}

	return errors.New("signature mismatch")
}
