package visits

import (
	"context"
	"testing"
	"time"

	"badabuilder-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupVisitTest(t *testing.T) (*Service, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SiteVisit{}))
	return &Service{DB: db}, uuid.New()
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func validBooking() BookVisitInput {
	return BookVisitInput{
		Date:          futureDate(7),
		Time:          "11:00",
		People:        2,
		Person1:       "Asha",
		Person2:       "Ravi",
		PickupAddress: "MG Road, Pune",
		PaymentMethod: "postvisit",
	}
}

func TestEstimateCharge(t *testing.T) {
	assert.Equal(t, 300.0, EstimateCharge(0))
	assert.Equal(t, 300.0, EstimateCharge(45))
	assert.Equal(t, 300.0, EstimateCharge(60))
	assert.Equal(t, 450.0, EstimateCharge(90))
	assert.Equal(t, 600.0, EstimateCharge(120))
}

func TestBookVisit_Success(t *testing.T) {
	svc, userID := setupVisitTest(t)

	visit, err := svc.BookVisit(context.Background(), userID, validBooking())
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusScheduled, visit.Status)
	assert.Equal(t, 300.0, visit.ChargeAmount)
	assert.Equal(t, userID, visit.UserID)
}

func TestBookVisit_OutsideHours(t *testing.T) {
	svc, userID := setupVisitTest(t)

	in := validBooking()
	in.Time = "09:30"
	_, err := svc.BookVisit(context.Background(), userID, in)
	require.Error(t, err)
	assert.Equal(t, "Visits run between 10:00 and 17:00", err.Error())

	in.Time = "17:00"
	_, err = svc.BookVisit(context.Background(), userID, in)
	require.Error(t, err)
}

func TestBookVisit_PeopleBounds(t *testing.T) {
	svc, userID := setupVisitTest(t)

	in := validBooking()
	in.People = 4
	_, err := svc.BookVisit(context.Background(), userID, in)
	require.Error(t, err)
	assert.Equal(t, "People must be between 1 and 3", err.Error())

	in.People = 3
	in.Person3 = ""
	_, err = svc.BookVisit(context.Background(), userID, in)
	require.Error(t, err)
	assert.Equal(t, "Name required for every visitor", err.Error())
}

func TestBookVisit_PastDate(t *testing.T) {
	svc, userID := setupVisitTest(t)

	in := validBooking()
	in.Date = "2020-01-01"
	_, err := svc.BookVisit(context.Background(), userID, in)
	require.Error(t, err)
	assert.Equal(t, "Visit date must be in the future", err.Error())
}

func TestBookVisit_BadPaymentMethod(t *testing.T) {
	svc, userID := setupVisitTest(t)

	in := validBooking()
	in.PaymentMethod = "cash"
	_, err := svc.BookVisit(context.Background(), userID, in)
	require.Error(t, err)
	assert.Equal(t, "Payment method must be previsit or postvisit", err.Error())
}

func TestBookVisit_LongerVisitCharge(t *testing.T) {
	svc, userID := setupVisitTest(t)

	in := validBooking()
	in.DurationMinutes = 90
	visit, err := svc.BookVisit(context.Background(), userID, in)
	require.NoError(t, err)
	assert.Equal(t, 450.0, visit.ChargeAmount)
}

func TestRescheduleVisit(t *testing.T) {
	svc, userID := setupVisitTest(t)
	visit, err := svc.BookVisit(context.Background(), userID, validBooking())
	require.NoError(t, err)

	moved, err := svc.RescheduleVisit(context.Background(), userID, visit.VisitID, futureDate(14), "14:00")
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusRescheduled, moved.Status)
	assert.Equal(t, "14:00", moved.VisitTime)

	_, err = svc.RescheduleVisit(context.Background(), userID, visit.VisitID, futureDate(14), "08:00")
	require.Error(t, err)
}

func TestRescheduleVisit_OtherUsersVisitHidden(t *testing.T) {
	svc, userID := setupVisitTest(t)
	visit, err := svc.BookVisit(context.Background(), userID, validBooking())
	require.NoError(t, err)

	_, err = svc.RescheduleVisit(context.Background(), uuid.New(), visit.VisitID, futureDate(14), "14:00")
	require.Error(t, err)
	assert.Equal(t, "Visit not found", err.Error())
}

func TestCancelVisit(t *testing.T) {
	svc, userID := setupVisitTest(t)
	visit, err := svc.BookVisit(context.Background(), userID, validBooking())
	require.NoError(t, err)

	cancelled, err := svc.CancelVisit(context.Background(), userID, visit.VisitID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusCancelled, cancelled.Status)

	_, err = svc.RescheduleVisit(context.Background(), userID, visit.VisitID, futureDate(14), "14:00")
	require.Error(t, err)
	assert.Equal(t, "Visit is cancelled", err.Error())
}

func TestGetMyVisits_OnlyOwn(t *testing.T) {
	svc, userID := setupVisitTest(t)
	_, err := svc.BookVisit(context.Background(), userID, validBooking())
	require.NoError(t, err)
	_, err = svc.BookVisit(context.Background(), uuid.New(), validBooking())
	require.NoError(t, err)

	visits, err := svc.GetMyVisits(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, visits, 1)
}
