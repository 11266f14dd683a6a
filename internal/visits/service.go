package visits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"badabuilder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Charge model: flat rate for the first hour, per-minute beyond that.
const (
	baseChargeINR    = 300
	perMinuteINR     = 5
	visitOpenHour    = 10
	visitCloseHour   = 17
	defaultVisitMins = 60
)

type Service struct {
	DB *gorm.DB
}

type BookVisitInput struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	People          int    `json:"people"`
	Person1         string `json:"person1"`
	Person2         string `json:"person2"`
	Person3         string `json:"person3"`
	PickupAddress   string `json:"address"`
	PaymentMethod   string `json:"payment_method"`
}

// EstimateCharge returns the visit price in INR for the given duration.
func EstimateCharge(durationMinutes int) float64 {
	if durationMinutes <= 0 {
		durationMinutes = defaultVisitMins
	}
	if durationMinutes <= 60 {
		return baseChargeINR
	}
	return baseChargeINR + float64(durationMinutes-60)*perMinuteINR
}

func validateSlot(date, timeStr string) error {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return errors.New("Invalid visit date")
	}
	if d.Before(time.Now().Truncate(24 * time.Hour)) {
		return errors.New("Visit date must be in the future")
	}
	tm, err := time.Parse("15:04", timeStr)
	if err != nil {
		return errors.New("Invalid visit time")
	}
	if tm.Hour() < visitOpenHour || tm.Hour() >= visitCloseHour {
		return errors.New("Visits run between 10:00 and 17:00")
	}
	return nil
}

func validateBooking(in BookVisitInput) error {
	if in.Date == "" || in.Time == "" || in.PickupAddress == "" {
		return errors.New("Date, time and pickup address are required")
	}
	if err := validateSlot(in.Date, in.Time); err != nil {
		return err
	}
	if in.People < 1 || in.People > 3 {
		return errors.New("People must be between 1 and 3")
	}
	if in.Person1 == "" {
		return errors.New("Visitor name is required")
	}
	if in.People >= 2 && in.Person2 == "" {
		return errors.New("Name required for every visitor")
	}
	if in.People == 3 && in.Person3 == "" {
		return errors.New("Name required for every visitor")
	}
	if in.PaymentMethod != "previsit" && in.PaymentMethod != "postvisit" {
		return errors.New("Payment method must be previsit or postvisit")
	}
	return nil
}

// BookVisit validates the slot and stores the booking with the computed
// charge.
func (s *Service) BookVisit(ctx context.Context, userID uuid.UUID, in BookVisitInput) (*models.SiteVisit, error) {
	if userID == uuid.Nil {
		return nil, errors.New("Not authenticated")
	}
	if err := validateBooking(in); err != nil {
		return nil, err
	}
	visit := &models.SiteVisit{
		VisitID:       uuid.New(),
		UserID:        userID,
		VisitDate:     in.Date,
		VisitTime:     in.Time,
		People:        in.People,
		Person1:       in.Person1,
		Person2:       in.Person2,
		Person3:       in.Person3,
		PickupAddress: in.PickupAddress,
		PaymentMethod: in.PaymentMethod,
		ChargeAmount:  EstimateCharge(in.DurationMinutes),
		Status:        models.VisitStatusScheduled,
	}
	if err := s.DB.WithContext(ctx).Create(visit).Error; err != nil {
		return nil, fmt.Errorf("Failed to book visit: %v", err)
	}
	return visit, nil
}

func (s *Service) getOwnVisit(ctx context.Context, userID, visitID uuid.UUID) (*models.SiteVisit, error) {
	var visit models.SiteVisit
	if err := s.DB.WithContext(ctx).Where("visit_id = ?", visitID).First(&visit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Visit not found")
		}
		return nil, err
	}
	if visit.UserID != userID {
		return nil, errors.New("Visit not found")
	}
	return &visit, nil
}

// RescheduleVisit moves a scheduled visit to a new valid slot.
func (s *Service) RescheduleVisit(ctx context.Context, userID, visitID uuid.UUID, date, timeStr string) (*models.SiteVisit, error) {
	visit, err := s.getOwnVisit(ctx, userID, visitID)
	if err != nil {
		return nil, err
	}
	if visit.Status == models.VisitStatusCancelled {
		return nil, errors.New("Visit is cancelled")
	}
	if err := validateSlot(date, timeStr); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"visit_date": date,
		"visit_time": timeStr,
		"status":     models.VisitStatusRescheduled,
	}
	if err := s.DB.WithContext(ctx).Model(visit).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("Failed to reschedule visit: %v", err)
	}
	visit.VisitDate = date
	visit.VisitTime = timeStr
	visit.Status = models.VisitStatusRescheduled
	return visit, nil
}

// CancelVisit marks the visit cancelled.
func (s *Service) CancelVisit(ctx context.Context, userID, visitID uuid.UUID) (*models.SiteVisit, error) {
	visit, err := s.getOwnVisit(ctx, userID, visitID)
	if err != nil {
		return nil, err
	}
	if visit.Status == models.VisitStatusCancelled {
		return visit, nil
	}
	if err := s.DB.WithContext(ctx).Model(visit).Update("status", models.VisitStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("Failed to cancel visit: %v", err)
	}
	visit.Status = models.VisitStatusCancelled
	return visit, nil
}

// GetMyVisits returns the user's visits newest first.
func (s *Service) GetMyVisits(ctx context.Context, userID uuid.UUID) ([]models.SiteVisit, error) {
	var visits []models.SiteVisit
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch visits: %v", err)
	}
	return visits, nil
}
