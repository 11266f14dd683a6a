package units

import (
	"context"
	"errors"
	"fmt"

	"badabuilder-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

func (s *Service) getUnit(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*models.Unit, error) {
	if unitID == uuid.Nil {
		return nil, errors.New("unit_id is required")
	}
	var unit models.Unit
	if err := tx.WithContext(ctx).Where("unit_id = ?", unitID).First(&unit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Unit not found")
		}
		return nil, err
	}
	return &unit, nil
}

// LockUnit moves an available unit to locked. Locking anything else fails;
// the row is the source of truth, callers never pre-check.
func (s *Service) LockUnit(ctx context.Context, unitID uuid.UUID, lockedBy string) (*models.Unit, error) {
	var unit *models.Unit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.getUnit(ctx, tx, unitID)
		if err != nil {
			return err
		}
		if u.Status != models.UnitStatusAvailable {
			return errors.New("Unit is not available")
		}
		updates := map[string]interface{}{
			"status":    models.UnitStatusLocked,
			"booked_by": lockedBy,
		}
		if err := tx.Model(u).Updates(updates).Error; err != nil {
			return fmt.Errorf("Failed to lock unit: %v", err)
		}
		u.Status = models.UnitStatusLocked
		u.BookedBy = &lockedBy
		unit = u
		return nil
	})
	return unit, err
}

// BookUnit confirms a booking on a locked or available unit and records the
// payment reference.
func (s *Service) BookUnit(ctx context.Context, unitID uuid.UUID, bookedBy, paymentID string, amount float64) (*models.Unit, error) {
	var unit *models.Unit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.getUnit(ctx, tx, unitID)
		if err != nil {
			return err
		}
		if u.Status == models.UnitStatusBooked {
			return errors.New("Unit is already booked")
		}
		updates := map[string]interface{}{
			"status":     models.UnitStatusBooked,
			"booked_by":  bookedBy,
			"payment_id": paymentID,
		}
		if amount > 0 {
			updates["booking_amount"] = amount
		}
		if err := tx.Model(u).Updates(updates).Error; err != nil {
			return fmt.Errorf("Failed to book unit: %v", err)
		}
		u.Status = models.UnitStatusBooked
		u.BookedBy = &bookedBy
		u.PaymentID = &paymentID
		if amount > 0 {
			u.Amount = &amount
		}
		unit = u
		return nil
	})
	return unit, err
}

// ReleaseUnit returns a unit to available and clears the booking fields.
func (s *Service) ReleaseUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, error) {
	var unit *models.Unit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.getUnit(ctx, tx, unitID)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{
			"status":         models.UnitStatusAvailable,
			"booked_by":      nil,
			"payment_id":     nil,
			"booking_amount": nil,
		}
		if err := tx.Model(u).Updates(updates).Error; err != nil {
			return fmt.Errorf("Failed to release unit: %v", err)
		}
		u.Status = models.UnitStatusAvailable
		u.BookedBy = nil
		u.PaymentID = nil
		u.Amount = nil
		unit = u
		return nil
	})
	return unit, err
}

// UpdateUnitInput carries the editable persisted-unit fields; nil leaves the
// column untouched. Price is recomputed from the effective rate and area
// whenever either changes.
type UpdateUnitInput struct {
	UnitNumber           *string
	UnitType             *string
	Area                 *float64
	CarpetArea           *float64
	SuperBuiltUpArea     *float64
	PricePerSqft         *float64
	DiscountPricePerSqft *float64
	ClearDiscount        bool
	ImageURL             *string
}

// UpdateUnit edits a persisted unit after project creation.
func (s *Service) UpdateUnit(ctx context.Context, unitID uuid.UUID, in UpdateUnitInput) (*models.Unit, error) {
	var unit *models.Unit
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := s.getUnit(ctx, tx, unitID)
		if err != nil {
			return err
		}
		if in.UnitNumber != nil {
			u.UnitNumber = *in.UnitNumber
		}
		if in.UnitType != nil {
			u.UnitType = *in.UnitType
		}
		if in.Area != nil {
			u.Area = *in.Area
		}
		if in.CarpetArea != nil {
			u.CarpetArea = *in.CarpetArea
		}
		if in.SuperBuiltUpArea != nil {
			u.SuperBuiltUpArea = *in.SuperBuiltUpArea
		}
		if in.PricePerSqft != nil {
			u.PricePerSqft = *in.PricePerSqft
		}
		if in.ClearDiscount {
			u.DiscountPricePerSqft = nil
		} else if in.DiscountPricePerSqft != nil {
			v := *in.DiscountPricePerSqft
			u.DiscountPricePerSqft = &v
		}
		if in.ImageURL != nil {
			u.ImageURL = in.ImageURL
		}

		area := u.Area
		if area == 0 {
			area = u.SuperBuiltUpArea
		}
		rate := u.PricePerSqft
		if u.DiscountPricePerSqft != nil {
			rate = *u.DiscountPricePerSqft
		}
		u.Price = area * rate

		if err := tx.Save(u).Error; err != nil {
			return fmt.Errorf("Failed to update unit: %v", err)
		}
		unit = u
		return nil
	})
	return unit, err
}
