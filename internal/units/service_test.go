package units

import (
	"context"
	"testing"

	"badabuilder-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUnitTest(t *testing.T) (*Service, *models.Unit) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tower{}, &models.Unit{}))

	unit := &models.Unit{
		UnitID:           uuid.New(),
		TowerID:          uuid.New(),
		UnitNumber:       "Flat A",
		UnitType:         "Apartment",
		FloorNumber:      1,
		Area:             1500,
		SuperBuiltUpArea: 1500,
		PricePerSqft:     5000,
		Price:            7500000,
		Status:           models.UnitStatusAvailable,
	}
	require.NoError(t, db.Create(unit).Error)
	return &Service{DB: db}, unit
}

func TestLockUnit(t *testing.T) {
	svc, unit := setupUnitTest(t)

	locked, err := svc.LockUnit(context.Background(), unit.UnitID, "buyer-42")
	require.NoError(t, err)
	assert.Equal(t, models.UnitStatusLocked, locked.Status)
	require.NotNil(t, locked.BookedBy)
	assert.Equal(t, "buyer-42", *locked.BookedBy)

	_, err = svc.LockUnit(context.Background(), unit.UnitID, "buyer-43")
	require.Error(t, err)
	assert.Equal(t, "Unit is not available", err.Error())
}

func TestBookUnit(t *testing.T) {
	svc, unit := setupUnitTest(t)

	booked, err := svc.BookUnit(context.Background(), unit.UnitID, "buyer-42", "pi_123", 50000)
	require.NoError(t, err)
	assert.Equal(t, models.UnitStatusBooked, booked.Status)
	require.NotNil(t, booked.PaymentID)
	assert.Equal(t, "pi_123", *booked.PaymentID)

	_, err = svc.BookUnit(context.Background(), unit.UnitID, "buyer-43", "pi_456", 0)
	require.Error(t, err)
	assert.Equal(t, "Unit is already booked", err.Error())
}

func TestBookLockedUnit(t *testing.T) {
	svc, unit := setupUnitTest(t)

	_, err := svc.LockUnit(context.Background(), unit.UnitID, "buyer-42")
	require.NoError(t, err)

	booked, err := svc.BookUnit(context.Background(), unit.UnitID, "buyer-42", "pi_123", 0)
	require.NoError(t, err)
	assert.Equal(t, models.UnitStatusBooked, booked.Status)
}

func TestReleaseUnit(t *testing.T) {
	svc, unit := setupUnitTest(t)

	_, err := svc.BookUnit(context.Background(), unit.UnitID, "buyer-42", "pi_123", 50000)
	require.NoError(t, err)

	released, err := svc.ReleaseUnit(context.Background(), unit.UnitID)
	require.NoError(t, err)
	assert.Equal(t, models.UnitStatusAvailable, released.Status)
	assert.Nil(t, released.BookedBy)
	assert.Nil(t, released.PaymentID)

	var stored models.Unit
	require.NoError(t, svc.DB.Where("unit_id = ?", unit.UnitID).First(&stored).Error)
	assert.Nil(t, stored.BookedBy)
	assert.Nil(t, stored.PaymentID)
}

func TestUpdateUnit_RecomputesPrice(t *testing.T) {
	svc, unit := setupUnitTest(t)

	area := 1800.0
	discount := 4500.0
	updated, err := svc.UpdateUnit(context.Background(), unit.UnitID, UpdateUnitInput{
		Area:                 &area,
		DiscountPricePerSqft: &discount,
	})
	require.NoError(t, err)
	assert.Equal(t, 1800.0*4500, updated.Price)

	updated, err = svc.UpdateUnit(context.Background(), unit.UnitID, UpdateUnitInput{ClearDiscount: true})
	require.NoError(t, err)
	assert.Equal(t, 1800.0*5000, updated.Price)
	assert.Nil(t, updated.DiscountPricePerSqft)
}

func TestUnitNotFound(t *testing.T) {
	svc, _ := setupUnitTest(t)
	_, err := svc.LockUnit(context.Background(), uuid.New(), "x")
	require.Error(t, err)
	assert.Equal(t, "Unit not found", err.Error())
}
