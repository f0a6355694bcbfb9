package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/messaging/nats"
	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/storage/memory"
	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
)

func newTestRentals(t *testing.T) (*RentalService, *CatalogService) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewSnapshotStore()
	catalog := NewCatalogService(ctx, store, nats.NoOpPublisher{}, logger.NoOp())
	rentals := NewRentalService(ctx, store, catalog, nats.NoOpPublisher{}, logger.NoOp())
	return rentals, catalog
}

func testRental(id string, start, end time.Time) entity.Rental {
	return entity.Rental{
		ID: id, Title: "Apt " + id, Price: "₦500,000",
		Status: entity.RentalStatusActive, StartDate: start, EndDate: end,
	}
}

func TestRentalService_AdjustEndDate_Renew(t *testing.T) {
	rentals, _ := newTestRentals(t)
	ctx := context.Background()

	start := time.Date(2024, time.January, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	rentals.Add(ctx, testRental("5", start, end))

	updated, err := rentals.AdjustEndDate(ctx, "5", 1, entity.UnitMonths, entity.DirectionAdd)
	assert.NoError(t, err)
	// Leap year: Jan 31 + 1 month clamps to Feb 29.
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), updated.EndDate)

	stored, err := rentals.GetByID("5")
	assert.NoError(t, err)
	assert.Equal(t, updated.EndDate, stored.EndDate)
}

func TestRentalService_AdjustEndDate_RejectsEndBeforeStart(t *testing.T) {
	rentals, _ := newTestRentals(t)
	ctx := context.Background()

	start := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)
	rentals.Add(ctx, testRental("2", start, end))

	_, err := rentals.AdjustEndDate(ctx, "2", 1, entity.UnitWeeks, entity.DirectionSubtract)
	assert.ErrorIs(t, err, entity.ErrEndBeforeStart)

	// Rejected shifts leave the record unchanged.
	stored, _ := rentals.GetByID("2")
	assert.Equal(t, end, stored.EndDate)
}

func TestRentalService_AdjustEndDate_RejectsInvalidAmount(t *testing.T) {
	rentals, _ := newTestRentals(t)
	ctx := context.Background()
	now := time.Now()
	rentals.Add(ctx, testRental("2", now, now.Add(72*time.Hour)))

	_, err := rentals.AdjustEndDate(ctx, "2", 0, entity.UnitDays, entity.DirectionAdd)
	assert.ErrorIs(t, err, entity.ErrInvalidAdjustment)

	_, err = rentals.AdjustEndDate(ctx, "missing", 1, entity.UnitDays, entity.DirectionAdd)
	assert.ErrorIs(t, err, entity.ErrRentalNotFound)
}

func TestRentalService_CancelBookingRestoresAvailability(t *testing.T) {
	rentals, catalog := newTestRentals(t)
	ctx := context.Background()

	catalog.ToggleAvailability(ctx, "5", false)
	now := time.Now()
	rentals.Add(ctx, testRental("5", now, now.Add(72*time.Hour)))

	err := rentals.CancelBooking(ctx, "5")
	assert.NoError(t, err)

	_, err = rentals.GetByID("5")
	assert.ErrorIs(t, err, entity.ErrRentalNotFound)
	apt, err := catalog.GetByID("5")
	assert.NoError(t, err)
	assert.True(t, apt.Available)
}

func TestRentalService_CancelBookingIsIdempotent(t *testing.T) {
	rentals, catalog := newTestRentals(t)
	ctx := context.Background()

	// Simulates healing after a crash between the two writes: the rental
	// is already gone but the apartment is still marked rented.
	catalog.ToggleAvailability(ctx, "5", false)

	err := rentals.CancelBooking(ctx, "5")
	assert.NoError(t, err)
	apt, _ := catalog.GetByID("5")
	assert.True(t, apt.Available)
}

func TestRentalService_ReplaceAllAndClear(t *testing.T) {
	rentals, _ := newTestRentals(t)
	ctx := context.Background()
	now := time.Now()

	rentals.ReplaceAll(ctx, []entity.Rental{
		testRental("1", now, now.Add(72*time.Hour)),
		testRental("2", now, now.Add(72*time.Hour)),
	})
	assert.Len(t, rentals.List(), 2)

	rentals.Clear(ctx)
	assert.Empty(t, rentals.List())
}

func TestRentalService_ReloadsFromSnapshot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore()
	catalog := NewCatalogService(ctx, store, nats.NoOpPublisher{}, logger.NoOp())

	first := NewRentalService(ctx, store, catalog, nats.NoOpPublisher{}, logger.NoOp())
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	first.Add(ctx, testRental("3", now, now.Add(72*time.Hour)))

	second := NewRentalService(ctx, store, catalog, nats.NoOpPublisher{}, logger.NoOp())
	stored, err := second.GetByID("3")
	assert.NoError(t, err)
	assert.True(t, stored.EndDate.Equal(now.Add(72*time.Hour)))
}
