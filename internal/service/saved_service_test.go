package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/storage/memory"
	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/Abdulsamad25/apartment-rentals/internal/repository"
)

func newTestSaved(t *testing.T) (*SavedService, *memory.SnapshotStore) {
	t.Helper()
	store := memory.NewSnapshotStore()
	svc := NewSavedService(context.Background(), store, logger.NoOp())
	svc.now = func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func seedApt(id string) entity.Apartment {
	return entity.Apartment{ID: id, Name: "Apt " + id, Price: 500000}
}

func TestSavedService_SaveIsIdempotent(t *testing.T) {
	svc, _ := newTestSaved(t)
	ctx := context.Background()

	svc.Save(ctx, seedApt("1"))
	svc.Save(ctx, seedApt("1"))

	list := svc.List()
	assert.Len(t, list, 1)
	assert.Equal(t, "2025-06-15", list[0].SavedDate)
	assert.True(t, svc.IsSaved("1"))
}

func TestSavedService_Toggle(t *testing.T) {
	svc, _ := newTestSaved(t)
	ctx := context.Background()

	svc.Toggle(ctx, seedApt("2"))
	assert.True(t, svc.IsSaved("2"))

	svc.Toggle(ctx, seedApt("2"))
	assert.False(t, svc.IsSaved("2"))
	assert.Empty(t, svc.List())
}

func TestSavedService_RemoveMissingIsNoOp(t *testing.T) {
	svc, _ := newTestSaved(t)
	ctx := context.Background()

	svc.Save(ctx, seedApt("1"))
	svc.Remove(ctx, "nope")
	assert.Len(t, svc.List(), 1)
}

func TestSavedService_ClearDeletesPersistedKey(t *testing.T) {
	svc, store := newTestSaved(t)
	ctx := context.Background()

	svc.Save(ctx, seedApt("1"))
	assert.True(t, store.Has(repository.KeySavedApartments))

	svc.Clear(ctx)
	assert.Empty(t, svc.List())
	// Clear removes the key outright rather than writing an empty list.
	assert.False(t, store.Has(repository.KeySavedApartments))
}

func TestSavedService_ReloadsFromSnapshot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore()

	first := NewSavedService(ctx, store, logger.NoOp())
	first.Save(ctx, seedApt("7"))

	second := NewSavedService(ctx, store, logger.NoOp())
	assert.True(t, second.IsSaved("7"))
	assert.Len(t, second.List(), 1)
}
