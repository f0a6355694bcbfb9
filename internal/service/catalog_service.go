package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/Abdulsamad25/apartment-rentals/internal/adapter/messaging/nats"
	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/Abdulsamad25/apartment-rentals/internal/repository"
	"github.com/google/uuid"
)

const (
	natsSubjectApartmentCreated = "apartment.created"
	natsSubjectApartmentUpdated = "apartment.updated"
	natsSubjectApartmentDeleted = "apartment.deleted"
)

// CatalogService owns the apartment collection. All mutations either
// fully apply or fully reject, then persist the whole collection as one
// snapshot. Persistence failures keep the in-memory state and raise the
// save-failed flag instead of failing the caller.
type CatalogService struct {
	mu         sync.Mutex
	apartments []entity.Apartment
	snapshots  repository.SnapshotStore
	publisher  nats.MessagePublisher
	log        logger.Logger
	saveFailed bool
}

func NewCatalogService(ctx context.Context, snapshots repository.SnapshotStore, publisher nats.MessagePublisher, log logger.Logger) *CatalogService {
	s := &CatalogService{
		snapshots: snapshots,
		publisher: publisher,
		log:       log,
	}
	s.apartments = s.loadOrSeed(ctx)
	return s
}

func (s *CatalogService) loadOrSeed(ctx context.Context) []entity.Apartment {
	data, err := s.snapshots.Load(ctx, repository.KeyApartments)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Errorf("CatalogService: failed to load apartments snapshot, seeding defaults: %v", err)
		}
		return entity.SeedApartments()
	}
	var apartments []entity.Apartment
	if err := json.Unmarshal(data, &apartments); err != nil {
		s.log.Errorf("CatalogService: corrupt apartments snapshot, seeding defaults: %v", err)
		return entity.SeedApartments()
	}
	return apartments
}

func (s *CatalogService) persist(ctx context.Context) {
	data, err := json.Marshal(s.apartments)
	if err != nil {
		s.log.Errorf("CatalogService: failed to marshal apartments: %v", err)
		s.saveFailed = true
		return
	}
	if err := s.snapshots.Save(ctx, repository.KeyApartments, data); err != nil {
		s.log.Errorf("CatalogService: failed to save apartments snapshot: %v", err)
		s.saveFailed = true
		return
	}
	s.saveFailed = false
}

// SaveFailed reports whether the most recent persist attempt failed.
// In-memory state is still authoritative when it does.
func (s *CatalogService) SaveFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveFailed
}

func (s *CatalogService) publish(ctx context.Context, subject string, apt entity.Apartment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, apt); err != nil {
		s.log.Warnf("CatalogService: failed to publish %s event: %v", subject, err)
	}
}

// Add validates the input, assigns a fresh id and defaults, appends and
// persists. The input is rejected whole on any validation failure.
func (s *CatalogService) Add(ctx context.Context, input entity.Apartment) (*entity.Apartment, error) {
	if err := entity.ValidateApartmentInput(input); err != nil {
		s.log.Warnf("CatalogService.Add: validation failed: %v", err)
		return nil, err
	}

	apt := input
	apt.ID = uuid.NewString()
	apt.ApplyCreateDefaults()
	// New records start available; ToggleAvailability flips them later.
	apt.Available = true

	s.mu.Lock()
	s.apartments = append(s.apartments, apt)
	s.persist(ctx)
	s.mu.Unlock()

	s.log.Infof("CatalogService.Add: apartment %s created", apt.ID)
	s.publish(ctx, natsSubjectApartmentCreated, apt)
	return &apt, nil
}

// Update merges the validated input onto the record with the given id.
// Missing id is a silent no-op.
func (s *CatalogService) Update(ctx context.Context, id string, input entity.Apartment) error {
	if err := entity.ValidateApartmentInput(input); err != nil {
		s.log.Warnf("CatalogService.Update: validation failed for %s: %v", id, err)
		return err
	}

	s.mu.Lock()
	var updated *entity.Apartment
	for i := range s.apartments {
		if s.apartments[i].ID == id {
			s.apartments[i].Merge(input)
			updated = &s.apartments[i]
			break
		}
	}
	if updated == nil {
		s.mu.Unlock()
		s.log.Debugf("CatalogService.Update: apartment %s not found, no-op", id)
		return nil
	}
	apt := *updated
	s.persist(ctx)
	s.mu.Unlock()

	s.publish(ctx, natsSubjectApartmentUpdated, apt)
	return nil
}

// Delete removes the record with the given id. Missing id is a no-op.
func (s *CatalogService) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	var removed *entity.Apartment
	for i := range s.apartments {
		if s.apartments[i].ID == id {
			apt := s.apartments[i]
			removed = &apt
			s.apartments = append(s.apartments[:i], s.apartments[i+1:]...)
			break
		}
	}
	if removed == nil {
		s.mu.Unlock()
		return
	}
	s.persist(ctx)
	s.mu.Unlock()

	s.log.Infof("CatalogService.Delete: apartment %s removed", id)
	s.publish(ctx, natsSubjectApartmentDeleted, *removed)
}

// UpdatePrice replaces only the price field.
func (s *CatalogService) UpdatePrice(ctx context.Context, id string, price float64) error {
	if price <= 0 {
		return &entity.ValidationError{Messages: []string{"Valid price is required"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apartments {
		if s.apartments[i].ID == id {
			s.apartments[i].Price = price
			s.persist(ctx)
			return nil
		}
	}
	return nil
}

// ToggleAvailability sets the availability flag unconditionally for the
// matching record.
func (s *CatalogService) ToggleAvailability(ctx context.Context, id string, available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apartments {
		if s.apartments[i].ID == id {
			s.apartments[i].Available = available
			s.persist(ctx)
			return
		}
	}
}

func (s *CatalogService) GetByID(id string) (*entity.Apartment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apartments {
		if s.apartments[i].ID == id {
			apt := s.apartments[i]
			return &apt, nil
		}
	}
	return nil, entity.ErrApartmentNotFound
}

// Apartments returns a copy of the full catalog in insertion order.
func (s *CatalogService) Apartments() []entity.Apartment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Apartment, len(s.apartments))
	copy(out, s.apartments)
	return out
}

// SetImageURL replaces the image of the matching record. Used by the
// photo upload flow after storage succeeds.
func (s *CatalogService) SetImageURL(ctx context.Context, id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apartments {
		if s.apartments[i].ID == id {
			s.apartments[i].ImageURL = url
			s.persist(ctx)
			return nil
		}
	}
	return entity.ErrApartmentNotFound
}
