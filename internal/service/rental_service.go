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
)

const natsSubjectRentalCancelled = "rental.cancelled"

// RentalService owns the bookings collection and the rental lifecycle:
// renew/reduce of the end date and the two-write cancel saga.
type RentalService struct {
	mu         sync.Mutex
	rentals    []entity.Rental
	snapshots  repository.SnapshotStore
	catalog    *CatalogService
	publisher  nats.MessagePublisher
	log        logger.Logger
	saveFailed bool
}

func NewRentalService(ctx context.Context, snapshots repository.SnapshotStore, catalog *CatalogService, publisher nats.MessagePublisher, log logger.Logger) *RentalService {
	s := &RentalService{
		snapshots: snapshots,
		catalog:   catalog,
		publisher: publisher,
		log:       log,
	}
	s.rentals = s.load(ctx)
	return s
}

func (s *RentalService) load(ctx context.Context) []entity.Rental {
	data, err := s.snapshots.Load(ctx, repository.KeyRentals)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Errorf("RentalService: failed to load snapshot, starting empty: %v", err)
		}
		return []entity.Rental{}
	}
	var rentals []entity.Rental
	if err := json.Unmarshal(data, &rentals); err != nil {
		s.log.Errorf("RentalService: corrupt snapshot, starting empty: %v", err)
		return []entity.Rental{}
	}
	return rentals
}

func (s *RentalService) persist(ctx context.Context) {
	data, err := json.Marshal(s.rentals)
	if err != nil {
		s.log.Errorf("RentalService: failed to marshal rentals: %v", err)
		s.saveFailed = true
		return
	}
	if err := s.snapshots.Save(ctx, repository.KeyRentals, data); err != nil {
		s.log.Errorf("RentalService: failed to save snapshot: %v", err)
		s.saveFailed = true
		return
	}
	s.saveFailed = false
}

func (s *RentalService) SaveFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveFailed
}

func (s *RentalService) Add(ctx context.Context, rental entity.Rental) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rentals = append(s.rentals, rental)
	s.persist(ctx)
}

func (s *RentalService) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rentals {
		if s.rentals[i].ID == id {
			s.rentals = append(s.rentals[:i], s.rentals[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// ReplaceAll commits a bulk adjustment in one write.
func (s *RentalService) ReplaceAll(ctx context.Context, rentals []entity.Rental) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rentals = rentals
	s.persist(ctx)
}

func (s *RentalService) Clear(ctx context.Context) {
	s.ReplaceAll(ctx, []entity.Rental{})
}

func (s *RentalService) GetByID(id string) (*entity.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rentals {
		if s.rentals[i].ID == id {
			r := s.rentals[i]
			return &r, nil
		}
	}
	return nil, entity.ErrRentalNotFound
}

func (s *RentalService) List() []entity.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Rental, len(s.rentals))
	copy(out, s.rentals)
	return out
}

// AdjustEndDate shifts a rental's end date by the given amount and unit.
// Shifts that would land before the start date are rejected and leave the
// record unchanged.
func (s *RentalService) AdjustEndDate(ctx context.Context, id string, amount int, unit entity.AdjustUnit, direction entity.AdjustDirection) (*entity.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rentals {
		if s.rentals[i].ID != id {
			continue
		}
		if s.rentals[i].EndDate.IsZero() {
			return nil, errors.New("rental has an invalid end date")
		}
		newEnd, err := entity.ShiftDate(s.rentals[i].EndDate, amount, unit, direction)
		if err != nil {
			s.log.Warnf("RentalService.AdjustEndDate: rejected adjustment for %s: %v", id, err)
			return nil, err
		}
		if newEnd.Before(s.rentals[i].StartDate) {
			return nil, entity.ErrEndBeforeStart
		}
		s.rentals[i].EndDate = newEnd
		updated := s.rentals[i]
		s.persist(ctx)
		s.log.Infof("RentalService.AdjustEndDate: rental %s end date %s by %d %s", id, direction, amount, unit)
		return &updated, nil
	}
	return nil, entity.ErrRentalNotFound
}

// CancelBooking is the compensating pair of writes: drop the rental and
// flip the source apartment back to available. It is idempotent so a
// crash between the two writes can be healed by running it again.
func (s *RentalService) CancelBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	found := false
	for i := range s.rentals {
		if s.rentals[i].ID == id {
			s.rentals = append(s.rentals[:i], s.rentals[i+1:]...)
			found = true
			break
		}
	}
	if found {
		s.persist(ctx)
	}
	s.mu.Unlock()

	// Re-list even when the rental was already gone; re-running after a
	// partial failure must still restore availability.
	s.catalog.ToggleAvailability(ctx, id, true)

	if found {
		s.log.Infof("RentalService.CancelBooking: booking %s cancelled", id)
		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, natsSubjectRentalCancelled, map[string]string{"id": id}); err != nil {
				s.log.Warnf("RentalService.CancelBooking: failed to publish event: %v", err)
			}
		}
	}
	return nil
}
