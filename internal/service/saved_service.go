package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Abdulsamad25/apartment-rentals/internal/domain/entity"
	"github.com/Abdulsamad25/apartment-rentals/internal/platform/logger"
	"github.com/Abdulsamad25/apartment-rentals/internal/repository"
)

// SavedService owns the bookmarked-apartments set, keyed by apartment id.
type SavedService struct {
	mu         sync.Mutex
	saved      []entity.SavedApartment
	snapshots  repository.SnapshotStore
	log        logger.Logger
	now        func() time.Time
	saveFailed bool
}

func NewSavedService(ctx context.Context, snapshots repository.SnapshotStore, log logger.Logger) *SavedService {
	s := &SavedService{
		snapshots: snapshots,
		log:       log,
		now:       time.Now,
	}
	s.saved = s.load(ctx)
	return s
}

func (s *SavedService) load(ctx context.Context) []entity.SavedApartment {
	data, err := s.snapshots.Load(ctx, repository.KeySavedApartments)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Errorf("SavedService: failed to load snapshot, starting empty: %v", err)
		}
		return []entity.SavedApartment{}
	}
	var saved []entity.SavedApartment
	if err := json.Unmarshal(data, &saved); err != nil {
		s.log.Errorf("SavedService: corrupt snapshot, starting empty: %v", err)
		return []entity.SavedApartment{}
	}
	return saved
}

func (s *SavedService) persist(ctx context.Context) {
	data, err := json.Marshal(s.saved)
	if err != nil {
		s.log.Errorf("SavedService: failed to marshal saved set: %v", err)
		s.saveFailed = true
		return
	}
	if err := s.snapshots.Save(ctx, repository.KeySavedApartments, data); err != nil {
		s.log.Errorf("SavedService: failed to save snapshot: %v", err)
		s.saveFailed = true
		return
	}
	s.saveFailed = false
}

func (s *SavedService) SaveFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveFailed
}

// Save bookmarks an apartment with today's date. Saving an id that is
// already in the set is a no-op.
func (s *SavedService) Save(ctx context.Context, apt entity.Apartment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sa := range s.saved {
		if sa.ID == apt.ID {
			return
		}
	}
	s.saved = append(s.saved, entity.SavedApartment{
		Apartment: apt,
		SavedDate: s.now().Format("2006-01-02"),
	})
	s.persist(ctx)
}

func (s *SavedService) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.saved {
		if s.saved[i].ID == id {
			s.saved = append(s.saved[:i], s.saved[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

func (s *SavedService) IsSaved(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sa := range s.saved {
		if sa.ID == id {
			return true
		}
	}
	return false
}

// Toggle removes the apartment if it is saved, saves it otherwise.
func (s *SavedService) Toggle(ctx context.Context, apt entity.Apartment) {
	if s.IsSaved(apt.ID) {
		s.Remove(ctx, apt.ID)
		return
	}
	s.Save(ctx, apt)
}

// Clear empties the set and removes the persisted key entirely, unlike
// the other stores which persist an empty collection.
func (s *SavedService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = []entity.SavedApartment{}
	if err := s.snapshots.Delete(ctx, repository.KeySavedApartments); err != nil {
		s.log.Errorf("SavedService: failed to delete snapshot key: %v", err)
		s.saveFailed = true
		return
	}
	s.saveFailed = false
}

func (s *SavedService) List() []entity.SavedApartment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.SavedApartment, len(s.saved))
	copy(out, s.saved)
	return out
}
