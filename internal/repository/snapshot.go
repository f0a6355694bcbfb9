package repository

import "context"

// Snapshot keys, one per store. Each key holds the full serialized
// collection; every save overwrites the whole value.
const (
	KeyApartments      = "apartments"
	KeySavedApartments = "saved_apartments"
	KeyRentals         = "user_rentals"
)

// SnapshotStore is the persistence boundary the stores write through.
// Implementations may be file-backed, in-memory, or networked; the store
// logic never knows which. Load returns ErrNotFound for an absent key.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
