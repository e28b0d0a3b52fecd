// Package repo contains all persistence access for the reservation
// planner. The application keeps its state as two named blobs in a local
// store; no business logic lives here, only storage and key mapping.
package repo

import "context"

// Blob keys for the two persisted collections.
const (
	KeyReservations = "reservations"
	KeyApartments   = "apartments"
)

// BlobStore is the persistence boundary: named string blobs with
// whole-value overwrite semantics. The service layer depends on this
// interface, not a concrete implementation, so the conflict and
// invariant logic is testable without a storage backend.
type BlobStore interface {
	// Read returns the blob stored under key. ok is false when the key
	// has never been written (not an error).
	Read(ctx context.Context, key string) (value string, ok bool, err error)

	// Write stores value under key, replacing any previous value.
	Write(ctx context.Context, key, value string) error

	// Clear removes the blob stored under key. Clearing an absent key
	// is a no-op.
	Clear(ctx context.Context, key string) error
}
