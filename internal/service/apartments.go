// Package service contains the business logic of the reservation
// planner: the apartment registry, the reservation store with conflict
// enforcement, and the on-demand export. Services depend on the repo
// BlobStore interface, not an implementation, so every rule here is
// testable without a storage backend.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Chedi19/res-appartement/internal/domain"
	"github.com/Chedi19/res-appartement/internal/repo"
)

// Apartments is the registry of rental units. The roster is loaded once
// and is read-only afterwards; reservations reference apartments by name
// and take their display color from here.
type Apartments struct {
	list []domain.Apartment
}

// LoadApartments reads the persisted roster from the blob store. On
// first run (no blob) it seeds the default roster and persists it; an
// unreadable or corrupt blob falls back to the defaults in memory
// without touching the stored value. The returned registry is always
// usable; the error, when non-nil, only reports why the stored roster
// could not be used.
func LoadApartments(ctx context.Context, blobs repo.BlobStore) (*Apartments, error) {
	raw, ok, err := blobs.Read(ctx, repo.KeyApartments)
	if err != nil {
		return &Apartments{list: domain.DefaultApartments()},
			fmt.Errorf("service.LoadApartments: read: %w", err)
	}

	if !ok {
		reg := &Apartments{list: domain.DefaultApartments()}
		encoded, err := json.Marshal(reg.list)
		if err != nil {
			return reg, fmt.Errorf("service.LoadApartments: encode defaults: %w", err)
		}
		if err := blobs.Write(ctx, repo.KeyApartments, string(encoded)); err != nil {
			return reg, fmt.Errorf("service.LoadApartments: seed: %w", err)
		}
		return reg, nil
	}

	var list []domain.Apartment
	if err := json.Unmarshal([]byte(raw), &list); err != nil || len(list) == 0 {
		return &Apartments{list: domain.DefaultApartments()},
			fmt.Errorf("service.LoadApartments: corrupt roster blob: %w", err)
	}

	return &Apartments{list: list}, nil
}

// List returns the roster in as-loaded (insertion) order.
func (a *Apartments) List() []domain.Apartment {
	out := make([]domain.Apartment, len(a.list))
	copy(out, a.list)
	return out
}

// First returns the default apartment for new reservations.
func (a *Apartments) First() domain.Apartment {
	if len(a.list) == 0 {
		return domain.Apartment{}
	}
	return a.list[0]
}

// ResolveColor returns the color of the named apartment, or the neutral
// fallback when the name is unknown. It never fails: a reservation whose
// apartment left the roster must still be renderable.
func (a *Apartments) ResolveColor(name string) string {
	for _, apt := range a.list {
		if apt.Name == name {
			return apt.Color
		}
	}
	return domain.FallbackColor
}
