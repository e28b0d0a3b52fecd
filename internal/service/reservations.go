package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Chedi19/res-appartement/internal/domain"
	"github.com/Chedi19/res-appartement/internal/repo"
)

// ColorResolver supplies the display color for an apartment name.
// *Apartments satisfies it.
type ColorResolver interface {
	ResolveColor(name string) string
}

// Reservations owns the authoritative reservation collection. It is the
// sole writer of the persisted blob: every mutation computes the next
// collection, persists it, and only then swaps the in-memory snapshot,
// so a persistence failure can never leave unpersisted state behind.
type Reservations struct {
	mu       sync.RWMutex
	blobs    repo.BlobStore
	colors   ColorResolver
	items    []domain.Reservation
	degraded bool
	newID    func() string
}

// LoadReservations reads the persisted collection from the blob store.
// On first run (no blob) it seeds the default set and persists it
// immediately. When the blob cannot be read or parsed, the store falls
// back to the default set in memory only and marks the session degraded;
// the stored blob is left untouched until the next successful mutation
// overwrites it. The returned store is always usable; the error, when
// non-nil, only reports why the stored collection could not be used.
func LoadReservations(ctx context.Context, blobs repo.BlobStore, colors ColorResolver) (*Reservations, error) {
	s := &Reservations{
		blobs:  blobs,
		colors: colors,
		newID:  uuid.NewString,
	}

	raw, ok, err := blobs.Read(ctx, repo.KeyReservations)
	if err != nil {
		s.items = domain.DefaultReservations()
		s.degraded = true
		return s, fmt.Errorf("service.LoadReservations: read: %w", err)
	}

	if !ok {
		s.items = domain.DefaultReservations()
		if err := s.persist(ctx, s.items); err != nil {
			s.degraded = true
			return s, fmt.Errorf("service.LoadReservations: seed: %w", err)
		}
		return s, nil
	}

	var items []domain.Reservation
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.items = domain.DefaultReservations()
		s.degraded = true
		return s, fmt.Errorf("service.LoadReservations: corrupt reservation blob: %w", err)
	}

	s.items = items
	return s, nil
}

// Degraded reports whether the store is running on in-memory defaults
// because the persisted collection could not be used. The flag clears on
// the first mutation that persists successfully.
func (s *Reservations) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// List returns a copy of the collection ordered by start date, then
// apartment, then id.
func (s *Reservations) List() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Reservation, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].StartDate.Compare(out[j].StartDate); c != 0 {
			return c < 0
		}
		if out[i].Apartment != out[j].Apartment {
			return out[i].Apartment < out[j].Apartment
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns the reservation with the given id, if present. Pure
// lookup; never touches persistence.
func (s *Reservations) Get(id string) (domain.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.items {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Reservation{}, false
}

// Conflict scans the current snapshot for a reservation in the same
// apartment whose closed date range overlaps the candidate's, skipping
// excludeID (pass "" for creation checks). It has no side effects, so
// the interaction layer calls it speculatively for live drag feedback.
func (s *Reservations) Conflict(candidate domain.Draft, excludeID string) (domain.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return conflictIn(s.items, candidate, excludeID)
}

func conflictIn(items []domain.Reservation, candidate domain.Draft, excludeID string) (domain.Reservation, bool) {
	for _, existing := range items {
		if existing.ID == excludeID || existing.Apartment != candidate.Apartment {
			continue
		}
		if domain.RangesOverlap(candidate.StartDate, candidate.EndDate, existing.StartDate, existing.EndDate) {
			return existing, true
		}
	}
	return domain.Reservation{}, false
}

// Create validates nothing beyond overlap (range validity is enforced at
// the editor boundary), assigns a fresh id, resolves the apartment
// color, persists the grown collection, and returns the new value.
func (s *Reservations) Create(ctx context.Context, draft domain.Draft) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if with, ok := conflictIn(s.items, draft, ""); ok {
		return domain.Reservation{}, fmt.Errorf("service.Reservations.Create: %w", &domain.ConflictError{With: with})
	}

	r := domain.Reservation{
		ID:         s.newID(),
		Apartment:  draft.Apartment,
		ClientName: draft.ClientName,
		StartDate:  draft.StartDate,
		EndDate:    draft.EndDate,
		Notes:      draft.Notes,
		Color:      s.colors.ResolveColor(draft.Apartment),
	}

	next := make([]domain.Reservation, len(s.items), len(s.items)+1)
	copy(next, s.items)
	next = append(next, r)

	if err := s.persist(ctx, next); err != nil {
		return domain.Reservation{}, fmt.Errorf("service.Reservations.Create: %w", err)
	}
	s.items = next
	return r, nil
}

// Update overlays changes onto the existing reservation, re-checks
// conflicts against all other reservations, re-resolves the color when
// the apartment changed, persists, and returns the merged value.
func (s *Reservations) Update(ctx context.Context, id string, changes domain.Changes) (domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.items {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Reservation{}, fmt.Errorf("service.Reservations.Update: %w", domain.ErrNotFound)
	}

	merged := changes.Apply(s.items[idx])
	candidate := domain.Draft{
		Apartment: merged.Apartment,
		StartDate: merged.StartDate,
		EndDate:   merged.EndDate,
	}
	if with, ok := conflictIn(s.items, candidate, id); ok {
		return domain.Reservation{}, fmt.Errorf("service.Reservations.Update: %w", &domain.ConflictError{With: with})
	}

	if merged.Apartment != s.items[idx].Apartment {
		merged.Color = s.colors.ResolveColor(merged.Apartment)
	}

	next := make([]domain.Reservation, len(s.items))
	copy(next, s.items)
	next[idx] = merged

	if err := s.persist(ctx, next); err != nil {
		return domain.Reservation{}, fmt.Errorf("service.Reservations.Update: %w", err)
	}
	s.items = next
	return merged, nil
}

// Delete removes the reservation with the given id. Deleting an absent
// id is a no-op: nothing changes and no error is returned.
func (s *Reservations) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.items {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := make([]domain.Reservation, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return fmt.Errorf("service.Reservations.Delete: %w", err)
	}
	s.items = next
	return nil
}

// persist writes the whole collection as one blob. A successful write
// clears the degraded flag: the store is back in sync with disk.
// Callers hold the write lock.
func (s *Reservations) persist(ctx context.Context, items []domain.Reservation) error {
	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrPersistence, err)
	}
	if err := s.blobs.Write(ctx, repo.KeyReservations, string(encoded)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	s.degraded = false
	return nil
}

// ValidateDraft enforces the editor-boundary rules: a client name is
// required and the start date must be strictly before the end date.
// The store itself assumes its callers ran this.
func ValidateDraft(d domain.Draft) error {
	if strings.TrimSpace(d.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", domain.ErrValidation)
	}
	if d.Apartment == "" {
		return fmt.Errorf("%w: apartment is required", domain.ErrValidation)
	}
	if !d.StartDate.Before(d.EndDate) {
		return fmt.Errorf("%w: start date must be before end date", domain.ErrValidation)
	}
	return nil
}
