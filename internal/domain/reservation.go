// Package domain contains the core data types for the apartment
// reservation planner. This package has no dependencies on the rest of
// the module and is imported by every other internal package (repo,
// service, gesture, tui).
package domain

// Reservation is a client's stay in one apartment over an inclusive
// range of calendar days. The ID is opaque and immutable after creation.
// Color is a denormalized copy of the owning apartment's color as of the
// most recent write; it can go stale if the roster changes out of band,
// which is accepted so a reservation is always renderable.
type Reservation struct {
	ID         string `json:"id"`
	Apartment  string `json:"apartment"`
	ClientName string `json:"clientName"`
	StartDate  Day    `json:"startDate"`
	EndDate    Day    `json:"endDate"`
	Notes      string `json:"notes,omitempty"`
	Color      string `json:"color"`
}

// Nights returns the length of the stay in nights (inclusive day span
// minus one). A one-day reservation has zero nights.
func (r Reservation) Nights() int {
	return r.StartDate.DaysUntil(r.EndDate)
}

// Draft is a reservation payload without an assigned identity, used for
// conflict pre-checks and creation.
type Draft struct {
	Apartment  string
	ClientName string
	StartDate  Day
	EndDate    Day
	Notes      string
}

// Changes carries the fields an update may overlay onto an existing
// reservation. Nil pointers leave the existing value untouched.
type Changes struct {
	Apartment  *string
	ClientName *string
	StartDate  *Day
	EndDate    *Day
	Notes      *string
}

// Apply overlays the changes onto r and returns the merged value.
// The ID and Color of r are preserved; callers re-resolve Color when
// the apartment changed.
func (c Changes) Apply(r Reservation) Reservation {
	if c.Apartment != nil {
		r.Apartment = *c.Apartment
	}
	if c.ClientName != nil {
		r.ClientName = *c.ClientName
	}
	if c.StartDate != nil {
		r.StartDate = *c.StartDate
	}
	if c.EndDate != nil {
		r.EndDate = *c.EndDate
	}
	if c.Notes != nil {
		r.Notes = *c.Notes
	}
	return r
}

// DefaultReservations is the fixed sample set seeded on first run or
// when the persisted collection is unreadable. The ranges never overlap
// within an apartment.
func DefaultReservations() []Reservation {
	return []Reservation{
		{
			ID:         "seed-1",
			Apartment:  "Appartement 1",
			ClientName: "Famille Haddad",
			StartDate:  NewDay(2025, 7, 4),
			EndDate:    NewDay(2025, 7, 11),
			Color:      "#e07a5f",
		},
		{
			ID:         "seed-2",
			Apartment:  "Appartement 1",
			ClientName: "M. Lefèvre",
			StartDate:  NewDay(2025, 7, 14),
			EndDate:    NewDay(2025, 7, 20),
			Notes:      "arrivée tardive",
			Color:      "#e07a5f",
		},
		{
			ID:         "seed-3",
			Apartment:  "Appartement 2",
			ClientName: "Mme Trabelsi",
			StartDate:  NewDay(2025, 7, 8),
			EndDate:    NewDay(2025, 7, 15),
			Color:      "#3d85c6",
		},
	}
}
