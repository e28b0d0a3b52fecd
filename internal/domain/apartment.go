package domain

// Apartment is one unit in the fixed rental roster. Name doubles as the
// foreign key reservations point at; Color is the hex color used to
// render that apartment's reservations.
type Apartment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// FallbackColor is used when a reservation names an apartment that is no
// longer in the roster. Unknown names are tolerated so a reservation is
// never unrenderable.
const FallbackColor = "#7f8c8d"

// DefaultApartments is the roster seeded on first run when no persisted
// roster exists. Order is significant: it is the UI enumeration order,
// and the first entry is the default apartment for new reservations.
func DefaultApartments() []Apartment {
	return []Apartment{
		{ID: "apt-1", Name: "Appartement 1", Color: "#e07a5f"},
		{ID: "apt-2", Name: "Appartement 2", Color: "#3d85c6"},
		{ID: "apt-3", Name: "Appartement 3", Color: "#6aa84f"},
		{ID: "apt-4", Name: "Studio", Color: "#b45fe0"},
	}
}
