package domain

// ExportRow is a single row in the on-demand reservation export.
// It is a flat view of one reservation with dates pre-formatted as
// "2006-01-02" strings, so writers (CSV) need no date logic of their own.
type ExportRow struct {
	Apartment  string
	ClientName string
	StartDate  string
	EndDate    string
	Nights     int
	Notes      string
}

// NewExportRow flattens a reservation into an export row.
func NewExportRow(r Reservation) ExportRow {
	return ExportRow{
		Apartment:  r.Apartment,
		ClientName: r.ClientName,
		StartDate:  r.StartDate.String(),
		EndDate:    r.EndDate.String(),
		Nights:     r.Nights(),
		Notes:      r.Notes,
	}
}
