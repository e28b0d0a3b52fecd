package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Chedi19/res-appartement/internal/domain"
)

// ReservationLister is the slice of the reservation store the exporter
// needs: just the current ordered collection.
type ReservationLister interface {
	List() []domain.Reservation
}

// Export produces an on-demand flat document of the current reservation
// set. The captured region is the whole collection; export failure never
// affects the stored state.
type Export struct {
	reservations ReservationLister
	dir          string
	now          func() time.Time
}

// NewExport constructs an exporter writing CSV files into dir.
func NewExport(reservations ReservationLister, dir string) *Export {
	return &Export{reservations: reservations, dir: dir, now: time.Now}
}

// Rows flattens the current reservation list into export rows, one per
// reservation, in store order.
func (s *Export) Rows() []domain.ExportRow {
	list := s.reservations.List()
	rows := make([]domain.ExportRow, len(list))
	for i, r := range list {
		rows[i] = domain.NewExportRow(r)
	}
	return rows
}

// WriteCSV writes the export with a header row to w.
func (s *Export) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"apartment", "client", "start_date", "end_date", "nights", "notes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("service.Export.WriteCSV: header: %w", err)
	}

	for _, row := range s.Rows() {
		record := []string{
			row.Apartment,
			row.ClientName,
			row.StartDate,
			row.EndDate,
			strconv.Itoa(row.Nights),
			row.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("service.Export.WriteCSV: row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("service.Export.WriteCSV: flush: %w", err)
	}
	return nil
}

// WriteFile writes a timestamped CSV into the export directory and
// returns the full path of the created file.
func (s *Export) WriteFile() (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("service.Export.WriteFile: create export dir: %w", err)
	}

	name := "reservations-" + s.now().Format("20060102-150405") + ".csv"
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("service.Export.WriteFile: %w", err)
	}
	defer f.Close()

	if err := s.WriteCSV(f); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("service.Export.WriteFile: close: %w", err)
	}
	return path, nil
}
