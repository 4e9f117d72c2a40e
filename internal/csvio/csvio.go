// Package csvio moves measurement histories in and out of the store as
// CSV tables with two columns: canonical date and body weight.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/masskeeper/masskeeper/internal/models"
	"github.com/masskeeper/masskeeper/internal/store"
	"github.com/masskeeper/masskeeper/internal/util"
)

// Exporter writes a user's full measurement history to a temporary CSV
// file. The caller removes the file after sending it.
type Exporter struct {
	store store.Store
	dir   string
}

// NewExporter creates an Exporter writing under dir.
func NewExporter(st store.Store, dir string) *Exporter {
	return &Exporter{store: st, dir: dir}
}

// Export writes all measurements for the user and returns the file path
// and the number of rows written. Zero rows still produces a (empty)
// file so the caller can branch on the count.
func (e *Exporter) Export(ctx context.Context, userID int64) (string, int, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", 0, fmt.Errorf("create export directory: %w", err)
	}

	measurements, err := e.store.QueryMeasurements(userID)
	if err != nil {
		return "", 0, fmt.Errorf("export query for %d: %w", userID, err)
	}

	path := util.TempArtifactPath(e.dir, fmt.Sprintf("bodymass_%d", userID), ".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, m := range measurements {
		record := []string{models.FormatDate(m.Date), strconv.FormatFloat(m.Value, 'f', -1, 64)}
		if err := w.Write(record); err != nil {
			return "", 0, fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", 0, fmt.Errorf("flush export: %w", err)
	}

	slog.Debug("csvio export complete", "userID", userID, "rows", len(measurements), "path", path)
	return path, len(measurements), nil
}

// Importer loads measurement rows from an uploaded CSV document.
type Importer struct {
	store         store.Store
	client        *http.Client
	maxBodyWeight float64
}

// NewImporter creates an Importer validating weights against the
// configured ceiling. A nil client falls back to http.DefaultClient.
func NewImporter(st store.Store, client *http.Client, maxBodyWeight float64) *Importer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Importer{store: st, client: client, maxBodyWeight: maxBodyWeight}
}

// ImportFromURL fetches a CSV table and appends each row as a
// measurement. Any malformed row aborts the import with
// models.ErrCSVParse; rows appended before the failing one are kept
// (at-least-partial-effect, matching the original behavior). Transport
// failures surface as ordinary wrapped errors, distinct from the parse
// category.
func (i *Importer) ImportFromURL(ctx context.Context, userID int64, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build import request: %w", err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch import document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch import document: unexpected status %s", resp.Status)
	}

	return i.importRows(userID, resp.Body)
}

func (i *Importer) importRows(userID int64, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row shape is validated per record

	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("%w: %v", models.ErrCSVParse, err)
		}

		m, err := parseRow(userID, record, i.maxBodyWeight)
		if err != nil {
			slog.Debug("csvio rejecting row", "userID", userID, "row", imported+1, "error", err)
			return imported, fmt.Errorf("%w: row %d", models.ErrCSVParse, imported+1)
		}
		if err := i.store.AppendMeasurement(m); err != nil {
			return imported, fmt.Errorf("append imported measurement: %w", err)
		}
		imported++
	}

	slog.Debug("csvio import complete", "userID", userID, "rows", imported)
	return imported, nil
}

func parseRow(userID int64, record []string, maxBodyWeight float64) (models.Measurement, error) {
	if len(record) != 2 {
		return models.Measurement{}, fmt.Errorf("expected 2 columns, got %d", len(record))
	}
	date, err := models.ParseDate(record[0])
	if err != nil {
		return models.Measurement{}, err
	}
	value, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return models.Measurement{}, fmt.Errorf("%w: %q", models.ErrInvalidNumber, record[1])
	}
	if value <= 0 || value >= maxBodyWeight {
		return models.Measurement{}, fmt.Errorf("%w: %v out of bounds", models.ErrInvalidNumber, value)
	}
	return models.Measurement{UserID: userID, Date: date, Value: value}, nil
}
