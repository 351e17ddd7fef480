package export

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dfarias/obralog/internal/backup"
	"github.com/dfarias/obralog/internal/store"
)

func newBackupDocument(t *testing.T) *backup.Document {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	stores := store.NewStores(s)
	doc, err := backup.NewCoordinator(stores, nil).Create()
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	return doc
}

func TestBackupFileRoundTrip(t *testing.T) {
	doc := newBackupDocument(t)
	path := filepath.Join(t.TempDir(), "backup.json")

	if err := WriteBackup(doc, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadBackup(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != doc.Version || got.Timestamp != doc.Timestamp {
		t.Fatalf("envelope mismatch: %+v", got)
	}
}

func TestReadBackupMissingFile(t *testing.T) {
	_, err := ReadBackup(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadBackupInvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("not json at all"), 0o644)

	_, err := ReadBackup(path)
	if !errors.Is(err, backup.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestMeasurementsToCSV(t *testing.T) {
	measurements := []store.Measurement{
		{
			MeasurementNumber: 1,
			ProjectName:       "Galpão",
			ReferenceDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Status:            store.MeasurementApproved,
			Items: []store.MeasurementItem{
				{ServiceCode: "03.01", ServiceName: "Concreto", Unit: "m3", CurrentQuantity: 10, UnitPrice: 5, TotalValue: 50},
				{ServiceCode: "04.01", ServiceName: "Formas", Unit: "m2", CurrentQuantity: 2, UnitPrice: 8, TotalValue: 16},
			},
			Subtotal:            66,
			RetentionPercentage: 5,
			RetentionAmount:     3.3,
			NetValue:            62.7,
		},
		{
			MeasurementNumber: 2,
			ProjectName:       "Obra vazia",
			ReferenceDate:     time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			Status:            store.MeasurementDraft,
		},
	}

	path := filepath.Join(t.TempDir(), "measurements.csv")
	if err := MeasurementsToCSV(measurements, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header + two item rows + one empty-measurement row.
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[1][4] != "03.01" || rows[2][4] != "04.01" {
		t.Fatalf("unexpected item rows: %v %v", rows[1], rows[2])
	}
	if rows[1][14] != "62.70" {
		t.Fatalf("expected net 62.70, got %q", rows[1][14])
	}
	// A measurement without items still gets one row with blanks.
	if rows[3][1] != "Obra vazia" || rows[3][4] != "" {
		t.Fatalf("unexpected empty-measurement row: %v", rows[3])
	}
}
