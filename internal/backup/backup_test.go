package backup

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dfarias/obralog/internal/store"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *store.Stores) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	stores := store.NewStores(s)
	return NewCoordinator(stores, nil), stores
}

// ============================================================
// Create
// ============================================================

func TestCreateDocument(t *testing.T) {
	c, stores := newTestCoordinator(t)
	stores.Budgets.Create(store.CreateBudget{ProjectName: "Obra", Status: store.BudgetDraft})

	doc, err := c.Create()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != Version {
		t.Fatalf("expected version %q, got %q", Version, doc.Version)
	}
	if doc.Timestamp == "" {
		t.Fatal("timestamp should be set")
	}

	var budgets []store.Budget
	if err := json.Unmarshal(doc.Data.Budgets, &budgets); err != nil {
		t.Fatal(err)
	}
	if len(budgets) != 1 || budgets[0].ProjectName != "Obra" {
		t.Fatalf("unexpected snapshot: %+v", budgets)
	}
}

// ============================================================
// Restore
// ============================================================

func TestRestoreRoundTrip(t *testing.T) {
	c, stores := newTestCoordinator(t)
	stores.Inputs.Create(store.CreateInput{Code: "CIM-01", Name: "Cimento", Unit: "sc", UnitPrice: 32.5, Category: store.InputMaterial})
	name := "Exportadora"
	stores.Settings.Update(store.SettingsPatch{CompanyName: &name})

	doc, err := c.Create()
	if err != nil {
		t.Fatal(err)
	}

	// Wipe the target state, then restore.
	stores.Inputs.Replace(nil)
	stores.Settings.Reset()
	stores.Clients.Replace(nil)

	if err := c.Restore(doc); err != nil {
		t.Fatal(err)
	}
	inputs := stores.Inputs.List()
	if len(inputs) != 1 || inputs[0].Code != "CIM-01" {
		t.Fatalf("inputs not restored: %+v", inputs)
	}
	if stores.Settings.Get().CompanyName != "Exportadora" {
		t.Fatal("settings not restored")
	}
	if len(stores.Clients.List()) != 2 {
		t.Fatal("seeded clients not restored")
	}
}

func TestRestoreNilDocument(t *testing.T) {
	c, _ := newTestCoordinator(t)
	if err := c.Restore(nil); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestRestoreMissingEnvelope(t *testing.T) {
	c, stores := newTestCoordinator(t)
	before := len(stores.Clients.List())

	err := c.Restore(&Document{Timestamp: "2026-09-01T00:00:00Z", Data: &Data{}})
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument for missing version, got %v", err)
	}
	err = c.Restore(&Document{Version: Version, Timestamp: "2026-09-01T00:00:00Z"})
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument for missing data, got %v", err)
	}

	// A rejected envelope leaves every store untouched.
	if len(stores.Clients.List()) != before {
		t.Fatal("rejected restore must not touch the stores")
	}
}

func TestRestoreUnsupportedVersion(t *testing.T) {
	c, _ := newTestCoordinator(t)
	err := c.Restore(&Document{Version: "2.0", Data: &Data{}})
	if !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected wrapped ErrInvalidDocument, got %v", err)
	}
}

func TestRestoreSkipsMalformedCollection(t *testing.T) {
	c, stores := newTestCoordinator(t)
	budgetsBefore := stores.Budgets.List()

	doc := &Document{
		Version: Version,
		Data: &Data{
			Clients: json.RawMessage(`[{"id":"c1","name":"Restored","clientType":"PRIVATE","isActive":true}]`),
			Budgets: json.RawMessage(`"not an array"`),
		},
	}
	if err := c.Restore(doc); err != nil {
		t.Fatalf("malformed collection should be skipped, not fatal: %v", err)
	}

	clients := stores.Clients.List()
	if len(clients) != 1 || clients[0].ID != "c1" {
		t.Fatalf("good collection should still restore: %+v", clients)
	}
	if len(stores.Budgets.List()) != len(budgetsBefore) {
		t.Fatal("malformed budgets should leave the store untouched")
	}
}

func TestRestoreSkipsNullCollections(t *testing.T) {
	c, stores := newTestCoordinator(t)
	stores.Inputs.Create(store.CreateInput{Code: "X", Name: "X", Unit: "un", Category: store.InputMaterial})

	doc := &Document{
		Version: Version,
		Data: &Data{
			Inputs:   json.RawMessage("null"),
			Settings: json.RawMessage("null"),
		},
	}
	if err := c.Restore(doc); err != nil {
		t.Fatal(err)
	}
	if len(stores.Inputs.List()) != 1 {
		t.Fatal("null collection must not wipe existing data")
	}
	if stores.Settings.Get().CompanyName != store.DefaultSettings().CompanyName {
		t.Fatal("null settings must not overwrite")
	}
}

// ============================================================
// Marshal / Parse
// ============================================================

func TestMarshalParseRoundTrip(t *testing.T) {
	c, _ := newTestCoordinator(t)
	doc, _ := c.Create()

	data, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Version != doc.Version || parsed.Timestamp != doc.Timestamp {
		t.Fatalf("envelope mismatch: %+v", parsed)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("{broken")); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestParseRejectsEmptyEnvelope(t *testing.T) {
	if _, err := Parse([]byte(`{"version":"","data":null}`)); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}
