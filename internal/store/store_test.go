package store

import (
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// corruptSlot is a test helper that overwrites a slot with non-JSON
// garbage directly, bypassing the codec.
func corruptSlot(t *testing.T, s *Store, slot string) {
	t.Helper()
	if err := s.WriteSlot(slot, "{not valid json"); err != nil {
		t.Fatalf("corrupt slot: %v", err)
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/obralog.db"
	s, err := New(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(path, "obralog") {
		t.Fatalf("unexpected path: %s", path)
	}
}

// ============================================================
// Slots
// ============================================================

func TestReadMissingSlot(t *testing.T) {
	s := newTestStore(t)
	_, present, err := s.ReadSlot("nothing_here")
	if err != nil {
		t.Fatal(err)
	}
	if present {
		t.Fatal("unwritten slot should not be present")
	}
}

func TestWriteAndReadSlot(t *testing.T) {
	s := newTestStore(t)
	if err := s.WriteSlot("greeting", `"hello"`); err != nil {
		t.Fatal(err)
	}
	value, present, err := s.ReadSlot("greeting")
	if err != nil {
		t.Fatal(err)
	}
	if !present {
		t.Fatal("slot should be present after write")
	}
	if value != `"hello"` {
		t.Fatalf("expected %q, got %q", `"hello"`, value)
	}
}

func TestWriteSlotOverwrites(t *testing.T) {
	s := newTestStore(t)
	s.WriteSlot("k", "old")
	s.WriteSlot("k", "new")

	value, _, _ := s.ReadSlot("k")
	if value != "new" {
		t.Fatalf("expected overwritten value, got %q", value)
	}
}

func TestDeleteSlot(t *testing.T) {
	s := newTestStore(t)
	s.WriteSlot("k", "v")
	if err := s.DeleteSlot("k"); err != nil {
		t.Fatal(err)
	}
	_, present, _ := s.ReadSlot("k")
	if present {
		t.Fatal("deleted slot should not be present")
	}

	// Deleting again is a no-op
	if err := s.DeleteSlot("k"); err != nil {
		t.Fatalf("delete of missing slot should not error: %v", err)
	}
}

func TestEmptyValueIsPresent(t *testing.T) {
	s := newTestStore(t)
	s.WriteSlot("k", "")
	_, present, err := s.ReadSlot("k")
	if err != nil {
		t.Fatal(err)
	}
	if !present {
		t.Fatal("empty value should still count as present")
	}
}

// ============================================================
// Codec
// ============================================================

func TestCollectionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := []Reminder{{ID: "a", Text: "buy cement"}, {ID: "b", Text: "call supplier"}}

	value, err := encodeCollection(in)
	if err != nil {
		t.Fatal(err)
	}
	out := decodeCollection[Reminder](s.log, "test", value)
	if len(out) != 2 || out[0].Text != "buy cement" || out[1].ID != "b" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestDecodeCorruptCollection(t *testing.T) {
	s := newTestStore(t)
	out := decodeCollection[Reminder](s.log, "test", "{definitely not json")
	if out == nil {
		t.Fatal("expected empty collection, got nil")
	}
	if len(out) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(out))
	}
}

func TestDecodeEmptyValue(t *testing.T) {
	s := newTestStore(t)
	out := decodeCollection[Reminder](s.log, "test", "")
	if len(out) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(out))
	}
}

func TestDecodeJSONNull(t *testing.T) {
	s := newTestStore(t)
	out := decodeCollection[Reminder](s.log, "test", "null")
	if out == nil {
		t.Fatal("null should decode to an empty collection, not nil")
	}
}

func TestEncodeNilCollection(t *testing.T) {
	value, err := encodeCollection[Reminder](nil)
	if err != nil {
		t.Fatal(err)
	}
	if value != "[]" {
		t.Fatalf("expected [], got %q", value)
	}
}

func TestDecodeRecordFallback(t *testing.T) {
	s := newTestStore(t)
	got := decodeRecord(s.log, "settings", "{broken", DefaultSettings())
	if got.CompanyName != DefaultSettings().CompanyName {
		t.Fatalf("expected fallback settings, got %+v", got)
	}
}

// ============================================================
// Clients
// ============================================================

func TestClientsSeededOnFirstRun(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)

	clients := cs.List()
	if len(clients) != 2 {
		t.Fatalf("expected 2 seed clients, got %d", len(clients))
	}

	// The seed must have hit the slot, not just memory.
	_, present, _ := s.ReadSlot(slotClients)
	if !present {
		t.Fatal("seed should be persisted")
	}
}

func TestClientsNotReseededAfterDelete(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)
	for _, c := range cs.List() {
		cs.Delete(c.ID)
	}

	cs2 := NewClientStore(s)
	if cs2.c.Len() != 0 {
		t.Fatal("emptied collection must stay empty on reload, not reseed")
	}
}

func TestCreateClient(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)

	cl, err := cs.Create(CreateClient{
		Name:       "Ana Pereira",
		Company:    "AP Engenharia",
		ClientType: ClientPrivate,
		IsActive:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cl.ID == "" {
		t.Fatal("expected generated id")
	}
	if cl.CreatedAt.IsZero() || cl.UpdatedAt.IsZero() {
		t.Fatal("timestamps should be set")
	}

	// New records go to the front.
	if cs.List()[0].ID != cl.ID {
		t.Fatal("created client should be first in the list")
	}
}

func TestGetClientNotFound(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)
	_, err := cs.Get("no-such-id")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateClientPartial(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)
	cl, _ := cs.Create(CreateClient{Name: "Ana", Email: "ana@x.com", ClientType: ClientPrivate, IsActive: true})

	name := "Ana Souza"
	updated, err := cs.Update(cl.ID, ClientPatch{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Ana Souza" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	// Untouched fields keep their values.
	if updated.Email != "ana@x.com" {
		t.Fatalf("email should be unchanged, got %q", updated.Email)
	}
	if !updated.UpdatedAt.After(cl.UpdatedAt) && !updated.UpdatedAt.Equal(cl.UpdatedAt) {
		t.Fatal("UpdatedAt should advance")
	}
}

func TestUpdateClientNotFound(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)

	before := cs.List()
	name := "Ghost"
	_, err := cs.Update("missing", ClientPatch{Name: &name})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(cs.List()) != len(before) {
		t.Fatal("failed update must not touch the collection")
	}
}

func TestDeleteClientIdempotent(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)
	cl, _ := cs.Create(CreateClient{Name: "Gone", ClientType: ClientPrivate})

	if err := cs.Delete(cl.ID); err != nil {
		t.Fatal(err)
	}
	if err := cs.Delete(cl.ID); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, err := cs.Get(cl.ID); err != ErrNotFound {
		t.Fatal("deleted client should be gone")
	}
}

func TestClientsSurviveReload(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)
	cl, _ := cs.Create(CreateClient{Name: "Persistent", ClientType: ClientPublic, IsActive: true})

	cs2 := NewClientStore(s)
	got, err := cs2.Get(cl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Persistent" || got.ClientType != ClientPublic {
		t.Fatalf("reloaded client mismatch: %+v", got)
	}
}

func TestClientsCorruptSlotFallsBackEmpty(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)
	corruptSlot(t, s, slotClients)

	cs.Refresh()
	if len(cs.List()) != 0 {
		t.Fatal("corrupt slot should load as empty, not seed and not error")
	}
}

func TestClientReplace(t *testing.T) {
	s := newTestStore(t)
	cs := NewClientStore(s)

	err := cs.Replace([]Client{{ID: "r1", Name: "Restored", ClientType: ClientPrivate}})
	if err != nil {
		t.Fatal(err)
	}
	clients := cs.List()
	if len(clients) != 1 || clients[0].ID != "r1" {
		t.Fatalf("expected replaced collection, got %+v", clients)
	}

	// Replace persists: a fresh store sees the restored state.
	cs2 := NewClientStore(s)
	if cs2.c.Len() != 1 {
		t.Fatal("replace should persist")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)
	ss := NewSettingsStore(s)

	got := ss.Get()
	if got.CompanyName != "Minha Construtora" {
		t.Fatalf("unexpected default company: %q", got.CompanyName)
	}
	if got.Theme != ThemeDark || got.Currency != "BRL" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestSettingsUpdatePersists(t *testing.T) {
	s := newTestStore(t)
	ss := NewSettingsStore(s)

	name := "Construtora Horizonte"
	email := "contato@horizonte.com.br"
	if _, err := ss.Update(SettingsPatch{CompanyName: &name, Email: &email}); err != nil {
		t.Fatal(err)
	}

	ss2 := NewSettingsStore(s)
	got := ss2.Get()
	if got.CompanyName != "Construtora Horizonte" || got.Email != email {
		t.Fatalf("settings did not survive reload: %+v", got)
	}
	// Untouched fields keep defaults.
	if got.Currency != "BRL" {
		t.Fatalf("currency should be unchanged, got %q", got.Currency)
	}
}

func TestSettingsReset(t *testing.T) {
	s := newTestStore(t)
	ss := NewSettingsStore(s)
	name := "Changed"
	ss.Update(SettingsPatch{CompanyName: &name})

	got, err := ss.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if got.CompanyName != DefaultSettings().CompanyName {
		t.Fatalf("expected defaults after reset, got %+v", got)
	}
}

func TestSettingsCorruptSlotFallsBackDefault(t *testing.T) {
	s := newTestStore(t)
	NewSettingsStore(s)
	corruptSlot(t, s, slotSettings)

	ss := NewSettingsStore(s)
	if ss.Get().CompanyName != DefaultSettings().CompanyName {
		t.Fatal("corrupt settings slot should fall back to defaults")
	}
}
