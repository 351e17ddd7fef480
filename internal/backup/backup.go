// Package backup snapshots the aggregate state of the budget-module
// stores into one portable document and pushes a parsed document back
// into them. Restore is best effort per collection: inside a valid
// envelope, a malformed collection is skipped without aborting the rest.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dfarias/obralog/internal/store"
)

// Version is checked on import; documents from a future format are
// rejected rather than half-applied.
const Version = "1.0"

// ErrInvalidDocument signals a missing version or data envelope. The UI
// maps it to a generic "invalid file" message.
var ErrInvalidDocument = errors.New("invalid backup document")

type Document struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Data      *Data  `json:"data"`
}

// Data keeps each collection as raw JSON so restore can decode them
// independently: one bad collection must not poison the others.
type Data struct {
	Clients      json.RawMessage `json:"clients"`
	Budgets      json.RawMessage `json:"budgets"`
	Inputs       json.RawMessage `json:"inputs"`
	Compositions json.RawMessage `json:"compositions"`
	Settings     json.RawMessage `json:"settings"`
}

type Coordinator struct {
	clients      *store.ClientStore
	budgets      *store.BudgetStore
	inputs       *store.InputStore
	compositions *store.CompositionStore
	settings     *store.SettingsStore
	log          *slog.Logger
}

func NewCoordinator(stores *store.Stores, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		clients:      stores.Clients,
		budgets:      stores.Budgets,
		inputs:       stores.Inputs,
		compositions: stores.Compositions,
		settings:     stores.Settings,
		log:          log,
	}
}

// Create assembles a document from the current in-memory state of each
// store. It deliberately does not re-read durable storage, so a snapshot
// taken right after a mutation reflects that mutation even if its write
// failed.
func (c *Coordinator) Create() (*Document, error) {
	data := &Data{}

	var err error
	if data.Clients, err = json.Marshal(c.clients.List()); err != nil {
		return nil, fmt.Errorf("snapshot clients: %w", err)
	}
	if data.Budgets, err = json.Marshal(c.budgets.List()); err != nil {
		return nil, fmt.Errorf("snapshot budgets: %w", err)
	}
	if data.Inputs, err = json.Marshal(c.inputs.List()); err != nil {
		return nil, fmt.Errorf("snapshot inputs: %w", err)
	}
	if data.Compositions, err = json.Marshal(c.compositions.List()); err != nil {
		return nil, fmt.Errorf("snapshot compositions: %w", err)
	}
	if data.Settings, err = json.Marshal(c.settings.Get()); err != nil {
		return nil, fmt.Errorf("snapshot settings: %w", err)
	}

	return &Document{
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}, nil
}

// Restore pushes a document's collections into the stores. The envelope
// is validated first; an invalid envelope leaves every store untouched.
// Past that point each collection is applied independently and a
// malformed one is skipped (logged, not surfaced).
func (c *Coordinator) Restore(doc *Document) error {
	if doc == nil || doc.Data == nil || doc.Version == "" {
		return ErrInvalidDocument
	}
	if doc.Version != Version {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidDocument, doc.Version)
	}

	restoreCollection(c.log, "clients", doc.Data.Clients, c.clients.Replace)
	restoreCollection(c.log, "budgets", doc.Data.Budgets, c.budgets.Replace)
	restoreCollection(c.log, "inputs", doc.Data.Inputs, c.inputs.Replace)
	restoreCollection(c.log, "compositions", doc.Data.Compositions, c.compositions.Replace)

	if len(doc.Data.Settings) > 0 && string(doc.Data.Settings) != "null" {
		var settings store.CompanySettings
		if err := json.Unmarshal(doc.Data.Settings, &settings); err != nil {
			c.log.Warn("skipping malformed backup collection", "collection", "settings", "error", err)
		} else if err := c.settings.Replace(settings); err != nil {
			c.log.Warn("restore write failed", "collection", "settings", "error", err)
		}
	}

	return nil
}

func restoreCollection[T any](log *slog.Logger, name string, raw json.RawMessage, replace func([]T) error) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn("skipping malformed backup collection", "collection", name, "error", err)
		return
	}
	if err := replace(items); err != nil {
		log.Warn("restore write failed", "collection", name, "error", err)
	}
}

// Marshal renders the document for the file boundary.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return data, nil
}

// Parse reads a document back in. Only the envelope is validated here;
// collection content is checked during Restore.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Version == "" || doc.Data == nil {
		return nil, ErrInvalidDocument
	}
	return &doc, nil
}
