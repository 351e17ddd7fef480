package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Collections travel through slots as plain JSON. Temporal fields are
// time.Time on the structs themselves and serialize as RFC 3339 strings,
// so they round-trip at any nesting depth (tasks inside plannings,
// activities inside logs) without a revival pass.

func encodeCollection[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode collection: %w", err)
	}
	return string(data), nil
}

// decodeCollection parses a slot value into a collection. Malformed
// content is a recoverable condition: the caller gets an empty collection
// and the corruption goes to the log, never up the stack.
func decodeCollection[T any](log *slog.Logger, slot, value string) []T {
	if value == "" {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		log.Warn("corrupt slot content, falling back to empty collection",
			"slot", slot, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func encodeRecord[T any](record T) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(data), nil
}

// decodeRecord parses a single-object slot (settings). Malformed content
// falls back to the provided default.
func decodeRecord[T any](log *slog.Logger, slot, value string, fallback T) T {
	if value == "" {
		return fallback
	}
	var record T
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		log.Warn("corrupt slot content, falling back to defaults",
			"slot", slot, "error", err)
		return fallback
	}
	return record
}
