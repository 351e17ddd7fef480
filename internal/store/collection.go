package store

// collection is the shared machinery behind every entity store: an
// ordered in-memory slice (most-recent-first, an ordering the UI depends
// on) mirrored to one durable slot. Every mutation rewrites the whole
// slot. A failed write is reported to the caller but the in-memory change
// is kept; the next successful mutation re-syncs the slot.
type collection[T any] struct {
	store *Store
	slot  string
	idOf  func(*T) string

	// seed provides first-run defaults, used only when the slot has
	// never been written. Corrupt content decodes to empty, not seeds.
	seed func() []T

	// sanitize, when set, adjusts the persisted copy of a record
	// (photo payloads are stripped before hitting the slot).
	sanitize func(*T)

	// normalize, when set, adjusts each record after loading.
	normalize func(*T)

	items []T
}

func newCollection[T any](s *Store, slot string, idOf func(*T) string) *collection[T] {
	return &collection[T]{store: s, slot: slot, idOf: idOf}
}

// load reconciles the in-memory collection from the durable slot. Used at
// startup and by the stores' Refresh methods.
func (c *collection[T]) load() {
	value, present, err := c.store.ReadSlot(c.slot)
	if err != nil {
		c.store.log.Warn("slot read failed, keeping empty collection",
			"slot", c.slot, "error", err)
		c.items = []T{}
		return
	}
	if !present {
		if c.seed != nil {
			c.items = c.seed()
			if err := c.persist(); err != nil {
				c.store.log.Warn("seed persist failed", "slot", c.slot, "error", err)
			}
		} else {
			c.items = []T{}
		}
		return
	}
	c.items = decodeCollection[T](c.store.log, c.slot, value)
	if c.normalize != nil {
		for i := range c.items {
			c.normalize(&c.items[i])
		}
	}
}

// List returns a copy of the collection in its stored order.
func (c *collection[T]) List() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) Get(id string) (T, bool) {
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) Len() int {
	return len(c.items)
}

// Insert prepends a record and persists. The record keeps its place in
// memory even when the write fails.
func (c *collection[T]) Insert(item T) error {
	c.items = append([]T{item}, c.items...)
	return c.persist()
}

// Apply mutates the record with the given id in place and persists.
// Returns ErrNotFound, with the collection untouched, when the id is
// absent.
func (c *collection[T]) Apply(id string, mutate func(*T)) (T, error) {
	var zero T
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			mutate(&c.items[i])
			return c.items[i], c.persist()
		}
	}
	return zero, ErrNotFound
}

// Remove filters the id out and persists. Removing an absent id is a
// no-op, not an error.
func (c *collection[T]) Remove(id string) error {
	kept := c.items[:0:0]
	removed := false
	for i := range c.items {
		if c.idOf(&c.items[i]) == id {
			removed = true
			continue
		}
		kept = append(kept, c.items[i])
	}
	if !removed {
		return nil
	}
	c.items = kept
	return c.persist()
}

// Replace overwrites the whole in-memory collection (restore path) and
// persists it through the normal write.
func (c *collection[T]) Replace(items []T) error {
	if items == nil {
		items = []T{}
	}
	c.items = items
	if c.normalize != nil {
		for i := range c.items {
			c.normalize(&c.items[i])
		}
	}
	return c.persist()
}

func (c *collection[T]) persist() error {
	items := c.items
	if c.sanitize != nil {
		items = make([]T, len(c.items))
		copy(items, c.items)
		for i := range items {
			c.sanitize(&items[i])
		}
	}
	value, err := encodeCollection(items)
	if err != nil {
		return err
	}
	return c.store.WriteSlot(c.slot, value)
}
