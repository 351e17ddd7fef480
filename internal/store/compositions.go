package store

import (
	"time"

	"github.com/google/uuid"
)

// CompositionStore owns service compositions: a priced recipe of inputs
// per unit of service.
type CompositionStore struct {
	c *collection[Composition]
}

func NewCompositionStore(s *Store) *CompositionStore {
	c := newCollection(s, slotCompositions, func(cp *Composition) string { return cp.ID })
	c.normalize = func(cp *Composition) {
		if cp.Items == nil {
			cp.Items = []CompositionItem{}
		}
	}
	c.load()
	return &CompositionStore{c: c}
}

type CreateComposition struct {
	Code  string
	Name  string
	Unit  string
	Items []CompositionItem
}

type CompositionPatch struct {
	Code  *string
	Name  *string
	Unit  *string
	Items []CompositionItem
}

func (cs *CompositionStore) Refresh() {
	cs.c.load()
}

func (cs *CompositionStore) List() []Composition {
	return cs.c.List()
}

func (cs *CompositionStore) Get(id string) (*Composition, error) {
	cp, ok := cs.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &cp, nil
}

func (cs *CompositionStore) Create(dto CreateComposition) (*Composition, error) {
	now := time.Now().UTC()
	items := dto.Items
	if items == nil {
		items = []CompositionItem{}
	}
	cp := Composition{
		ID:        uuid.NewString(),
		Code:      dto.Code,
		Name:      dto.Name,
		Unit:      dto.Unit,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	cp.recompute()
	err := cs.c.Insert(cp)
	return &cp, err
}

func (cs *CompositionStore) Update(id string, patch CompositionPatch) (*Composition, error) {
	cp, err := cs.c.Apply(id, func(c *Composition) {
		if patch.Code != nil {
			c.Code = *patch.Code
		}
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Unit != nil {
			c.Unit = *patch.Unit
		}
		if patch.Items != nil {
			c.Items = patch.Items
		}
		c.recompute()
		c.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return &cp, err
	}
	return &cp, nil
}

func (cs *CompositionStore) Delete(id string) error {
	return cs.c.Remove(id)
}

// Replace overwrites the whole collection; used by backup restore.
func (cs *CompositionStore) Replace(compositions []Composition) error {
	return cs.c.Replace(compositions)
}
