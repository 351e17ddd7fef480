package store

import (
	"time"

	"github.com/google/uuid"
)

// InputStore owns the price base of inputs (insumos): materials, labor
// and equipment referenced by compositions and budgets.
type InputStore struct {
	c *collection[Input]
}

func NewInputStore(s *Store) *InputStore {
	c := newCollection(s, slotInputs, func(i *Input) string { return i.ID })
	c.load()
	return &InputStore{c: c}
}

type CreateInput struct {
	Code      string
	Name      string
	Unit      string
	UnitPrice float64
	Category  InputCategory
}

type InputPatch struct {
	Code      *string
	Name      *string
	Unit      *string
	UnitPrice *float64
	Category  *InputCategory
}

func (is *InputStore) Refresh() {
	is.c.load()
}

func (is *InputStore) List() []Input {
	return is.c.List()
}

func (is *InputStore) Get(id string) (*Input, error) {
	in, ok := is.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &in, nil
}

func (is *InputStore) Create(dto CreateInput) (*Input, error) {
	now := time.Now().UTC()
	in := Input{
		ID:        uuid.NewString(),
		Code:      dto.Code,
		Name:      dto.Name,
		Unit:      dto.Unit,
		UnitPrice: dto.UnitPrice,
		Category:  dto.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := is.c.Insert(in)
	return &in, err
}

func (is *InputStore) Update(id string, patch InputPatch) (*Input, error) {
	in, err := is.c.Apply(id, func(i *Input) {
		if patch.Code != nil {
			i.Code = *patch.Code
		}
		if patch.Name != nil {
			i.Name = *patch.Name
		}
		if patch.Unit != nil {
			i.Unit = *patch.Unit
		}
		if patch.UnitPrice != nil {
			i.UnitPrice = *patch.UnitPrice
		}
		if patch.Category != nil {
			i.Category = *patch.Category
		}
		i.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return &in, err
	}
	return &in, nil
}

func (is *InputStore) Delete(id string) error {
	return is.c.Remove(id)
}

// Replace overwrites the whole collection; used by backup restore.
func (is *InputStore) Replace(inputs []Input) error {
	return is.c.Replace(inputs)
}
