package store

import (
	"time"

	"github.com/google/uuid"
)

// BudgetStore owns budgets (orçamentos). Totals are derived on every
// mutation: item totals, subtotal and the BDI-loaded final value.
type BudgetStore struct {
	c *collection[Budget]
}

func NewBudgetStore(s *Store) *BudgetStore {
	c := newCollection(s, slotBudgets, func(b *Budget) string { return b.ID })
	c.normalize = func(b *Budget) {
		if b.Items == nil {
			b.Items = []BudgetItem{}
		}
	}
	c.load()
	return &BudgetStore{c: c}
}

type CreateBudget struct {
	ClientID      string
	ProjectName   string
	Status        BudgetStatus
	Items         []BudgetItem
	BDIPercentage float64
}

type BudgetPatch struct {
	ClientID      *string
	ProjectName   *string
	Status        *BudgetStatus
	Items         []BudgetItem
	BDIPercentage *float64
}

func (bs *BudgetStore) Refresh() {
	bs.c.load()
}

func (bs *BudgetStore) List() []Budget {
	return bs.c.List()
}

func (bs *BudgetStore) Get(id string) (*Budget, error) {
	b, ok := bs.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (bs *BudgetStore) Create(dto CreateBudget) (*Budget, error) {
	now := time.Now().UTC()
	items := dto.Items
	if items == nil {
		items = []BudgetItem{}
	}
	b := Budget{
		ID:            uuid.NewString(),
		ClientID:      dto.ClientID,
		ProjectName:   dto.ProjectName,
		Status:        dto.Status,
		Items:         items,
		BDIPercentage: dto.BDIPercentage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	b.recompute()
	err := bs.c.Insert(b)
	return &b, err
}

func (bs *BudgetStore) Update(id string, patch BudgetPatch) (*Budget, error) {
	b, err := bs.c.Apply(id, func(b *Budget) {
		if patch.ClientID != nil {
			b.ClientID = *patch.ClientID
		}
		if patch.ProjectName != nil {
			b.ProjectName = *patch.ProjectName
		}
		if patch.Status != nil {
			b.Status = *patch.Status
		}
		if patch.Items != nil {
			b.Items = patch.Items
		}
		if patch.BDIPercentage != nil {
			b.BDIPercentage = *patch.BDIPercentage
		}
		b.recompute()
		b.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return &b, err
	}
	return &b, nil
}

func (bs *BudgetStore) Delete(id string) error {
	return bs.c.Remove(id)
}

// Replace overwrites the whole collection; used by backup restore.
func (bs *BudgetStore) Replace(budgets []Budget) error {
	return bs.c.Replace(budgets)
}
