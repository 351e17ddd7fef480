package store

import (
	"time"

	"github.com/google/uuid"
)

// MeasurementStore owns progress measurements (medições). Money fields
// are always derived: create and update recompute item totals, subtotal,
// retention and net value before anything is persisted.
type MeasurementStore struct {
	c *collection[Measurement]
}

func NewMeasurementStore(s *Store) *MeasurementStore {
	c := newCollection(s, slotMeasurements, func(m *Measurement) string { return m.ID })
	c.normalize = func(m *Measurement) {
		if m.Items == nil {
			m.Items = []MeasurementItem{}
		}
	}
	c.load()
	return &MeasurementStore{c: c}
}

type CreateMeasurement struct {
	MeasurementNumber   int
	ProjectName         string
	ClientID            string
	ReferenceDate       time.Time
	Status              MeasurementStatus
	Items               []MeasurementItem
	RetentionPercentage float64
}

type MeasurementPatch struct {
	MeasurementNumber   *int
	ProjectName         *string
	ClientID            *string
	ReferenceDate       *time.Time
	Status              *MeasurementStatus
	Items               []MeasurementItem
	RetentionPercentage *float64
}

func (ms *MeasurementStore) Refresh() {
	ms.c.load()
}

func (ms *MeasurementStore) List() []Measurement {
	return ms.c.List()
}

func (ms *MeasurementStore) Get(id string) (*Measurement, error) {
	m, ok := ms.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (ms *MeasurementStore) Create(dto CreateMeasurement) (*Measurement, error) {
	now := time.Now().UTC()
	items := dto.Items
	if items == nil {
		items = []MeasurementItem{}
	}
	m := Measurement{
		ID:                  uuid.NewString(),
		MeasurementNumber:   dto.MeasurementNumber,
		ProjectName:         dto.ProjectName,
		ClientID:            dto.ClientID,
		ReferenceDate:       dto.ReferenceDate,
		Status:              dto.Status,
		Items:               items,
		RetentionPercentage: dto.RetentionPercentage,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	m.recompute()
	err := ms.c.Insert(m)
	return &m, err
}

func (ms *MeasurementStore) Update(id string, patch MeasurementPatch) (*Measurement, error) {
	m, err := ms.c.Apply(id, func(m *Measurement) {
		if patch.MeasurementNumber != nil {
			m.MeasurementNumber = *patch.MeasurementNumber
		}
		if patch.ProjectName != nil {
			m.ProjectName = *patch.ProjectName
		}
		if patch.ClientID != nil {
			m.ClientID = *patch.ClientID
		}
		if patch.ReferenceDate != nil {
			m.ReferenceDate = *patch.ReferenceDate
		}
		if patch.Status != nil {
			m.Status = *patch.Status
		}
		if patch.Items != nil {
			m.Items = patch.Items
		}
		if patch.RetentionPercentage != nil {
			m.RetentionPercentage = *patch.RetentionPercentage
		}
		m.recompute()
		m.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return &m, err
	}
	return &m, nil
}

func (ms *MeasurementStore) Delete(id string) error {
	return ms.c.Remove(id)
}
