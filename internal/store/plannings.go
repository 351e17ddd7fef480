package store

import (
	"time"

	"github.com/google/uuid"
)

// PlanningStore owns project plannings. OverallProgress follows the task
// mean whenever tasks exist; a planning without tasks keeps whatever
// value was supplied.
type PlanningStore struct {
	c *collection[Planning]
}

func NewPlanningStore(s *Store) *PlanningStore {
	c := newCollection(s, slotPlannings, func(p *Planning) string { return p.ID })
	c.normalize = func(p *Planning) {
		if p.Tasks == nil {
			p.Tasks = []PlanningTask{}
		}
	}
	c.load()
	return &PlanningStore{c: c}
}

type CreatePlanning struct {
	ProjectName     string
	StartDate       time.Time
	EndDate         time.Time
	Status          PlanningStatus
	TotalBudget     float64
	Tasks           []PlanningTask
	OverallProgress int
}

type PlanningPatch struct {
	ProjectName     *string
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *PlanningStatus
	TotalBudget     *float64
	Tasks           []PlanningTask
	OverallProgress *int
}

func (ps *PlanningStore) Refresh() {
	ps.c.load()
}

func (ps *PlanningStore) List() []Planning {
	return ps.c.List()
}

func (ps *PlanningStore) Get(id string) (*Planning, error) {
	p, ok := ps.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (ps *PlanningStore) Create(dto CreatePlanning) (*Planning, error) {
	now := time.Now().UTC()
	tasks := dto.Tasks
	if tasks == nil {
		tasks = []PlanningTask{}
	}
	p := Planning{
		ID:              uuid.NewString(),
		ProjectName:     dto.ProjectName,
		StartDate:       dto.StartDate,
		EndDate:         dto.EndDate,
		Status:          dto.Status,
		TotalBudget:     dto.TotalBudget,
		Tasks:           tasks,
		OverallProgress: dto.OverallProgress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	p.recompute()
	err := ps.c.Insert(p)
	return &p, err
}

func (ps *PlanningStore) Update(id string, patch PlanningPatch) (*Planning, error) {
	p, err := ps.c.Apply(id, func(p *Planning) {
		if patch.ProjectName != nil {
			p.ProjectName = *patch.ProjectName
		}
		if patch.StartDate != nil {
			p.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			p.EndDate = *patch.EndDate
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.TotalBudget != nil {
			p.TotalBudget = *patch.TotalBudget
		}
		if patch.Tasks != nil {
			p.Tasks = patch.Tasks
		}
		if patch.OverallProgress != nil {
			p.OverallProgress = *patch.OverallProgress
		}
		p.recompute()
		p.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return &p, err
	}
	return &p, nil
}

func (ps *PlanningStore) Delete(id string) error {
	return ps.c.Remove(id)
}
