package store

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLogStore owns the construction diary (one record per work day
// per project).
type ActivityLogStore struct {
	c *collection[ActivityLog]
}

func NewActivityLogStore(s *Store) *ActivityLogStore {
	c := newCollection(s, slotActivityLogs, func(l *ActivityLog) string { return l.ID })
	c.normalize = func(l *ActivityLog) {
		if l.Activities == nil {
			l.Activities = []Activity{}
		}
		if l.Materials == nil {
			l.Materials = []string{}
		}
		if l.Equipment == nil {
			l.Equipment = []string{}
		}
	}
	c.load()
	return &ActivityLogStore{c: c}
}

type CreateActivityLog struct {
	Date        time.Time
	ProjectName string
	Weather     Weather
	TeamCount   int
	Activities  []Activity
	Materials   []string
	Equipment   []string
	Status      DayStatus
	Notes       string
}

type ActivityLogPatch struct {
	Date        *time.Time
	ProjectName *string
	Weather     *Weather
	TeamCount   *int
	Activities  []Activity
	Materials   []string
	Equipment   []string
	Status      *DayStatus
	Notes       *string
}

func (ls *ActivityLogStore) Refresh() {
	ls.c.load()
}

func (ls *ActivityLogStore) List() []ActivityLog {
	return ls.c.List()
}

func (ls *ActivityLogStore) Get(id string) (*ActivityLog, error) {
	l, ok := ls.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (ls *ActivityLogStore) Create(dto CreateActivityLog) (*ActivityLog, error) {
	now := time.Now().UTC()
	activities := dto.Activities
	if activities == nil {
		activities = []Activity{}
	}
	for i := range activities {
		if activities[i].ID == "" {
			activities[i].ID = uuid.NewString()
		}
	}
	l := ActivityLog{
		ID:          uuid.NewString(),
		Date:        dto.Date,
		ProjectName: dto.ProjectName,
		Weather:     dto.Weather,
		TeamCount:   dto.TeamCount,
		Activities:  activities,
		Materials:   dto.Materials,
		Equipment:   dto.Equipment,
		Status:      dto.Status,
		Notes:       dto.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if l.Materials == nil {
		l.Materials = []string{}
	}
	if l.Equipment == nil {
		l.Equipment = []string{}
	}
	err := ls.c.Insert(l)
	return &l, err
}

func (ls *ActivityLogStore) Update(id string, patch ActivityLogPatch) (*ActivityLog, error) {
	l, err := ls.c.Apply(id, func(log *ActivityLog) {
		if patch.Date != nil {
			log.Date = *patch.Date
		}
		if patch.ProjectName != nil {
			log.ProjectName = *patch.ProjectName
		}
		if patch.Weather != nil {
			log.Weather = *patch.Weather
		}
		if patch.TeamCount != nil {
			log.TeamCount = *patch.TeamCount
		}
		if patch.Activities != nil {
			for i := range patch.Activities {
				if patch.Activities[i].ID == "" {
					patch.Activities[i].ID = uuid.NewString()
				}
			}
			log.Activities = patch.Activities
		}
		if patch.Materials != nil {
			log.Materials = patch.Materials
		}
		if patch.Equipment != nil {
			log.Equipment = patch.Equipment
		}
		if patch.Status != nil {
			log.Status = *patch.Status
		}
		if patch.Notes != nil {
			log.Notes = *patch.Notes
		}
		log.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return &l, err
	}
	return &l, nil
}

func (ls *ActivityLogStore) Delete(id string) error {
	return ls.c.Remove(id)
}
