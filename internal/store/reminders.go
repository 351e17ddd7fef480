package store

import (
	"time"

	"github.com/google/uuid"
)

// ReminderStore owns reminders. Reminders carry no UpdatedAt; toggling
// completion is the only mutation the UI performs besides editing text.
type ReminderStore struct {
	c *collection[Reminder]
}

func NewReminderStore(s *Store) *ReminderStore {
	c := newCollection(s, slotReminders, func(r *Reminder) string { return r.ID })
	c.load()
	return &ReminderStore{c: c}
}

type CreateReminder struct {
	Text     string
	DueDate  time.Time
	Priority Priority
}

type ReminderPatch struct {
	Text      *string
	DueDate   *time.Time
	Priority  *Priority
	Completed *bool
}

func (rs *ReminderStore) Refresh() {
	rs.c.load()
}

func (rs *ReminderStore) List() []Reminder {
	return rs.c.List()
}

func (rs *ReminderStore) Get(id string) (*Reminder, error) {
	r, ok := rs.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (rs *ReminderStore) Create(dto CreateReminder) (*Reminder, error) {
	r := Reminder{
		ID:        uuid.NewString(),
		Text:      dto.Text,
		DueDate:   dto.DueDate,
		Priority:  dto.Priority,
		CreatedAt: time.Now().UTC(),
	}
	err := rs.c.Insert(r)
	return &r, err
}

func (rs *ReminderStore) Update(id string, patch ReminderPatch) (*Reminder, error) {
	r, err := rs.c.Apply(id, func(r *Reminder) {
		if patch.Text != nil {
			r.Text = *patch.Text
		}
		if patch.DueDate != nil {
			r.DueDate = *patch.DueDate
		}
		if patch.Priority != nil {
			r.Priority = *patch.Priority
		}
		if patch.Completed != nil {
			r.Completed = *patch.Completed
		}
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return &r, err
	}
	return &r, nil
}

func (rs *ReminderStore) Delete(id string) error {
	return rs.c.Remove(id)
}
