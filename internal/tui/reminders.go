package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dfarias/obralog/internal/store"
)

var priorities = []store.Priority{store.PriorityLow, store.PriorityMedium, store.PriorityHigh}

type remindersModel struct {
	stores *store.Stores
	width  int
	height int

	reminders []store.Reminder
	cursor    int

	formActive bool
	form       *huh.Form
	editingID  string

	formText     *string
	formDueDate  *string
	formPriority *string
}

func newRemindersModel(s *store.Stores) remindersModel {
	text, due, priority := "", "", string(store.PriorityMedium)
	return remindersModel{
		stores:       s,
		formText:     &text,
		formDueDate:  &due,
		formPriority: &priority,
	}
}

func (m *remindersModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m remindersModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return remindersDataMsg{reminders: m.stores.Reminders.List()}
	}
}

func (m remindersModel) update(msg tea.Msg) (remindersModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case remindersDataMsg:
		m.reminders = msg.reminders
		if m.cursor >= len(m.reminders) {
			m.cursor = max(0, len(m.reminders)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.reminders)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if len(m.reminders) > 0 {
				r := m.reminders[m.cursor]
				completed := !r.Completed
				m.stores.Reminders.Update(r.ID, store.ReminderPatch{Completed: &completed})
				return m, m.refresh()
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.reminders) > 0 {
				r := m.reminders[m.cursor]
				return m.showForm(&r)
			}
		case key.Matches(msg, keys.Delete):
			if len(m.reminders) > 0 {
				m.stores.Reminders.Delete(m.reminders[m.cursor].ID)
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m remindersModel) showForm(existing *store.Reminder) (remindersModel, tea.Cmd) {
	if existing != nil {
		*m.formText = existing.Text
		*m.formDueDate = existing.DueDate.Format(time.DateOnly)
		*m.formPriority = string(existing.Priority)
		m.editingID = existing.ID
	} else {
		*m.formText = ""
		*m.formDueDate = time.Now().Format(time.DateOnly)
		*m.formPriority = string(store.PriorityMedium)
		m.editingID = ""
	}

	priorityOptions := make([]huh.Option[string], len(priorities))
	for i, p := range priorities {
		priorityOptions[i] = huh.NewOption(string(p), string(p))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Reminder").Value(m.formText),
			huh.NewInput().Title("Due date (YYYY-MM-DD)").Value(m.formDueDate),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions...).Value(m.formPriority),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m remindersModel) updateForm(msg tea.Msg) (remindersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if *m.formText == "" {
			return m, m.refresh()
		}
		due, err := time.Parse(time.DateOnly, *m.formDueDate)
		if err != nil {
			due = time.Now().UTC()
		}
		priority := store.Priority(*m.formPriority)

		if m.editingID != "" {
			m.stores.Reminders.Update(m.editingID, store.ReminderPatch{
				Text:     m.formText,
				DueDate:  &due,
				Priority: &priority,
			})
		} else {
			m.stores.Reminders.Create(store.CreateReminder{
				Text:     *m.formText,
				DueDate:  due,
				Priority: priority,
			})
		}
		return m, m.refresh()
	}

	return m, cmd
}

func (m remindersModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Reminder")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Reminder")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	title := titleStyle.Render("Reminders")

	if len(m.reminders) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No reminders yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, r := range m.reminders {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := "[ ]"
		if r.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %-40s %-12s ", cursor, check, truncate(r.Text, 40), formatDate(r.DueDate))
		rendered := style.Render(line) + priorityStyle(r.Priority).Render(string(r.Priority))
		if r.Completed {
			rendered = style.Render(line) + mutedStyle.Render(string(r.Priority))
		}
		rows = append(rows, rendered)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  space: toggle done"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
