package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dfarias/obralog/internal/store"
)

var weathers = []store.Weather{store.WeatherSunny, store.WeatherCloudy, store.WeatherRainy, store.WeatherStorm}
var dayStatuses = []store.DayStatus{store.DayProductive, store.DayNormal, store.DayUnproductive}

type diaryModel struct {
	stores *store.Stores
	width  int
	height int

	logs    []store.ActivityLog
	cursor  int
	viewing bool // true = detail view of selected log

	formActive bool
	form       *huh.Form
	editingID  string

	formProject    *string
	formDate       *string
	formWeather    *string
	formTeamCount  *string
	formStatus     *string
	formActivities *string
	formMaterials  *string
	formEquipment  *string
	formNotes      *string
}

func newDiaryModel(s *store.Stores) diaryModel {
	project, date, weather, team := "", "", string(store.WeatherSunny), "0"
	status, activities, materials, equipment, notes := string(store.DayNormal), "", "", "", ""
	return diaryModel{
		stores:         s,
		formProject:    &project,
		formDate:       &date,
		formWeather:    &weather,
		formTeamCount:  &team,
		formStatus:     &status,
		formActivities: &activities,
		formMaterials:  &materials,
		formEquipment:  &equipment,
		formNotes:      &notes,
	}
}

func (d *diaryModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d diaryModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return diaryDataMsg{logs: d.stores.ActivityLogs.List()}
	}
}

func (d diaryModel) update(msg tea.Msg) (diaryModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case diaryDataMsg:
		d.logs = msg.logs
		if d.cursor >= len(d.logs) {
			d.cursor = max(0, len(d.logs)-1)
		}
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			if d.viewing {
				d.viewing = false
			}
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.logs)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(d.logs) > 0 {
				d.viewing = true
			}
		case key.Matches(msg, keys.New):
			return d.showLogForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(d.logs) > 0 {
				l := d.logs[d.cursor]
				return d.showLogForm(&l)
			}
		case key.Matches(msg, keys.Delete):
			if len(d.logs) > 0 {
				d.stores.ActivityLogs.Delete(d.logs[d.cursor].ID)
				d.viewing = false
				return d, d.refresh()
			}
		}
	}
	return d, nil
}

func (d diaryModel) showLogForm(existing *store.ActivityLog) (diaryModel, tea.Cmd) {
	if existing != nil {
		*d.formProject = existing.ProjectName
		*d.formDate = existing.Date.Format(time.DateOnly)
		*d.formWeather = string(existing.Weather)
		*d.formTeamCount = strconv.Itoa(existing.TeamCount)
		*d.formStatus = string(existing.Status)
		var descs []string
		for _, a := range existing.Activities {
			descs = append(descs, a.Description)
		}
		*d.formActivities = strings.Join(descs, "; ")
		*d.formMaterials = strings.Join(existing.Materials, ", ")
		*d.formEquipment = strings.Join(existing.Equipment, ", ")
		*d.formNotes = existing.Notes
		d.editingID = existing.ID
	} else {
		*d.formProject = ""
		*d.formDate = time.Now().Format(time.DateOnly)
		*d.formWeather = string(store.WeatherSunny)
		*d.formTeamCount = "0"
		*d.formStatus = string(store.DayNormal)
		*d.formActivities = ""
		*d.formMaterials = ""
		*d.formEquipment = ""
		*d.formNotes = ""
		d.editingID = ""
	}

	weatherOptions := make([]huh.Option[string], len(weathers))
	for i, w := range weathers {
		weatherOptions[i] = huh.NewOption(string(w), string(w))
	}
	statusOptions := make([]huh.Option[string], len(dayStatuses))
	for i, s := range dayStatuses {
		statusOptions[i] = huh.NewOption(string(s), string(s))
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project").Value(d.formProject),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(d.formDate),
			huh.NewSelect[string]().Title("Weather").Options(weatherOptions...).Value(d.formWeather),
			huh.NewInput().Title("Team count").Value(d.formTeamCount),
			huh.NewSelect[string]().Title("Day status").Options(statusOptions...).Value(d.formStatus),
			huh.NewInput().Title("Activities (separated by ;)").Value(d.formActivities),
			huh.NewInput().Title("Materials (comma-separated)").Value(d.formMaterials),
			huh.NewInput().Title("Equipment (comma-separated)").Value(d.formEquipment),
			huh.NewInput().Title("Notes").Value(d.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d diaryModel) updateForm(msg tea.Msg) (diaryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		if *d.formProject == "" {
			return d, d.refresh()
		}

		date, err := time.Parse(time.DateOnly, *d.formDate)
		if err != nil {
			date = time.Now().UTC()
		}
		teamCount, _ := strconv.Atoi(*d.formTeamCount)
		if teamCount < 0 {
			teamCount = 0
		}
		activities := parseActivities(*d.formActivities)
		materials := splitList(*d.formMaterials)
		equipment := splitList(*d.formEquipment)

		if d.editingID != "" {
			weather := store.Weather(*d.formWeather)
			status := store.DayStatus(*d.formStatus)
			d.stores.ActivityLogs.Update(d.editingID, store.ActivityLogPatch{
				ProjectName: d.formProject,
				Date:        &date,
				Weather:     &weather,
				TeamCount:   &teamCount,
				Status:      &status,
				Activities:  activities,
				Materials:   materials,
				Equipment:   equipment,
				Notes:       d.formNotes,
			})
		} else {
			d.stores.ActivityLogs.Create(store.CreateActivityLog{
				ProjectName: *d.formProject,
				Date:        date,
				Weather:     store.Weather(*d.formWeather),
				TeamCount:   teamCount,
				Status:      store.DayStatus(*d.formStatus),
				Activities:  activities,
				Materials:   materials,
				Equipment:   equipment,
				Notes:       *d.formNotes,
			})
		}
		return d, d.refresh()
	}

	return d, cmd
}

func parseActivities(s string) []store.Activity {
	var activities []store.Activity
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		activities = append(activities, store.Activity{Description: part})
	}
	return activities
}

func splitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}

func (d diaryModel) view() string {
	if d.formActive && d.form != nil {
		title := titleStyle.Render("New Diary Entry")
		if d.editingID != "" {
			title = titleStyle.Render("Edit Diary Entry")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View())
		return panelStyle.Width(d.width - 4).Render(content)
	}

	if d.viewing && d.cursor < len(d.logs) {
		return d.renderDetail()
	}
	return d.renderList()
}

func (d diaryModel) renderList() string {
	w := d.width - 4
	title := titleStyle.Render("Site Diary")

	if len(d.logs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No entries yet. Press n to log a work day."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-24s %-8s %-6s %s", "Date", "Project", "Weather", "Team", "Status")))

	for i, l := range d.logs {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %-24s %-8s %-6d %s",
			cursor, formatDate(l.Date), truncate(l.ProjectName, 24), l.Weather, l.TeamCount, l.Status)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  enter: detail"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d diaryModel) renderDetail() string {
	w := d.width - 4
	l := d.logs[d.cursor]

	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("%s — %s", l.ProjectName, formatDate(l.Date))))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Weather: %s   Team: %d   Status: %s", l.Weather, l.TeamCount, l.Status))
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render("  Activities"))
	if len(l.Activities) == 0 {
		rows = append(rows, mutedStyle.Render("    none"))
	}
	for _, a := range l.Activities {
		rows = append(rows, "    • "+a.Description)
	}
	if len(l.Materials) > 0 {
		rows = append(rows, "")
		rows = append(rows, subtitleStyle.Render("  Materials: ")+strings.Join(l.Materials, ", "))
	}
	if len(l.Equipment) > 0 {
		rows = append(rows, subtitleStyle.Render("  Equipment: ")+strings.Join(l.Equipment, ", "))
	}
	if l.Notes != "" {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  "+l.Notes))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  esc: back  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
