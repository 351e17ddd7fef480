package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dfarias/obralog/internal/backup"
	"github.com/dfarias/obralog/internal/export"
	"github.com/dfarias/obralog/internal/repository"
	"github.com/dfarias/obralog/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	stores      *store.Stores
	clientRepo  *repository.ClientRepository
	coordinator *backup.Coordinator

	width  int
	height int

	activeView    viewState
	showHelp      bool
	backupPicking bool
	backupCursor  int

	dashboard    dashboardModel
	clients      clientsModel
	diary        diaryModel
	measurements measurementsModel
	reminders    remindersModel
	settings     settingsModel

	help   help.Model
	status string
}

func NewApp(stores *store.Stores, coordinator *backup.Coordinator) App {
	h := help.New()
	h.ShowAll = false

	repo := repository.NewClientRepository(stores.Clients)

	return App{
		stores:       stores,
		clientRepo:   repo,
		coordinator:  coordinator,
		activeView:   viewDashboard,
		dashboard:    newDashboardModel(stores),
		clients:      newClientsModel(stores, repo),
		diary:        newDiaryModel(stores),
		measurements: newMeasurementsModel(stores),
		reminders:    newRemindersModel(stores),
		settings:     newSettingsModel(stores),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return a.dashboard.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.clients.setSize(a.width, contentHeight)
		a.diary.setSize(a.width, contentHeight)
		a.measurements.setSize(a.width, contentHeight)
		a.reminders.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Backup picker overlay
		if a.backupPicking {
			return a.updateBackupPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Backup):
			a.backupPicking = true
			a.backupCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewClients
			return a, a.clients.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewDiary
			return a, a.diary.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewMeasurements
			return a, a.measurements.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewReminders
			return a, a.reminders.refresh()
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewCount
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case backupDoneMsg:
		a.status = "Backup written to " + msg.path
		a.backupPicking = false
		return a, nil

	case restoreDoneMsg:
		a.status = "Backup restored from " + msg.path
		a.backupPicking = false
		return a, a.refreshCurrentView()
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewClients:
		a.clients, cmd = a.clients.update(msg)
	case viewDiary:
		a.diary, cmd = a.diary.update(msg)
	case viewMeasurements:
		a.measurements, cmd = a.measurements.update(msg)
	case viewReminders:
		a.reminders, cmd = a.reminders.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewClients:
		return a.clients.formActive
	case viewDiary:
		return a.diary.formActive
	case viewMeasurements:
		return a.measurements.formActive
	case viewReminders:
		return a.reminders.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.refresh()
	case viewClients:
		return a.clients.refresh()
	case viewDiary:
		return a.diary.refresh()
	case viewMeasurements:
		return a.measurements.refresh()
	case viewReminders:
		return a.reminders.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewClients:
		content = a.clients.view()
	case viewDiary:
		content = a.diary.view()
	case viewMeasurements:
		content = a.measurements.view()
	case viewReminders:
		content = a.reminders.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.backupPicking {
		content = a.renderBackupPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("obralog")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	right := status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var backupChoices = []string{"Export backup", "Import latest backup", "Export measurements CSV"}

func (a App) renderBackupPicker() string {
	title := titleStyle.Render("Backup")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range backupChoices {
		cursor := "  "
		style := normalItemStyle
		if i == a.backupCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: run  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateBackupPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.backupCursor > 0 {
			a.backupCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.backupCursor < len(backupChoices)-1 {
			a.backupCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.backupPicking = false
		return a, a.doBackup(a.backupCursor)
	case key.Matches(msg, keys.Back):
		a.backupPicking = false
	}
	return a, nil
}

func (a App) doBackup(choice int) tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		switch choice {
		case 0:
			doc, err := a.coordinator.Create()
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Backup error: %v", err), isError: true}
			}
			path := filepath.Join(home, fmt.Sprintf("obralog-backup-%s.json", dateStr))
			if err := export.WriteBackup(doc, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Backup error: %v", err), isError: true}
			}
			return backupDoneMsg{path: path}

		case 1:
			path, err := latestBackupFile(home)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
			}
			doc, err := export.ReadBackup(path)
			if err != nil {
				if errors.Is(err, backup.ErrInvalidDocument) {
					return statusMsg{text: "Invalid backup file", isError: true}
				}
				return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
			}
			if err := a.coordinator.Restore(doc); err != nil {
				return statusMsg{text: "Invalid backup file", isError: true}
			}
			return restoreDoneMsg{path: path}

		default:
			path := filepath.Join(home, fmt.Sprintf("obralog-measurements-%s.csv", dateStr))
			if err := export.MeasurementsToCSV(a.stores.Measurements.List(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			return backupDoneMsg{path: path}
		}
	}
}

func latestBackupFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "obralog-backup-*.json"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no backup files in %s", dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
