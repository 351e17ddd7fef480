package tui

import (
	"fmt"
	"time"

	"github.com/dfarias/obralog/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewClients
	viewDiary
	viewMeasurements
	viewReminders
	viewSettings
)

var viewNames = []string{"Dashboard", "Clients", "Diary", "Measurements", "Reminders", "Settings"}

const viewCount = 6

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type clientsDataMsg struct {
	clients []store.Client
	query   string
}

type diaryDataMsg struct {
	logs []store.ActivityLog
}

type measurementsDataMsg struct {
	measurements []store.Measurement
}

type remindersDataMsg struct {
	reminders []store.Reminder
}

type settingsDataMsg struct {
	settings store.CompanySettings
}

type dashboardDataMsg struct {
	clientCount      int
	budgetCount      int
	measurementCount int
	reminders        []store.Reminder
	monthlyNet       []monthTotal
}

type backupDoneMsg struct {
	path string
}

type restoreDoneMsg struct {
	path string
}

// --- Helpers ---

type monthTotal struct {
	label string
	total float64
}

func formatMoney(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func formatDate(t time.Time) string {
	return t.Local().Format("02/01/2006")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
