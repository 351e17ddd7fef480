package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dfarias/obralog/internal/store"
)

type dashboardModel struct {
	stores *store.Stores
	width  int
	height int

	clientCount      int
	budgetCount      int
	measurementCount int
	reminders        []store.Reminder
	monthlyNet       []monthTotal

	chart barchart.Model
}

func newDashboardModel(s *store.Stores) dashboardModel {
	return dashboardModel{
		stores: s,
		chart:  barchart.New(60, 10),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.refresh()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		measurements := d.stores.Measurements.List()
		return dashboardDataMsg{
			clientCount:      len(d.stores.Clients.List()),
			budgetCount:      len(d.stores.Budgets.List()),
			measurementCount: len(measurements),
			reminders:        upcomingReminders(d.stores.Reminders.List(), 5),
			monthlyNet:       monthlyNetTotals(measurements, 6),
		}
	}
}

// upcomingReminders returns the n pending reminders closest to their due
// date.
func upcomingReminders(reminders []store.Reminder, n int) []store.Reminder {
	pending := reminders[:0:0]
	for _, r := range reminders {
		if !r.Completed {
			pending = append(pending, r)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].DueDate.Before(pending[j].DueDate)
	})
	if len(pending) > n {
		pending = pending[:n]
	}
	return pending
}

// monthlyNetTotals sums measurement net values per reference month over
// the last n months, oldest first.
func monthlyNetTotals(measurements []store.Measurement, n int) []monthTotal {
	now := time.Now().UTC()
	totals := make([]monthTotal, 0, n)
	for i := n - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		sum := 0.0
		for _, m := range measurements {
			ref := m.ReferenceDate.UTC()
			if ref.Year() == month.Year() && ref.Month() == month.Month() {
				sum += m.NetValue
			}
		}
		totals = append(totals, monthTotal{label: month.Format("Jan"), total: sum})
	}
	return totals
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.clientCount = msg.clientCount
		d.budgetCount = msg.budgetCount
		d.measurementCount = msg.measurementCount
		d.reminders = msg.reminders
		d.monthlyNet = msg.monthlyNet
		d.buildChart()
		return d, nil
	}
	return d, nil
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	d.chart = barchart.New(chartWidth, 10)

	var bars []barchart.BarData
	for _, mt := range d.monthlyNet {
		bars = append(bars, barchart.BarData{
			Label: mt.label,
			Values: []barchart.BarValue{{
				Name:  mt.label,
				Value: mt.total,
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}
	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	w := d.width - 4

	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		d.renderCount("Clients", d.clientCount),
		" ",
		d.renderCount("Budgets", d.budgetCount),
		" ",
		d.renderCount("Measurements", d.measurementCount),
	)

	chartTitle := subtitleStyle.Render("Measured net value, last 6 months")
	chartView := d.chart.View()

	remindersView := d.renderReminders()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Dashboard"), "",
			counts, "",
			chartTitle, chartView, "",
			remindersView,
		),
	)
}

func (d dashboardModel) renderCount(label string, n int) string {
	value := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render(fmt.Sprintf("%d", n))
	return panelStyle.Padding(0, 2).Render(fmt.Sprintf("%s %s", value, mutedStyle.Render(label)))
}

func (d dashboardModel) renderReminders() string {
	var rows []string
	rows = append(rows, subtitleStyle.Render("Upcoming reminders"))
	if len(d.reminders) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing pending."))
		return strings.Join(rows, "\n")
	}
	for _, r := range d.reminders {
		marker := priorityStyle(r.Priority).Render("●")
		due := mutedStyle.Render(formatDate(r.DueDate))
		rows = append(rows, fmt.Sprintf("  %s %s  %s", marker, truncate(r.Text, 48), due))
	}
	return strings.Join(rows, "\n")
}

func priorityStyle(p store.Priority) lipgloss.Style {
	switch p {
	case store.PriorityHigh:
		return errorStyle
	case store.PriorityMedium:
		return warningStyle
	default:
		return mutedStyle
	}
}
