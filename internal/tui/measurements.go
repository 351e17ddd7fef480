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

var measurementStatuses = []store.MeasurementStatus{
	store.MeasurementDraft, store.MeasurementSubmitted, store.MeasurementApproved, store.MeasurementPaid,
}

type measurementsModel struct {
	stores *store.Stores
	width  int
	height int

	measurements []store.Measurement
	cursor       int
	viewing      bool

	formActive bool
	form       *huh.Form
	formType   string // "measurement", "edit_measurement", "item"
	editingID  string

	formProject   *string
	formNumber    *string
	formReference *string
	formStatus    *string
	formRetention *string

	// Item form fields
	itemCode  *string
	itemName  *string
	itemUnit  *string
	itemPrev  *string
	itemQty   *string
	itemPrice *string
}

func newMeasurementsModel(s *store.Stores) measurementsModel {
	project, number, reference, status, retention := "", "1", "", string(store.MeasurementDraft), "5"
	code, name, unit, prev, qty, price := "", "", "", "0", "0", "0"
	return measurementsModel{
		stores:        s,
		formProject:   &project,
		formNumber:    &number,
		formReference: &reference,
		formStatus:    &status,
		formRetention: &retention,
		itemCode:      &code,
		itemName:      &name,
		itemUnit:      &unit,
		itemPrev:      &prev,
		itemQty:       &qty,
		itemPrice:     &price,
	}
}

func (m *measurementsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m measurementsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return measurementsDataMsg{measurements: m.stores.Measurements.List()}
	}
}

func (m measurementsModel) update(msg tea.Msg) (measurementsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case measurementsDataMsg:
		m.measurements = msg.measurements
		if m.cursor >= len(m.measurements) {
			m.cursor = max(0, len(m.measurements)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			if m.viewing {
				m.viewing = false
			}
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.measurements)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(m.measurements) > 0 {
				m.viewing = true
			}
		case key.Matches(msg, keys.New):
			if m.viewing {
				return m.showItemForm()
			}
			return m.showMeasurementForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.measurements) > 0 {
				mm := m.measurements[m.cursor]
				return m.showMeasurementForm(&mm)
			}
		case key.Matches(msg, keys.Delete):
			if len(m.measurements) > 0 {
				m.stores.Measurements.Delete(m.measurements[m.cursor].ID)
				m.viewing = false
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m measurementsModel) showMeasurementForm(existing *store.Measurement) (measurementsModel, tea.Cmd) {
	if existing != nil {
		*m.formProject = existing.ProjectName
		*m.formNumber = strconv.Itoa(existing.MeasurementNumber)
		*m.formReference = existing.ReferenceDate.Format(time.DateOnly)
		*m.formStatus = string(existing.Status)
		*m.formRetention = strconv.FormatFloat(existing.RetentionPercentage, 'f', -1, 64)
		m.formType = "edit_measurement"
		m.editingID = existing.ID
	} else {
		*m.formProject = ""
		*m.formNumber = strconv.Itoa(len(m.measurements) + 1)
		*m.formReference = time.Now().Format(time.DateOnly)
		*m.formStatus = string(store.MeasurementDraft)
		*m.formRetention = "5"
		m.formType = "measurement"
		m.editingID = ""
	}

	statusOptions := make([]huh.Option[string], len(measurementStatuses))
	for i, s := range measurementStatuses {
		statusOptions[i] = huh.NewOption(string(s), string(s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project").Value(m.formProject),
			huh.NewInput().Title("Measurement number").Value(m.formNumber),
			huh.NewInput().Title("Reference date (YYYY-MM-DD)").Value(m.formReference),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(m.formStatus),
			huh.NewInput().Title("Retention %").Value(m.formRetention),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m measurementsModel) showItemForm() (measurementsModel, tea.Cmd) {
	*m.itemCode = ""
	*m.itemName = ""
	*m.itemUnit = ""
	*m.itemPrev = "0"
	*m.itemQty = "0"
	*m.itemPrice = "0"
	m.formType = "item"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Service code").Value(m.itemCode),
			huh.NewInput().Title("Service name").Value(m.itemName),
			huh.NewInput().Title("Unit").Value(m.itemUnit),
			huh.NewInput().Title("Previous quantity").Value(m.itemPrev),
			huh.NewInput().Title("Current quantity").Value(m.itemQty),
			huh.NewInput().Title("Unit price").Value(m.itemPrice),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m measurementsModel) updateForm(msg tea.Msg) (measurementsModel, tea.Cmd) {
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
		switch m.formType {
		case "measurement", "edit_measurement":
			if *m.formProject == "" {
				return m, m.refresh()
			}
			number, _ := strconv.Atoi(*m.formNumber)
			if number < 1 {
				number = 1
			}
			reference, err := time.Parse(time.DateOnly, *m.formReference)
			if err != nil {
				reference = time.Now().UTC()
			}
			retention, _ := strconv.ParseFloat(*m.formRetention, 64)
			status := store.MeasurementStatus(*m.formStatus)

			if m.editingID != "" {
				m.stores.Measurements.Update(m.editingID, store.MeasurementPatch{
					ProjectName:         m.formProject,
					MeasurementNumber:   &number,
					ReferenceDate:       &reference,
					Status:              &status,
					RetentionPercentage: &retention,
				})
			} else {
				m.stores.Measurements.Create(store.CreateMeasurement{
					ProjectName:         *m.formProject,
					MeasurementNumber:   number,
					ReferenceDate:       reference,
					Status:              status,
					RetentionPercentage: retention,
				})
			}
			return m, m.refresh()

		case "item":
			if m.cursor >= len(m.measurements) || *m.itemName == "" {
				return m, m.refresh()
			}
			mm := m.measurements[m.cursor]
			prev, _ := strconv.ParseFloat(*m.itemPrev, 64)
			qty, _ := strconv.ParseFloat(*m.itemQty, 64)
			price, _ := strconv.ParseFloat(*m.itemPrice, 64)
			items := append(mm.Items, store.MeasurementItem{
				ServiceCode:      *m.itemCode,
				ServiceName:      *m.itemName,
				Unit:             *m.itemUnit,
				PreviousQuantity: prev,
				CurrentQuantity:  qty,
				UnitPrice:        price,
			})
			m.stores.Measurements.Update(mm.ID, store.MeasurementPatch{Items: items})
			return m, m.refresh()
		}
	}

	return m, cmd
}

func (m measurementsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Measurement")
		switch m.formType {
		case "edit_measurement":
			title = titleStyle.Render("Edit Measurement")
		case "item":
			title = titleStyle.Render("Add Item")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	if m.viewing && m.cursor < len(m.measurements) {
		return m.renderDetail()
	}
	return m.renderList()
}

func (m measurementsModel) renderList() string {
	w := m.width - 4
	title := titleStyle.Render("Measurements")

	if len(m.measurements) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No measurements yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-4s %-24s %-12s %-10s %14s", "#", "Project", "Reference", "Status", "Net")))

	for i, mm := range m.measurements {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-4d %-24s %-12s %-10s %14s",
			cursor, mm.MeasurementNumber, truncate(mm.ProjectName, 24),
			formatDate(mm.ReferenceDate), mm.Status, formatMoney(mm.NetValue))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  enter: items"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m measurementsModel) renderDetail() string {
	w := m.width - 4
	mm := m.measurements[m.cursor]

	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Measurement %d — %s", mm.MeasurementNumber, mm.ProjectName)))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %s   %s", formatDate(mm.ReferenceDate), mm.Status)))
	rows = append(rows, "")

	if len(mm.Items) == 0 {
		rows = append(rows, mutedStyle.Render("  No items. Press n to add one."))
	} else {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-10s %-28s %-6s %10s %12s %12s", "Code", "Service", "Unit", "Qty", "Price", "Total")))
		for _, it := range mm.Items {
			rows = append(rows, fmt.Sprintf("  %-10s %-28s %-6s %10.2f %12s %12s",
				it.ServiceCode, truncate(it.ServiceName, 28), it.Unit,
				it.CurrentQuantity, formatMoney(it.UnitPrice), formatMoney(it.TotalValue)))
		}
	}

	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Subtotal:  %s", formatMoney(mm.Subtotal)))
	rows = append(rows, fmt.Sprintf("  Retention: %s (%.1f%%)", formatMoney(mm.RetentionAmount), mm.RetentionPercentage))
	rows = append(rows, successStyle.Render(fmt.Sprintf("  Net:       %s", formatMoney(mm.NetValue))))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: add item  e: edit  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
