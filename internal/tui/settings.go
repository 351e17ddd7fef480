package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dfarias/obralog/internal/store"
)

type settingsModel struct {
	stores *store.Stores
	width  int
	height int

	settings store.CompanySettings

	formActive bool
	form       *huh.Form

	formCompanyName *string
	formDocument    *string
	formEmail       *string
	formPhone       *string
	formAddress     *string
	formLegalTerms  *string
	formTheme       *string
	formCurrency    *string
}

func newSettingsModel(s *store.Stores) settingsModel {
	name, document, email, phone, address, terms, theme, currency := "", "", "", "", "", "", "", ""
	return settingsModel{
		stores:          s,
		settings:        s.Settings.Get(),
		formCompanyName: &name,
		formDocument:    &document,
		formEmail:       &email,
		formPhone:       &phone,
		formAddress:     &address,
		formLegalTerms:  &terms,
		formTheme:       &theme,
		formCurrency:    &currency,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{settings: m.stores.Settings.Get()}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.settings = msg.settings
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			return m.showForm()
		case key.Matches(msg, keys.Delete):
			m.stores.Settings.Reset()
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	s := m.stores.Settings.Get()
	*m.formCompanyName = s.CompanyName
	*m.formDocument = s.Document
	*m.formEmail = s.Email
	*m.formPhone = s.Phone
	*m.formAddress = s.AddressLine
	*m.formLegalTerms = s.LegalTerms
	*m.formTheme = string(s.Theme)
	*m.formCurrency = s.Currency

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Company name").Value(m.formCompanyName),
			huh.NewInput().Title("Document (CNPJ)").Value(m.formDocument),
			huh.NewInput().Title("Email").Value(m.formEmail),
			huh.NewInput().Title("Phone").Value(m.formPhone),
			huh.NewInput().Title("Address").Value(m.formAddress),
			huh.NewInput().Title("Legal terms").Value(m.formLegalTerms),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Dark", string(store.ThemeDark)),
					huh.NewOption("Light", string(store.ThemeLight)),
				).Value(m.formTheme),
			huh.NewInput().Title("Currency").Value(m.formCurrency),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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
		theme := store.Theme(*m.formTheme)
		m.stores.Settings.Update(store.SettingsPatch{
			CompanyName: m.formCompanyName,
			Document:    m.formDocument,
			Email:       m.formEmail,
			Phone:       m.formPhone,
			AddressLine: m.formAddress,
			LegalTerms:  m.formLegalTerms,
			Theme:       &theme,
			Currency:    m.formCurrency,
		})
		return m, m.refresh()
	}

	return m, cmd
}

func (m settingsModel) view() string {
	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Company Settings"), "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	s := m.settings

	field := func(label, value string) string {
		if value == "" {
			value = mutedStyle.Render("—")
		}
		return fmt.Sprintf("  %-14s %s", label, value)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Company Settings"))
	rows = append(rows, "")
	rows = append(rows, field("Company", s.CompanyName))
	rows = append(rows, field("Document", s.Document))
	rows = append(rows, field("Email", s.Email))
	rows = append(rows, field("Phone", s.Phone))
	rows = append(rows, field("Address", s.AddressLine))
	rows = append(rows, field("Legal terms", truncate(s.LegalTerms, w-18)))
	rows = append(rows, field("Theme", string(s.Theme)))
	rows = append(rows, field("Currency", s.Currency))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: edit  d: reset to defaults"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
