package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dfarias/obralog/internal/repository"
	"github.com/dfarias/obralog/internal/store"
)

var clientTypes = []store.ClientType{store.ClientPrivate, store.ClientPublic, store.ClientGovernment}

type clientsModel struct {
	stores *store.Stores
	repo   *repository.ClientRepository
	width  int
	height int

	clients []store.Client
	cursor  int
	query   string

	formActive bool
	form       *huh.Form
	formType   string // "client", "edit_client", "search"

	// Form field pointers (survive value copies)
	formName       *string
	formCompany    *string
	formEmail      *string
	formPhone      *string
	formDocument   *string
	formClientType *string
	formIsActive   *bool
	formQuery      *string

	editingID string
}

func newClientsModel(s *store.Stores, repo *repository.ClientRepository) clientsModel {
	name, company, email, phone, document, ctype, query := "", "", "", "", "", string(store.ClientPrivate), ""
	active := true
	return clientsModel{
		stores:         s,
		repo:           repo,
		formName:       &name,
		formCompany:    &company,
		formEmail:      &email,
		formPhone:      &phone,
		formDocument:   &document,
		formClientType: &ctype,
		formIsActive:   &active,
		formQuery:      &query,
	}
}

func (c *clientsModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c clientsModel) refresh() tea.Cmd {
	query := c.query
	return func() tea.Msg {
		clients, _ := c.repo.Search(context.Background(), query)
		return clientsDataMsg{clients: clients, query: query}
	}
}

func (c clientsModel) update(msg tea.Msg) (clientsModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case clientsDataMsg:
		c.clients = msg.clients
		if c.cursor >= len(c.clients) {
			c.cursor = max(0, len(c.clients)-1)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.clients)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.New):
			return c.showClientForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(c.clients) > 0 {
				cl := c.clients[c.cursor]
				return c.showClientForm(&cl)
			}
		case key.Matches(msg, keys.Delete):
			if len(c.clients) > 0 {
				cl := c.clients[c.cursor]
				c.stores.Clients.Delete(cl.ID)
				return c, c.refresh()
			}
		case key.Matches(msg, keys.Search):
			return c.showSearchForm()
		case key.Matches(msg, keys.Back):
			if c.query != "" {
				c.query = ""
				return c, c.refresh()
			}
		}
	}
	return c, nil
}

func (c clientsModel) showClientForm(existing *store.Client) (clientsModel, tea.Cmd) {
	if existing != nil {
		*c.formName = existing.Name
		*c.formCompany = existing.Company
		*c.formEmail = existing.Email
		*c.formPhone = existing.Phone
		*c.formDocument = existing.Document
		*c.formClientType = string(existing.ClientType)
		*c.formIsActive = existing.IsActive
		c.formType = "edit_client"
		c.editingID = existing.ID
	} else {
		*c.formName = ""
		*c.formCompany = ""
		*c.formEmail = ""
		*c.formPhone = ""
		*c.formDocument = ""
		*c.formClientType = string(store.ClientPrivate)
		*c.formIsActive = true
		c.formType = "client"
	}

	typeOptions := make([]huh.Option[string], len(clientTypes))
	for i, t := range clientTypes {
		typeOptions[i] = huh.NewOption(string(t), string(t))
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(c.formName),
			huh.NewInput().Title("Company").Value(c.formCompany),
			huh.NewInput().Title("Email").Value(c.formEmail),
			huh.NewInput().Title("Phone").Value(c.formPhone),
			huh.NewInput().Title("Document").Value(c.formDocument),
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(c.formClientType),
			huh.NewConfirm().Title("Active").Value(c.formIsActive),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c clientsModel) showSearchForm() (clientsModel, tea.Cmd) {
	*c.formQuery = c.query
	c.formType = "search"

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Search clients").Value(c.formQuery),
		),
	).WithShowHelp(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c clientsModel) updateForm(msg tea.Msg) (clientsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		switch c.formType {
		case "client":
			if *c.formName != "" {
				c.stores.Clients.Create(store.CreateClient{
					Name:       *c.formName,
					Company:    *c.formCompany,
					Email:      *c.formEmail,
					Phone:      *c.formPhone,
					Document:   *c.formDocument,
					ClientType: store.ClientType(*c.formClientType),
					IsActive:   *c.formIsActive,
				})
			}
			return c, c.refresh()
		case "edit_client":
			if *c.formName != "" {
				ctype := store.ClientType(*c.formClientType)
				c.stores.Clients.Update(c.editingID, store.ClientPatch{
					Name:       c.formName,
					Company:    c.formCompany,
					Email:      c.formEmail,
					Phone:      c.formPhone,
					Document:   c.formDocument,
					ClientType: &ctype,
					IsActive:   c.formIsActive,
				})
			}
			return c, c.refresh()
		case "search":
			c.query = *c.formQuery
			return c, c.refresh()
		}
	}

	return c, cmd
}

func (c clientsModel) view() string {
	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Client")
		switch c.formType {
		case "edit_client":
			title = titleStyle.Render("Edit Client")
		case "search":
			title = titleStyle.Render("Search")
		}
		formView := c.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(c.width - 4).Render(content)
	}

	w := c.width - 4
	title := titleStyle.Render("Clients")
	if c.query != "" {
		title += mutedStyle.Render(fmt.Sprintf("  (search: %q)", c.query))
	}

	if len(c.clients) == 0 {
		hint := "No clients yet. Press n to create one."
		if c.query != "" {
			hint = "No clients match. Press esc to clear the search."
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render(hint))
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-24s %-20s %-26s %-12s %s", "Name", "Company", "Email", "Type", ""))
	rows = append(rows, header)

	for i, cl := range c.clients {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		active := successStyle.Render("●")
		if !cl.IsActive {
			active = mutedStyle.Render("○")
		}
		row := style.Render(fmt.Sprintf("%s%-24s %-20s %-26s %-12s", cursor,
			truncate(cl.Name, 24), truncate(cl.Company, 20), truncate(cl.Email, 26), cl.ClientType)) + " " + active
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  /: search  esc: clear search"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
