// Package repository puts query façades in front of the entity stores so
// call sites never touch storage mechanics. The context-taking signatures
// are a forward-compatibility contract: nothing blocks today, but a
// remote backend could be swapped in without changing callers.
package repository

import (
	"context"
	"strings"

	"github.com/dfarias/obralog/internal/store"
)

type ClientRepository struct {
	clients *store.ClientStore
}

func NewClientRepository(clients *store.ClientStore) *ClientRepository {
	return &ClientRepository{clients: clients}
}

func (r *ClientRepository) FindByID(_ context.Context, id string) (*store.Client, error) {
	return r.clients.Get(id)
}

func (r *ClientRepository) FindAll(_ context.Context) ([]store.Client, error) {
	return r.clients.List(), nil
}

// Search matches the query as a case-insensitive substring of a fixed
// set of text fields. Empty optional fields never match.
func (r *ClientRepository) Search(_ context.Context, query string) ([]store.Client, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return r.clients.List(), nil
	}

	var matched []store.Client
	for _, c := range r.clients.List() {
		if clientMatches(&c, query) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func clientMatches(c *store.Client, query string) bool {
	fields := []string{c.Name, c.Company, c.Email, c.Phone, c.Document}
	if c.Address != nil {
		fields = append(fields, c.Address.City)
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
