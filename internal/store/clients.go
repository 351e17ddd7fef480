package store

import (
	"time"

	"github.com/google/uuid"
)

// ClientStore owns the client collection. Validation of user input is a
// UI concern; the store assigns ids and timestamps and keeps the slot in
// sync.
type ClientStore struct {
	c *collection[Client]
}

func NewClientStore(s *Store) *ClientStore {
	c := newCollection(s, slotClients, func(cl *Client) string { return cl.ID })
	c.seed = seedClients
	c.load()
	return &ClientStore{c: c}
}

// seedClients gives the UI something to show on a first run.
func seedClients() []Client {
	now := time.Now().UTC()
	return []Client{
		{
			ID:         uuid.NewString(),
			Name:       "Roberto Silva",
			Company:    "Silva Construções",
			Email:      "roberto@silvaconstrucoes.com.br",
			Phone:      "(11) 98765-4321",
			ClientType: ClientPrivate,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         uuid.NewString(),
			Name:       "Prefeitura Municipal",
			Document:   "46.395.000/0001-39",
			Email:      "obras@prefeitura.gov.br",
			ClientType: ClientGovernment,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}

type CreateClient struct {
	Name       string
	Company    string
	Document   string
	Email      string
	Phone      string
	ClientType ClientType
	Address    *Address
	Notes      string
	IsActive   bool
}

// ClientPatch carries the fields an update wants to touch; nil fields
// keep their current value.
type ClientPatch struct {
	Name       *string
	Company    *string
	Document   *string
	Email      *string
	Phone      *string
	ClientType *ClientType
	Address    *Address
	Notes      *string
	IsActive   *bool
}

// Refresh reconciles the in-memory collection from durable storage.
func (cs *ClientStore) Refresh() {
	cs.c.load()
}

func (cs *ClientStore) List() []Client {
	return cs.c.List()
}

func (cs *ClientStore) Get(id string) (*Client, error) {
	cl, ok := cs.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &cl, nil
}

// Create assigns a fresh id and timestamps and prepends the record. The
// returned client is valid even when the persistence write errors; the
// error reports the write failure only.
func (cs *ClientStore) Create(dto CreateClient) (*Client, error) {
	now := time.Now().UTC()
	cl := Client{
		ID:         uuid.NewString(),
		Name:       dto.Name,
		Company:    dto.Company,
		Document:   dto.Document,
		Email:      dto.Email,
		Phone:      dto.Phone,
		ClientType: dto.ClientType,
		Address:    dto.Address,
		Notes:      dto.Notes,
		IsActive:   dto.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := cs.c.Insert(cl)
	return &cl, err
}

func (cs *ClientStore) Update(id string, patch ClientPatch) (*Client, error) {
	cl, err := cs.c.Apply(id, func(c *Client) {
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Company != nil {
			c.Company = *patch.Company
		}
		if patch.Document != nil {
			c.Document = *patch.Document
		}
		if patch.Email != nil {
			c.Email = *patch.Email
		}
		if patch.Phone != nil {
			c.Phone = *patch.Phone
		}
		if patch.ClientType != nil {
			c.ClientType = *patch.ClientType
		}
		if patch.Address != nil {
			c.Address = patch.Address
		}
		if patch.Notes != nil {
			c.Notes = *patch.Notes
		}
		if patch.IsActive != nil {
			c.IsActive = *patch.IsActive
		}
		c.UpdatedAt = time.Now().UTC()
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return &cl, err
	}
	return &cl, nil
}

func (cs *ClientStore) Delete(id string) error {
	return cs.c.Remove(id)
}

// Replace overwrites the whole collection; used by backup restore.
func (cs *ClientStore) Replace(clients []Client) error {
	return cs.c.Replace(clients)
}
