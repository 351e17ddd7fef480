package repository

import (
	"context"
	"testing"

	"github.com/dfarias/obralog/internal/store"
)

func newTestRepo(t *testing.T) (*ClientRepository, *store.ClientStore) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	cs := store.NewClientStore(s)
	return NewClientRepository(cs), cs
}

func TestSearchByName(t *testing.T) {
	repo, _ := newTestRepo(t)

	// The seed data carries "Roberto Silva" / "Silva Construções".
	results, err := repo.Search(context.Background(), "silva")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].Name != "Roberto Silva" {
		t.Fatalf("unexpected match: %q", results[0].Name)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	repo, _ := newTestRepo(t)

	lower, _ := repo.Search(context.Background(), "prefeitura")
	upper, _ := repo.Search(context.Background(), "PREFEITURA")
	if len(lower) != 1 || len(upper) != 1 {
		t.Fatalf("case should not matter: %d vs %d", len(lower), len(upper))
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	repo, cs := newTestRepo(t)

	results, err := repo.Search(context.Background(), "   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(cs.List()) {
		t.Fatalf("blank query should return everything, got %d", len(results))
	}
}

func TestSearchNoMatch(t *testing.T) {
	repo, _ := newTestRepo(t)

	results, err := repo.Search(context.Background(), "zzz-no-such-client")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no matches, got %d", len(results))
	}
}

func TestSearchByDocumentAndCity(t *testing.T) {
	repo, cs := newTestRepo(t)

	cs.Create(store.CreateClient{
		Name:       "Condomínio Jardins",
		Document:   "12.345.678/0001-90",
		ClientType: store.ClientPrivate,
		Address:    &store.Address{City: "Campinas", State: "SP"},
		IsActive:   true,
	})

	byDoc, _ := repo.Search(context.Background(), "12.345")
	if len(byDoc) != 1 {
		t.Fatalf("expected match on document, got %d", len(byDoc))
	}
	byCity, _ := repo.Search(context.Background(), "campinas")
	if len(byCity) != 1 {
		t.Fatalf("expected match on city, got %d", len(byCity))
	}
}

func TestFindByID(t *testing.T) {
	repo, cs := newTestRepo(t)
	cl, _ := cs.Create(store.CreateClient{Name: "Direto", ClientType: store.ClientPrivate})

	got, err := repo.FindByID(context.Background(), cl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Direto" {
		t.Fatalf("unexpected client: %+v", got)
	}

	if _, err := repo.FindByID(context.Background(), "missing"); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
