package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/listing"
)

func seededStore(t *testing.T) (*MemoryStore, *domain.Client) {
	t.Helper()
	store := NewMemoryStore()
	client := domain.Client{User: domain.User{ID: "c1", Name: "Ana", Email: "Ana@Example.com", Role: domain.UserRoleClient}}
	store.AddClient(client)
	store.AddSupport(domain.Support{User: domain.User{ID: "s1", Name: "Bruno", Email: "bruno@example.com", Role: domain.UserRoleSupport}})
	return store, &client
}

func TestMemoryAccountLookups(t *testing.T) {
	store, _ := seededStore(t)
	ctx := context.Background()

	client, err := store.Clients().GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, client)
	require.Equal(t, "c1", client.ID)

	missing, err := store.Clients().GetByID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	support, err := store.Supports().GetByID(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, domain.UserRoleSupport, support.Role)
}

func TestMemoryTicketVersioning(t *testing.T) {
	store, client := seededStore(t)
	ctx := context.Background()
	repo := store.Tickets()

	ticket, err := domain.NewTicket("vpn", client)
	require.NoError(t, err)
	created, err := repo.Create(ctx, ticket)
	require.NoError(t, err)
	require.Equal(t, 0, created.Version())

	_, err = repo.Create(ctx, ticket)
	require.Error(t, err)

	first, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)

	require.NoError(t, first.Cancel(domain.FromClient))
	updated, err := repo.Update(ctx, first)
	require.NoError(t, err)
	require.Equal(t, 1, updated.Version())

	require.NoError(t, second.Finish(domain.FromSupport))
	_, err = repo.Update(ctx, second)
	require.ErrorIs(t, err, domain.ErrConcurrentUpdate)

	stored, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusCancelled, stored.Status())

	ghost := domain.RehydrateTicket(domain.TicketRecord{ID: "ghost", Client: client, Status: domain.TicketStatusNew})
	_, err = repo.Update(ctx, ghost)
	require.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestMemoryScopedLookups(t *testing.T) {
	store, client := seededStore(t)
	ctx := context.Background()
	repo := store.Tickets()

	ticket, err := domain.NewTicket("vpn", client)
	require.NoError(t, err)
	_, err = repo.Create(ctx, ticket)
	require.NoError(t, err)

	got, err := repo.GetByIDForClient(ctx, ticket.ID(), "c1")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = repo.GetByIDForClient(ctx, ticket.ID(), "someone-else")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = repo.GetByIDForSupport(ctx, ticket.ID(), "s1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemoryListOrdersAndPaginates(t *testing.T) {
	store, client := seededStore(t)
	other := domain.Client{User: domain.User{ID: "c2", Role: domain.UserRoleClient}}
	store.AddClient(other)
	ctx := context.Background()
	repo := store.Tickets()

	for _, title := range []string{"charlie", "alpha", "bravo"} {
		ticket, err := domain.NewTicket(title, client)
		require.NoError(t, err)
		_, err = repo.Create(ctx, ticket)
		require.NoError(t, err)
	}
	foreign, err := domain.NewTicket("delta", &other)
	require.NoError(t, err)
	_, err = repo.Create(ctx, foreign)
	require.NoError(t, err)

	page, err := repo.ListByClient(ctx, "c1", listing.Parse("1", "2", "title,asc", ""))
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "alpha", page[0].Title())
	require.Equal(t, "bravo", page[1].Title())

	page, err = repo.ListByClient(ctx, "c1", listing.Parse("2", "2", "title", "asc"))
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "charlie", page[0].Title())

	all, err := repo.ListAll(ctx, listing.Parse("", "", "title", "desc"))
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "delta", all[0].Title())

	empty, err := repo.ListAll(ctx, listing.Parse("9", "10", "", ""))
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestMemoryStoresCopies(t *testing.T) {
	store, client := seededStore(t)
	ctx := context.Background()
	repo := store.Tickets()

	ticket, err := domain.NewTicket("vpn", client)
	require.NoError(t, err)
	created, err := repo.Create(ctx, ticket)
	require.NoError(t, err)

	require.NoError(t, created.Cancel(domain.FromClient))

	stored, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusNew, stored.Status())
}

func TestMemoryAddAccountRoutesByRole(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.AddAccount(domain.User{ID: "c9", Role: domain.UserRoleClient}))
	require.NoError(t, store.AddAccount(domain.User{ID: "s9", Role: domain.UserRoleSupport}))
	require.Error(t, store.AddAccount(domain.User{ID: "x9", Role: "Admin"}))

	client, err := store.Clients().GetByID(ctx, "c9")
	require.NoError(t, err)
	require.NotNil(t, client)

	support, err := store.Supports().GetByID(ctx, "s9")
	require.NoError(t, err)
	require.NotNil(t, support)

	missing, err := store.Clients().GetByID(ctx, "s9")
	require.NoError(t, err)
	require.Nil(t, missing)
}
