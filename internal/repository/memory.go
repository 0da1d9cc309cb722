package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/listing"
)

// MemoryStore is an in-memory backend for all three repositories. It keeps
// copies of persisted records so aggregates handed to callers stay private.
type MemoryStore struct {
	mu       sync.RWMutex
	clients  map[string]domain.Client
	supports map[string]domain.Support
	tickets  map[string]domain.TicketRecord
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients:  make(map[string]domain.Client),
		supports: make(map[string]domain.Support),
		tickets:  make(map[string]domain.TicketRecord),
	}
}

// AddClient registers a client account.
func (s *MemoryStore) AddClient(client domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client.ID] = client
}

// AddSupport registers a support account.
func (s *MemoryStore) AddSupport(support domain.Support) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supports[support.ID] = support
}

// AddAccount registers user as a client or a support agent according to
// its role.
func (s *MemoryStore) AddAccount(user domain.User) error {
	switch user.Role {
	case domain.UserRoleClient:
		s.AddClient(domain.Client{User: user})
	case domain.UserRoleSupport:
		s.AddSupport(domain.Support{User: user})
	default:
		return fmt.Errorf("account %s: unknown role %q", user.ID, user.Role)
	}
	return nil
}

// Clients exposes the store as a ClientRepository.
func (s *MemoryStore) Clients() ClientRepository { return memoryClients{s} }

// Supports exposes the store as a SupportRepository.
func (s *MemoryStore) Supports() SupportRepository { return memorySupports{s} }

// Tickets exposes the store as a TicketRepository.
func (s *MemoryStore) Tickets() TicketRepository { return memoryTickets{s} }

type memoryClients struct{ s *MemoryStore }

func (m memoryClients) GetByID(_ context.Context, id string) (*domain.Client, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	client, ok := m.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &client, nil
}

func (m memoryClients) GetByEmail(_ context.Context, email string) (*domain.Client, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, client := range m.s.clients {
		if strings.EqualFold(client.Email, email) {
			c := client
			return &c, nil
		}
	}
	return nil, nil
}

type memorySupports struct{ s *MemoryStore }

func (m memorySupports) GetByID(_ context.Context, id string) (*domain.Support, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	support, ok := m.s.supports[id]
	if !ok {
		return nil, nil
	}
	return &support, nil
}

func (m memorySupports) GetByEmail(_ context.Context, email string) (*domain.Support, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, support := range m.s.supports {
		if strings.EqualFold(support.Email, email) {
			sp := support
			return &sp, nil
		}
	}
	return nil, nil
}

type memoryTickets struct{ s *MemoryStore }

func (m memoryTickets) Create(_ context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	rec := ticket.Record()
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, exists := m.s.tickets[rec.ID]; exists {
		return nil, fmt.Errorf("insert ticket: duplicate id %s", rec.ID)
	}
	m.s.tickets[rec.ID] = cloneRecord(rec)
	return domain.RehydrateTicket(cloneRecord(rec)), nil
}

func (m memoryTickets) Update(_ context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	rec := ticket.Record()
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, exists := m.s.tickets[rec.ID]
	if !exists {
		return nil, domain.ErrTicketNotFound
	}
	if stored.Version != rec.Version {
		return nil, domain.ErrConcurrentUpdate
	}
	rec.Version++
	m.s.tickets[rec.ID] = cloneRecord(rec)
	return domain.RehydrateTicket(cloneRecord(rec)), nil
}

func (m memoryTickets) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	return m.find(id, func(domain.TicketRecord) bool { return true })
}

func (m memoryTickets) GetByIDForClient(_ context.Context, id, clientID string) (*domain.Ticket, error) {
	return m.find(id, func(rec domain.TicketRecord) bool {
		return rec.Client != nil && rec.Client.ID == clientID
	})
}

func (m memoryTickets) GetByIDForSupport(_ context.Context, id, supportID string) (*domain.Ticket, error) {
	return m.find(id, func(rec domain.TicketRecord) bool {
		return rec.Support != nil && rec.Support.ID == supportID
	})
}

func (m memoryTickets) find(id string, match func(domain.TicketRecord) bool) (*domain.Ticket, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	rec, ok := m.s.tickets[id]
	if !ok || !match(rec) {
		return nil, nil
	}
	return domain.RehydrateTicket(cloneRecord(rec)), nil
}

func (m memoryTickets) ListByClient(_ context.Context, clientID string, params listing.Params) ([]*domain.Ticket, error) {
	return m.list(params, func(rec domain.TicketRecord) bool {
		return rec.Client != nil && rec.Client.ID == clientID
	}), nil
}

func (m memoryTickets) ListAll(_ context.Context, params listing.Params) ([]*domain.Ticket, error) {
	return m.list(params, func(domain.TicketRecord) bool { return true }), nil
}

func (m memoryTickets) list(params listing.Params, match func(domain.TicketRecord) bool) []*domain.Ticket {
	m.s.mu.RLock()
	matched := make([]domain.TicketRecord, 0, len(m.s.tickets))
	for _, rec := range m.s.tickets {
		if match(rec) {
			matched = append(matched, cloneRecord(rec))
		}
	}
	m.s.mu.RUnlock()

	less := recordLess(params.Column(memoryOrderFields))
	desc := params.Descending()
	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	start := params.Offset()
	if start >= len(matched) {
		return []*domain.Ticket{}
	}
	end := start + params.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	result := make([]*domain.Ticket, 0, end-start)
	for _, rec := range matched[start:end] {
		result = append(result, domain.RehydrateTicket(rec))
	}
	return result
}

var memoryOrderFields = map[string]string{
	"id":         "id",
	"title":      "title",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// recordLess orders by field, breaking ties by id.
func recordLess(field string) func(a, b domain.TicketRecord) bool {
	return func(a, b domain.TicketRecord) bool {
		switch field {
		case "title":
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case "status":
			if a.Status != b.Status {
				return a.Status < b.Status
			}
		case "created_at":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		case "updated_at":
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		}
		return a.ID < b.ID
	}
}

func cloneRecord(rec domain.TicketRecord) domain.TicketRecord {
	out := rec
	if rec.Client != nil {
		c := *rec.Client
		out.Client = &c
	}
	if rec.Support != nil {
		sp := *rec.Support
		out.Support = &sp
	}
	out.Comments = make([]domain.CommentRecord, len(rec.Comments))
	copy(out.Comments, rec.Comments)
	return out
}
