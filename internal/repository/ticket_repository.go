package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/listing"
)

// TicketRepository persists ticket aggregates. Every read returns tickets with
// client, support and comment authors populated; absent tickets are nil, nil.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByIDForClient(ctx context.Context, id, clientID string) (*domain.Ticket, error)
	GetByIDForSupport(ctx context.Context, id, supportID string) (*domain.Ticket, error)
	ListByClient(ctx context.Context, clientID string, params listing.Params) ([]*domain.Ticket, error)
	ListAll(ctx context.Context, params listing.Params) ([]*domain.Ticket, error)
}

// ticketOrderColumns whitelists sortable fields.
var ticketOrderColumns = map[string]string{
	"id":         "t.id",
	"title":      "t.title",
	"status":     "t.status",
	"created_at": "t.created_at",
	"updated_at": "t.updated_at",
}

const ticketSelect = `
        SELECT t.id, t.title, t.status, t.version, t.created_at, t.updated_at,
               c.id, c.name, c.email, c.role, c.created_at,
               s.id, s.name, s.email, s.role, s.created_at
        FROM tickets t
        JOIN clients c ON c.id = t.client_id
        LEFT JOIN supports s ON s.id = t.support_id`

type ticketRepository struct {
	pool     *pgxpool.Pool
	comments *commentStore
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool, comments: &commentStore{}}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	rec := ticket.Record()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create ticket: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO tickets (id, title, client_id, support_id, status, version, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := tx.Exec(ctx, query,
		rec.ID,
		rec.Title,
		rec.Client.ID,
		supportIDArg(rec.Support),
		rec.Status,
		rec.Version,
		rec.CreatedAt,
		rec.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	if err := r.comments.insertMissing(ctx, tx, rec.ID, rec.Comments); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create ticket: %w", err)
	}
	return r.GetByID(ctx, rec.ID)
}

// Update writes status, support and new comments in one transaction. The
// write only lands when the stored version still matches the loaded one.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	rec := ticket.Record()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update ticket: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE tickets SET support_id=$1, status=$2, version=version+1, updated_at=$3
        WHERE id=$4 AND version=$5`
	cmd, err := tx.Exec(ctx, query,
		supportIDArg(rec.Support),
		rec.Status,
		rec.UpdatedAt,
		rec.ID,
		rec.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE id=$1)`, rec.ID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check ticket: %w", err)
		}
		if !exists {
			return nil, domain.ErrTicketNotFound
		}
		return nil, domain.ErrConcurrentUpdate
	}
	if err := r.comments.insertMissing(ctx, tx, rec.ID, rec.Comments); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update ticket: %w", err)
	}
	return r.GetByID(ctx, rec.ID)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if !validIDs(id) {
		return nil, nil
	}
	return r.fetchSingle(ctx, ticketSelect+` WHERE t.id=$1`, id)
}

func (r *ticketRepository) GetByIDForClient(ctx context.Context, id, clientID string) (*domain.Ticket, error) {
	if !validIDs(id, clientID) {
		return nil, nil
	}
	return r.fetchSingle(ctx, ticketSelect+` WHERE t.id=$1 AND t.client_id=$2`, id, clientID)
}

func (r *ticketRepository) GetByIDForSupport(ctx context.Context, id, supportID string) (*domain.Ticket, error) {
	if !validIDs(id, supportID) {
		return nil, nil
	}
	return r.fetchSingle(ctx, ticketSelect+` WHERE t.id=$1 AND t.support_id=$2`, id, supportID)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Ticket, error) {
	rec, err := scanTicket(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	byTicket, err := r.comments.listByTickets(ctx, r.pool, []string{rec.ID})
	if err != nil {
		return nil, err
	}
	rec.Comments = byTicket[rec.ID]
	return domain.RehydrateTicket(rec), nil
}

func (r *ticketRepository) ListByClient(ctx context.Context, clientID string, params listing.Params) ([]*domain.Ticket, error) {
	if !validIDs(clientID) {
		return []*domain.Ticket{}, nil
	}
	return r.list(ctx, ticketSelect+` WHERE t.client_id=$1`, params, clientID)
}

func (r *ticketRepository) ListAll(ctx context.Context, params listing.Params) ([]*domain.Ticket, error) {
	return r.list(ctx, ticketSelect, params)
}

func (r *ticketRepository) list(ctx context.Context, base string, params listing.Params, args ...any) ([]*domain.Ticket, error) {
	direction := "ASC"
	if params.Descending() {
		direction = "DESC"
	}
	query := fmt.Sprintf(`%s ORDER BY %s %s, t.id %s LIMIT %d OFFSET %d`,
		base, params.Column(ticketOrderColumns), direction, direction, params.Limit(), params.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	records, err := scanTickets(rows)
	if err != nil {
		return nil, fmt.Errorf("scan tickets: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	byTicket, err := r.comments.listByTickets(ctx, r.pool, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Ticket, 0, len(records))
	for _, rec := range records {
		rec.Comments = byTicket[rec.ID]
		result = append(result, domain.RehydrateTicket(rec))
	}
	return result, nil
}

func scanTickets(rows pgx.Rows) ([]domain.TicketRecord, error) {
	defer rows.Close()
	var result []domain.TicketRecord
	for rows.Next() {
		rec, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func scanTicket(row pgx.Row) (domain.TicketRecord, error) {
	var (
		rec     domain.TicketRecord
		client  domain.User
		support nullableUser
	)
	if err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Status,
		&rec.Version,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Role,
		&client.CreatedAt,
		&support.ID,
		&support.Name,
		&support.Email,
		&support.Role,
		&support.CreatedAt,
	); err != nil {
		return domain.TicketRecord{}, err
	}
	rec.Client = &domain.Client{User: client}
	if u := support.user(); u != nil {
		rec.Support = &domain.Support{User: *u}
	}
	return rec, nil
}

// nullableUser receives the columns of an optional LEFT JOIN.
type nullableUser struct {
	ID        *string
	Name      *string
	Email     *string
	Role      *domain.UserRole
	CreatedAt *time.Time
}

func (n nullableUser) user() *domain.User {
	if n.ID == nil {
		return nil
	}
	u := &domain.User{ID: *n.ID}
	if n.Name != nil {
		u.Name = *n.Name
	}
	if n.Email != nil {
		u.Email = *n.Email
	}
	if n.Role != nil {
		u.Role = *n.Role
	}
	if n.CreatedAt != nil {
		u.CreatedAt = *n.CreatedAt
	}
	return u
}

func supportIDArg(support *domain.Support) *string {
	if support == nil || support.ID == "" {
		return nil
	}
	id := support.ID
	return &id
}
