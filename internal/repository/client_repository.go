package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ClientRepository resolves client accounts. Lookups return nil, nil when absent.
type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a Postgres-backed implementation.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	if !validIDs(id) {
		return nil, nil
	}
	const query = `
        SELECT id, name, email, role, created_at
        FROM clients WHERE id=$1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil || user == nil {
		return nil, wrapLookup("client", err)
	}
	return &domain.Client{User: *user}, nil
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	const query = `
        SELECT id, name, email, role, created_at
        FROM clients WHERE email=$1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil || user == nil {
		return nil, wrapLookup("client", err)
	}
	return &domain.Client{User: *user}, nil
}

// scanUser reads one account row, reporting a missing row as nil, nil.
func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// validIDs reports whether every id parses as a UUID. Id columns are typed
// uuid, so anything else cannot match a row.
func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

func wrapLookup(resource string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("get %s: %w", resource, err)
}
