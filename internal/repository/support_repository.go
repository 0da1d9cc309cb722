package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SupportRepository resolves support agents. Lookups return nil, nil when absent.
type SupportRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Support, error)
	GetByEmail(ctx context.Context, email string) (*domain.Support, error)
}

type supportRepository struct {
	pool *pgxpool.Pool
}

// NewSupportRepository instantiates the repository.
func NewSupportRepository(pool *pgxpool.Pool) SupportRepository {
	return &supportRepository{pool: pool}
}

func (r *supportRepository) GetByID(ctx context.Context, id string) (*domain.Support, error) {
	if !validIDs(id) {
		return nil, nil
	}
	const query = `
        SELECT id, name, email, role, created_at
        FROM supports WHERE id=$1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil || user == nil {
		return nil, wrapLookup("support", err)
	}
	return &domain.Support{User: *user}, nil
}

func (r *supportRepository) GetByEmail(ctx context.Context, email string) (*domain.Support, error) {
	const query = `
        SELECT id, name, email, role, created_at
        FROM supports WHERE email=$1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil || user == nil {
		return nil, wrapLookup("support", err)
	}
	return &domain.Support{User: *user}, nil
}
