package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// commentStore reads and appends the comment thread of ticket aggregates.
// Comments are only written through the owning ticket's transaction.
type commentStore struct{}

// insertMissing appends comments not yet stored. Comment ids are assigned at
// construction, so already persisted rows are skipped by primary key.
func (s *commentStore) insertMissing(ctx context.Context, q querier, ticketID string, comments []domain.CommentRecord) error {
	const query = `
        INSERT INTO comments (id, ticket_id, text, is_client_comment, client_id, support_id, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (id) DO NOTHING`
	for _, c := range comments {
		var clientID, supportID *string
		if c.Client != nil {
			clientID = &c.Client.ID
		}
		if c.Support != nil {
			supportID = &c.Support.ID
		}
		if _, err := q.Exec(ctx, query,
			c.ID,
			ticketID,
			c.Text,
			c.IsClientComment,
			clientID,
			supportID,
			c.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert comment %s: %w", c.ID, err)
		}
	}
	return nil
}

// listByTickets loads comments for the given tickets keyed by ticket id, each
// thread in insertion order.
func (s *commentStore) listByTickets(ctx context.Context, q querier, ticketIDs []string) (map[string][]domain.CommentRecord, error) {
	result := make(map[string][]domain.CommentRecord, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return result, nil
	}

	const query = `
        SELECT cm.ticket_id, cm.id, cm.text, cm.is_client_comment, cm.created_at,
               c.id, c.name, c.email, c.role, c.created_at,
               s.id, s.name, s.email, s.role, s.created_at
        FROM comments cm
        LEFT JOIN clients c ON c.id = cm.client_id
        LEFT JOIN supports s ON s.id = cm.support_id
        WHERE cm.ticket_id = ANY($1::uuid[])
        ORDER BY cm.created_at ASC, cm.id ASC`
	rows, err := q.Query(ctx, query, ticketIDs)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ticketID string
			rec      domain.CommentRecord
			client   nullableUser
			support  nullableUser
		)
		if err := rows.Scan(
			&ticketID,
			&rec.ID,
			&rec.Text,
			&rec.IsClientComment,
			&rec.CreatedAt,
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
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if u := client.user(); u != nil {
			rec.Client = &domain.Client{User: *u}
		}
		if u := support.user(); u != nil {
			rec.Support = &domain.Support{User: *u}
		}
		result[ticketID] = append(result[ticketID], rec)
	}
	return result, rows.Err()
}
