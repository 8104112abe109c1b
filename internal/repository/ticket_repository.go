package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

const ticketColumns = `id, reference, customer, customer_id, subject, message, status, priority,
               sentiment, category, suggested_response, ai_analysis, responses_sent,
               channel, assigned_to, resolved, resolved_at, client_timestamp, created_at, updated_at`

// TicketRepository encapsulates ticket persistence. Listing is always
// ordered by creation time descending, matching the dashboard.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	// UpdateFields merges the given column values into the row and stamps
	// updated_at. Keys are column names.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	// ListByStatus returns tickets with the given status, or every ticket
	// when status is nil, newest first.
	ListByStatus(ctx context.Context, status *domain.TicketStatus) ([]domain.Ticket, error)
	// FetchAll is the one-shot full-collection read used by search and
	// analytics. It ignores any active status filter.
	FetchAll(ctx context.Context) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (reference, customer, customer_id, subject, message, status, priority,
            sentiment, category, suggested_response, ai_analysis, responses_sent,
            channel, assigned_to, resolved, resolved_at, client_timestamp)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING id, created_at, updated_at`
	responses := ticket.ResponsesSent
	if responses == nil {
		responses = []domain.SentResponse{}
	}
	analysis := ticket.AIAnalysis
	if analysis == nil {
		analysis = map[string]any{}
	}
	return r.pool.QueryRow(ctx, query,
		ticket.Reference,
		ticket.Customer,
		ticket.CustomerID,
		ticket.Subject,
		ticket.Message,
		ticket.Status,
		ticket.Priority,
		ticket.Sentiment,
		ticket.Category,
		ticket.SuggestedResponse,
		analysis,
		responses,
		ticket.Channel,
		ticket.AssignedTo,
		ticket.Resolved,
		ticket.ResolvedAt,
		ticket.ClientTimestamp,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	row := r.pool.QueryRow(ctx, query, id)
	ticket, err := scanTicketRow(row)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	assignments := make([]string, 0, len(fields)+1)
	args := []any{}
	// deterministic order keeps the generated SQL stable
	for _, col := range orderedKeys(fields) {
		args = append(args, fields[col])
		assignments = append(assignments, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	assignments = append(assignments, "updated_at=NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id=$%d`,
		strings.Join(assignments, ", "), len(args))
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) ListByStatus(ctx context.Context, status *domain.TicketStatus) ([]domain.Ticket, error) {
	base := fmt.Sprintf(`SELECT %s FROM tickets`, ticketColumns)
	args := []any{}
	if status != nil {
		args = append(args, *status)
		base += " WHERE status=$1"
	}
	base += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) FetchAll(ctx context.Context) ([]domain.Ticket, error) {
	return r.ListByStatus(ctx, nil)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicketRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func scanTicketRow(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Reference,
		&ticket.Customer,
		&ticket.CustomerID,
		&ticket.Subject,
		&ticket.Message,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Sentiment,
		&ticket.Category,
		&ticket.SuggestedResponse,
		&ticket.AIAnalysis,
		&ticket.ResponsesSent,
		&ticket.Channel,
		&ticket.AssignedTo,
		&ticket.Resolved,
		&ticket.ResolvedAt,
		&ticket.ClientTimestamp,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func orderedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
