package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// TicketFilter captures back-office search parameters.
type TicketFilter struct {
	Type        *domain.TicketType
	Zone        *string
	AssignedTo  *string
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket, actor *string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByFolio(ctx context.Context, folio string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, folio, type, customer_name, phone, email, address, zone,
               description, status, priority, assigned_to, created_at, updated_at, closed_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
        INSERT INTO tickets (folio, type, customer_name, phone, email, address, zone, description, status, priority, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			ticket.Folio,
			ticket.Type,
			ticket.CustomerName,
			ticket.Phone,
			ticket.Email,
			ticket.Address,
			ticket.Zone,
			ticket.Description,
			ticket.Status,
			ticket.Priority,
			ticket.AssignedTo,
		).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
			return err
		}
		return insertAudit(ctx, tx, "tickets", ticket.ID, domain.AuditActionInsert, nil, map[string]any{
			"folio":    ticket.Folio,
			"type":     ticket.Type,
			"status":   ticket.Status,
			"priority": ticket.Priority,
		}, nil)
	})
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var oldStatus domain.TicketStatus
		var oldPriority domain.TicketPriority
		var oldAssigned *string
		const lockQuery = `SELECT status, priority, assigned_to FROM tickets WHERE id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, ticket.ID).Scan(&oldStatus, &oldPriority, &oldAssigned); err != nil {
			return err
		}

		const query = `
        UPDATE tickets SET customer_name=$1, phone=$2, email=$3, address=$4, zone=$5,
            description=$6, status=$7, priority=$8, assigned_to=$9, closed_at=$10, updated_at=NOW()
        WHERE id=$11`
		cmd, err := tx.Exec(ctx, query,
			ticket.CustomerName,
			ticket.Phone,
			ticket.Email,
			ticket.Address,
			ticket.Zone,
			ticket.Description,
			ticket.Status,
			ticket.Priority,
			ticket.AssignedTo,
			ticket.ClosedAt,
			ticket.ID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return insertAudit(ctx, tx, "tickets", ticket.ID, domain.AuditActionUpdate,
			map[string]any{"status": oldStatus, "priority": oldPriority, "assigned_to": oldAssigned},
			map[string]any{"status": ticket.Status, "priority": ticket.Priority, "assigned_to": ticket.AssignedTo},
			actor)
	})
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByFolio(ctx context.Context, folio string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE folio=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, folio)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.Folio,
		&ticket.Type,
		&ticket.CustomerName,
		&ticket.Phone,
		&ticket.Email,
		&ticket.Address,
		&ticket.Zone,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.AssignedTo,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := fmt.Sprintf(`SELECT %s FROM tickets`, ticketColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.Zone != nil {
		args = append(args, *filter.Zone)
		clauses = append(clauses, fmt.Sprintf("zone=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(customer_name) LIKE %s OR LOWER(folio) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Folio,
			&ticket.Type,
			&ticket.CustomerName,
			&ticket.Phone,
			&ticket.Email,
			&ticket.Address,
			&ticket.Zone,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.AssignedTo,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
