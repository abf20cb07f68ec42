package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// WorkOrderFilter narrows work order listings.
type WorkOrderFilter struct {
	ContractID *string
	AssignedTo *string
	Statuses   []domain.WorkOrderStatus
	Types      []domain.WorkOrderType
	Limit      int
	Offset     int
}

// WorkOrderRepository encapsulates work order persistence.
type WorkOrderRepository interface {
	Create(ctx context.Context, order *domain.WorkOrder, actor *string) error
	Update(ctx context.Context, order *domain.WorkOrder, actor *string) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	ListByContract(ctx context.Context, contractID string) ([]domain.WorkOrder, error)
	ListWithFilter(ctx context.Context, filter WorkOrderFilter) ([]domain.WorkOrder, error)
}

type workOrderRepository struct {
	pool *pgxpool.Pool
}

// NewWorkOrderRepository instantiates repository.
func NewWorkOrderRepository(pool *pgxpool.Pool) WorkOrderRepository {
	return &workOrderRepository{pool: pool}
}

const workOrderColumns = `id, contract_id, type, status, notes, assigned_to,
               scheduled_date, completed_date, created_at, updated_at`

func (r *workOrderRepository) Create(ctx context.Context, order *domain.WorkOrder, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
        INSERT INTO work_orders (contract_id, type, status, notes, assigned_to, scheduled_date, completed_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			order.ContractID,
			order.Type,
			order.Status,
			order.Notes,
			order.AssignedTo,
			order.ScheduledDate,
			order.CompletedDate,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}
		return insertAudit(ctx, tx, "work_orders", order.ID, domain.AuditActionInsert, nil, map[string]any{
			"contract_id": order.ContractID,
			"type":        order.Type,
			"status":      order.Status,
		}, actor)
	})
}

func (r *workOrderRepository) Update(ctx context.Context, order *domain.WorkOrder, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var oldStatus domain.WorkOrderStatus
		var oldAssigned *string
		const lockQuery = `SELECT status, assigned_to FROM work_orders WHERE id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, order.ID).Scan(&oldStatus, &oldAssigned); err != nil {
			return err
		}

		const query = `
        UPDATE work_orders SET status=$1, notes=$2, assigned_to=$3, scheduled_date=$4,
            completed_date=$5, updated_at=NOW()
        WHERE id=$6`
		cmd, err := tx.Exec(ctx, query,
			order.Status,
			order.Notes,
			order.AssignedTo,
			order.ScheduledDate,
			order.CompletedDate,
			order.ID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return insertAudit(ctx, tx, "work_orders", order.ID, domain.AuditActionUpdate,
			map[string]any{"status": oldStatus, "assigned_to": oldAssigned},
			map[string]any{"status": order.Status, "assigned_to": order.AssignedTo},
			actor)
	})
}

func (r *workOrderRepository) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_orders WHERE id=$1`, workOrderColumns)
	var order domain.WorkOrder
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.ContractID,
		&order.Type,
		&order.Status,
		&order.Notes,
		&order.AssignedTo,
		&order.ScheduledDate,
		&order.CompletedDate,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *workOrderRepository) ListByContract(ctx context.Context, contractID string) ([]domain.WorkOrder, error) {
	return r.ListWithFilter(ctx, WorkOrderFilter{ContractID: &contractID, Limit: 100})
}

func (r *workOrderRepository) ListWithFilter(ctx context.Context, filter WorkOrderFilter) ([]domain.WorkOrder, error) {
	base := fmt.Sprintf(`SELECT %s FROM work_orders`, workOrderColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ContractID != nil {
		args = append(args, *filter.ContractID)
		clauses = append(clauses, fmt.Sprintf("contract_id=$%d", len(args)))
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
	if len(filter.Types) > 0 {
		placeholders := make([]string, len(filter.Types))
		for i, orderType := range filter.Types {
			args = append(args, orderType)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("type IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WorkOrder
	for rows.Next() {
		var order domain.WorkOrder
		if err := rows.Scan(
			&order.ID,
			&order.ContractID,
			&order.Type,
			&order.Status,
			&order.Notes,
			&order.AssignedTo,
			&order.ScheduledDate,
			&order.CompletedDate,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}
