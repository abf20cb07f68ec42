package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	ContractID *string
	Statuses   []domain.PaymentStatus
	Types      []domain.PaymentType
	Limit      int
	Offset     int
}

// PaymentRepository encapsulates payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment, actor *string) error
	Update(ctx context.Context, payment *domain.Payment, actor *string) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListWithFilter(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

const paymentColumns = `id, contract_id, amount, method, type, status, period_start, period_end,
               reference, recorded_by, created_at, updated_at`

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
        INSERT INTO payments (contract_id, amount, method, type, status, period_start, period_end, reference, recorded_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			payment.ContractID,
			payment.Amount,
			payment.Method,
			payment.Type,
			payment.Status,
			payment.PeriodStart,
			payment.PeriodEnd,
			payment.Reference,
			payment.RecordedBy,
		).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
			return err
		}
		return insertAudit(ctx, tx, "payments", payment.ID, domain.AuditActionInsert, nil, map[string]any{
			"contract_id": payment.ContractID,
			"amount":      payment.Amount,
			"method":      payment.Method,
			"status":      payment.Status,
		}, actor)
	})
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var oldStatus domain.PaymentStatus
		const lockQuery = `SELECT status FROM payments WHERE id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, payment.ID).Scan(&oldStatus); err != nil {
			return err
		}

		const query = `
        UPDATE payments SET status=$1, period_start=$2, period_end=$3, reference=$4, updated_at=NOW()
        WHERE id=$5`
		cmd, err := tx.Exec(ctx, query,
			payment.Status,
			payment.PeriodStart,
			payment.PeriodEnd,
			payment.Reference,
			payment.ID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return insertAudit(ctx, tx, "payments", payment.ID, domain.AuditActionUpdate,
			map[string]any{"status": oldStatus},
			map[string]any{"status": payment.Status},
			actor)
	})
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE id=$1`, paymentColumns)
	var payment domain.Payment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.ContractID,
		&payment.Amount,
		&payment.Method,
		&payment.Type,
		&payment.Status,
		&payment.PeriodStart,
		&payment.PeriodEnd,
		&payment.Reference,
		&payment.RecordedBy,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListWithFilter(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error) {
	base := fmt.Sprintf(`SELECT %s FROM payments`, paymentColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ContractID != nil {
		args = append(args, *filter.ContractID)
		clauses = append(clauses, fmt.Sprintf("contract_id=$%d", len(args)))
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
		for i, paymentType := range filter.Types {
			args = append(args, paymentType)
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

	var result []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.ContractID,
			&payment.Amount,
			&payment.Method,
			&payment.Type,
			&payment.Status,
			&payment.PeriodStart,
			&payment.PeriodEnd,
			&payment.Reference,
			&payment.RecordedBy,
			&payment.CreatedAt,
			&payment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, payment)
	}
	return result, rows.Err()
}
