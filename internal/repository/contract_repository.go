package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// ContractFilter narrows contract listings.
type ContractFilter struct {
	CustomerID *string
	Statuses   []domain.ContractStatus
	Limit      int
	Offset     int
}

// ContractRepository encapsulates service contract persistence.
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.ServiceContract, actor *string) error
	Update(ctx context.Context, contract *domain.ServiceContract, actor *string) error
	GetByID(ctx context.Context, id string) (*domain.ServiceContract, error)
	ListWithFilter(ctx context.Context, filter ContractFilter) ([]domain.ServiceContract, error)
}

type contractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository instantiates repository.
func NewContractRepository(pool *pgxpool.Pool) ContractRepository {
	return &contractRepository{pool: pool}
}

const contractColumns = `id, customer_id, package_id, status, monthly_fee, payment_day,
               next_payment_date, installed_at, created_at, updated_at`

func (r *contractRepository) Create(ctx context.Context, contract *domain.ServiceContract, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
        INSERT INTO service_contracts (customer_id, package_id, status, monthly_fee, payment_day, next_payment_date, installed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			contract.CustomerID,
			contract.PackageID,
			contract.Status,
			contract.MonthlyFee,
			contract.PaymentDay,
			contract.NextPaymentDate,
			contract.InstalledAt,
		).Scan(&contract.ID, &contract.CreatedAt, &contract.UpdatedAt); err != nil {
			return err
		}
		return insertAudit(ctx, tx, "service_contracts", contract.ID, domain.AuditActionInsert, nil, map[string]any{
			"customer_id": contract.CustomerID,
			"package_id":  contract.PackageID,
			"status":      contract.Status,
			"monthly_fee": contract.MonthlyFee,
		}, actor)
	})
}

func (r *contractRepository) Update(ctx context.Context, contract *domain.ServiceContract, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var oldStatus domain.ContractStatus
		var oldNextPayment any
		const lockQuery = `SELECT status, next_payment_date FROM service_contracts WHERE id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, contract.ID).Scan(&oldStatus, &oldNextPayment); err != nil {
			return err
		}

		const query = `
        UPDATE service_contracts SET status=$1, monthly_fee=$2, payment_day=$3,
            next_payment_date=$4, installed_at=$5, updated_at=NOW()
        WHERE id=$6`
		cmd, err := tx.Exec(ctx, query,
			contract.Status,
			contract.MonthlyFee,
			contract.PaymentDay,
			contract.NextPaymentDate,
			contract.InstalledAt,
			contract.ID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return insertAudit(ctx, tx, "service_contracts", contract.ID, domain.AuditActionUpdate,
			map[string]any{"status": oldStatus, "next_payment_date": oldNextPayment},
			map[string]any{"status": contract.Status, "next_payment_date": contract.NextPaymentDate},
			actor)
	})
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.ServiceContract, error) {
	query := fmt.Sprintf(`SELECT %s FROM service_contracts WHERE id=$1`, contractColumns)
	var contract domain.ServiceContract
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&contract.ID,
		&contract.CustomerID,
		&contract.PackageID,
		&contract.Status,
		&contract.MonthlyFee,
		&contract.PaymentDay,
		&contract.NextPaymentDate,
		&contract.InstalledAt,
		&contract.CreatedAt,
		&contract.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) ListWithFilter(ctx context.Context, filter ContractFilter) ([]domain.ServiceContract, error) {
	base := fmt.Sprintf(`SELECT %s FROM service_contracts`, contractColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
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

	var result []domain.ServiceContract
	for rows.Next() {
		var contract domain.ServiceContract
		if err := rows.Scan(
			&contract.ID,
			&contract.CustomerID,
			&contract.PackageID,
			&contract.Status,
			&contract.MonthlyFee,
			&contract.PaymentDay,
			&contract.NextPaymentDate,
			&contract.InstalledAt,
			&contract.CreatedAt,
			&contract.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contract)
	}
	return result, rows.Err()
}
