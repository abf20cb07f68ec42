package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// CustomerRepository encapsulates customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer, actor *string) error
	Update(ctx context.Context, customer *domain.Customer, actor *string) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, search *string, limit, offset int) ([]domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
        INSERT INTO customers (name, phone, email, address, zone)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			customer.Name,
			customer.Phone,
			customer.Email,
			customer.Address,
			customer.Zone,
		).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return err
		}
		return insertAudit(ctx, tx, "customers", customer.ID, domain.AuditActionInsert, nil, map[string]any{
			"name": customer.Name,
			"zone": customer.Zone,
		}, actor)
	})
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var oldName, oldPhone, oldAddress string
		const lockQuery = `SELECT name, phone, address FROM customers WHERE id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, customer.ID).Scan(&oldName, &oldPhone, &oldAddress); err != nil {
			return err
		}

		const query = `
        UPDATE customers SET name=$1, phone=$2, email=$3, address=$4, zone=$5, updated_at=NOW()
        WHERE id=$6`
		cmd, err := tx.Exec(ctx, query,
			customer.Name,
			customer.Phone,
			customer.Email,
			customer.Address,
			customer.Zone,
			customer.ID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return insertAudit(ctx, tx, "customers", customer.ID, domain.AuditActionUpdate,
			map[string]any{"name": oldName, "phone": oldPhone, "address": oldAddress},
			map[string]any{"name": customer.Name, "phone": customer.Phone, "address": customer.Address},
			actor)
	})
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const query = `SELECT id, name, phone, email, address, zone, created_at, updated_at
                   FROM customers WHERE id=$1`
	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.Email,
		&customer.Address,
		&customer.Zone,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, search *string, limit, offset int) ([]domain.Customer, error) {
	base := `SELECT id, name, phone, email, address, zone, created_at, updated_at FROM customers`
	clauses := []string{"1=1"}
	args := []any{}

	if search != nil && strings.TrimSpace(*search) != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(*search)) + "%"
		args = append(args, term)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR phone LIKE %s)", placeholder, placeholder))
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Phone,
			&customer.Email,
			&customer.Address,
			&customer.Zone,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}
