package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// PackageRepository encapsulates service package persistence.
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.ServicePackage, actor *string) error
	Update(ctx context.Context, pkg *domain.ServicePackage, actor *string) error
	GetByID(ctx context.Context, id string) (*domain.ServicePackage, error)
	ListActive(ctx context.Context) ([]domain.ServicePackage, error)
}

type packageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository instantiates repository.
func NewPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &packageRepository{pool: pool}
}

func (r *packageRepository) Create(ctx context.Context, pkg *domain.ServicePackage, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
        INSERT INTO service_packages (name, speed_mbps, monthly_fee, is_active)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			pkg.Name,
			pkg.SpeedMbps,
			pkg.MonthlyFee,
			pkg.IsActive,
		).Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt); err != nil {
			return err
		}
		return insertAudit(ctx, tx, "service_packages", pkg.ID, domain.AuditActionInsert, nil, map[string]any{
			"name":        pkg.Name,
			"monthly_fee": pkg.MonthlyFee,
		}, actor)
	})
}

func (r *packageRepository) Update(ctx context.Context, pkg *domain.ServicePackage, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var oldFee float64
		var oldActive bool
		const lockQuery = `SELECT monthly_fee, is_active FROM service_packages WHERE id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, pkg.ID).Scan(&oldFee, &oldActive); err != nil {
			return err
		}

		const query = `
        UPDATE service_packages SET name=$1, speed_mbps=$2, monthly_fee=$3, is_active=$4, updated_at=NOW()
        WHERE id=$5`
		cmd, err := tx.Exec(ctx, query, pkg.Name, pkg.SpeedMbps, pkg.MonthlyFee, pkg.IsActive, pkg.ID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return insertAudit(ctx, tx, "service_packages", pkg.ID, domain.AuditActionUpdate,
			map[string]any{"monthly_fee": oldFee, "is_active": oldActive},
			map[string]any{"monthly_fee": pkg.MonthlyFee, "is_active": pkg.IsActive},
			actor)
	})
}

func (r *packageRepository) GetByID(ctx context.Context, id string) (*domain.ServicePackage, error) {
	const query = `SELECT id, name, speed_mbps, monthly_fee, is_active, created_at, updated_at
                   FROM service_packages WHERE id=$1`
	var pkg domain.ServicePackage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.SpeedMbps,
		&pkg.MonthlyFee,
		&pkg.IsActive,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) ListActive(ctx context.Context) ([]domain.ServicePackage, error) {
	const query = `SELECT id, name, speed_mbps, monthly_fee, is_active, created_at, updated_at
                   FROM service_packages WHERE is_active ORDER BY monthly_fee ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServicePackage
	for rows.Next() {
		var pkg domain.ServicePackage
		if err := rows.Scan(
			&pkg.ID,
			&pkg.Name,
			&pkg.SpeedMbps,
			&pkg.MonthlyFee,
			&pkg.IsActive,
			&pkg.CreatedAt,
			&pkg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, pkg)
	}
	return result, rows.Err()
}
