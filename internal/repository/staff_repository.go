package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// StaffRepository encapsulates staff member persistence.
type StaffRepository interface {
	Create(ctx context.Context, member *domain.StaffMember, actor *string) error
	Update(ctx context.Context, member *domain.StaffMember, actor *string) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
	List(ctx context.Context, role *domain.StaffRole, zone *string) ([]domain.StaffMember, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, name, email, password_hash, role, zone, active, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, member *domain.StaffMember, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
        INSERT INTO staff_members (name, email, password_hash, role, zone, active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query,
			member.Name,
			member.Email,
			member.PasswordHash,
			member.Role,
			member.Zone,
			member.Active,
		).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt); err != nil {
			return err
		}
		return insertAudit(ctx, tx, "staff_members", member.ID, domain.AuditActionInsert, nil, map[string]any{
			"email": member.Email,
			"role":  member.Role,
			"zone":  member.Zone,
		}, actor)
	})
}

func (r *staffRepository) Update(ctx context.Context, member *domain.StaffMember, actor *string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var oldRole domain.StaffRole
		var oldZone *string
		var oldActive bool
		const lockQuery = `SELECT role, zone, active FROM staff_members WHERE id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, member.ID).Scan(&oldRole, &oldZone, &oldActive); err != nil {
			return err
		}

		const query = `
        UPDATE staff_members SET name=$1, email=$2, password_hash=$3, role=$4, zone=$5, active=$6, updated_at=NOW()
        WHERE id=$7`
		cmd, err := tx.Exec(ctx, query,
			member.Name,
			member.Email,
			member.PasswordHash,
			member.Role,
			member.Zone,
			member.Active,
			member.ID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return insertAudit(ctx, tx, "staff_members", member.ID, domain.AuditActionUpdate,
			map[string]any{"role": oldRole, "zone": oldZone, "active": oldActive},
			map[string]any{"role": member.Role, "zone": member.Zone, "active": member.Active},
			actor)
	})
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	return r.getByColumn(ctx, "id", id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	return r.getByColumn(ctx, "email", email)
}

func (r *staffRepository) getByColumn(ctx context.Context, column, value string) (*domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE ` + column + `=$1`
	var member domain.StaffMember
	if err := r.pool.QueryRow(ctx, query, value).Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&member.PasswordHash,
		&member.Role,
		&member.Zone,
		&member.Active,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *staffRepository) List(ctx context.Context, role *domain.StaffRole, zone *string) ([]domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE active`
	args := []any{}
	if role != nil {
		args = append(args, *role)
		query += ` AND role=$1`
	}
	if zone != nil {
		args = append(args, *zone)
		if len(args) == 1 {
			query += ` AND zone=$1`
		} else {
			query += ` AND zone=$2`
		}
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffMember
	for rows.Next() {
		var member domain.StaffMember
		if err := rows.Scan(
			&member.ID,
			&member.Name,
			&member.Email,
			&member.PasswordHash,
			&member.Role,
			&member.Zone,
			&member.Active,
			&member.CreatedAt,
			&member.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}
