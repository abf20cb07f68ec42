package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	TableName *string
	RecordID  *string
	Action    *domain.AuditAction
	Limit     int
	Offset    int
}

// AuditLogRepository reads the append-only audit trail. Writes happen inside
// the other repositories' transactions; there is deliberately no update or
// delete here.
type AuditLogRepository interface {
	ListWithFilter(ctx context.Context, filter AuditFilter) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository instantiates repository.
func NewAuditLogRepository(pool *pgxpool.Pool) AuditLogRepository {
	return &auditLogRepository{pool: pool}
}

func (r *auditLogRepository) ListWithFilter(ctx context.Context, filter AuditFilter) ([]domain.AuditLog, error) {
	base := `SELECT id, table_name, record_id, action, old_data, new_data, performed_by, performed_at
             FROM audit_logs`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.TableName != nil {
		args = append(args, *filter.TableName)
		clauses = append(clauses, fmt.Sprintf("table_name=$%d", len(args)))
	}
	if filter.RecordID != nil {
		args = append(args, *filter.RecordID)
		clauses = append(clauses, fmt.Sprintf("record_id=$%d", len(args)))
	}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		clauses = append(clauses, fmt.Sprintf("action=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY performed_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditLogs(rows)
}

func scanAuditLogs(rows pgx.Rows) ([]domain.AuditLog, error) {
	var result []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.TableName,
			&entry.RecordID,
			&entry.Action,
			&entry.OldData,
			&entry.NewData,
			&entry.PerformedBy,
			&entry.PerformedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
