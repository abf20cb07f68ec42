package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// inTx runs fn inside a transaction, committing on success.
func inTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// insertAudit appends an audit row within the caller's transaction. Every
// repository mutation goes through this so the audit trail cannot diverge
// from the data it describes.
func insertAudit(ctx context.Context, tx pgx.Tx, table, recordID string, action domain.AuditAction, oldData, newData map[string]any, performedBy *string) error {
	const query = `
        INSERT INTO audit_logs (table_name, record_id, action, old_data, new_data, performed_by)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := tx.Exec(ctx, query, table, recordID, action, oldData, newData, performedBy)
	return err
}
