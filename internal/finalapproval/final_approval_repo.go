package finalapproval

import (
	"context"
	"database/sql"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, record *FinalApproval) error
	FindByFormID(ctx context.Context, exitFormID string) (*FinalApproval, error)
	ExistsForForm(ctx context.Context, exitFormID string) (bool, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) Upsert(ctx context.Context, record *FinalApproval) error {
	query := `
INSERT INTO final_approvals (id, exit_form_id, approval_data, remarks, action, approved_by)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (exit_form_id) DO UPDATE
SET
	approval_data = EXCLUDED.approval_data,
	remarks = EXCLUDED.remarks,
	action = EXCLUDED.action,
	approved_by = EXCLUDED.approved_by,
	updated_at = NOW()
`
	_, err := r.q().ExecContext(ctx, query,
		record.ID, record.ExitFormID, record.ApprovalData, record.Remarks, record.Action, record.ApprovedBy,
	)
	return err
}

func (r *repository) FindByFormID(ctx context.Context, exitFormID string) (*FinalApproval, error) {
	query := `
SELECT id::text, exit_form_id::text, approval_data, remarks, action, approved_by::text, created_at, updated_at
FROM final_approvals
WHERE exit_form_id = $1
`
	var record FinalApproval
	err := r.q().QueryRowContext(ctx, query, exitFormID).Scan(
		&record.ID,
		&record.ExitFormID,
		&record.ApprovalData,
		&record.Remarks,
		&record.Action,
		&record.ApprovedBy,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ExistsForForm(ctx context.Context, exitFormID string) (bool, error) {
	var exists bool
	err := r.q().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM final_approvals WHERE exit_form_id = $1)`,
		exitFormID,
	).Scan(&exists)
	return exists, err
}
