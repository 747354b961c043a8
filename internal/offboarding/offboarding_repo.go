package offboarding

import (
	"context"
	"database/sql"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, record *OffboardingChecklist) error
	FindByFormID(ctx context.Context, exitFormID string) (*OffboardingChecklist, error)
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

func (r *repository) Upsert(ctx context.Context, record *OffboardingChecklist) error {
	query := `
INSERT INTO offboarding_checklists (id, exit_form_id, offboarding_data, completed_by)
VALUES ($1, $2, $3, $4)
ON CONFLICT (exit_form_id) DO UPDATE
SET
	offboarding_data = EXCLUDED.offboarding_data,
	completed_by = EXCLUDED.completed_by,
	updated_at = NOW()
`
	_, err := r.q().ExecContext(ctx, query, record.ID, record.ExitFormID, record.OffboardingData, record.CompletedBy)
	return err
}

func (r *repository) FindByFormID(ctx context.Context, exitFormID string) (*OffboardingChecklist, error) {
	query := `
SELECT id::text, exit_form_id::text, offboarding_data, completed_by::text, created_at, updated_at
FROM offboarding_checklists
WHERE exit_form_id = $1
`
	var record OffboardingChecklist
	err := r.q().QueryRowContext(ctx, query, exitFormID).Scan(
		&record.ID,
		&record.ExitFormID,
		&record.OffboardingData,
		&record.CompletedBy,
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
		`SELECT EXISTS (SELECT 1 FROM offboarding_checklists WHERE exit_form_id = $1)`,
		exitFormID,
	).Scan(&exists)
	return exists, err
}
