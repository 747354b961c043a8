package assetclearance

import (
	"context"
	"database/sql"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, clearance *AssetClearance) error
	FindByFormID(ctx context.Context, exitFormID string) (*AssetClearance, error)
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

func (r *repository) Upsert(ctx context.Context, clearance *AssetClearance) error {
	query := `
INSERT INTO asset_clearances (id, exit_form_id, clearance_data, cleared_by)
VALUES ($1, $2, $3, $4)
ON CONFLICT (exit_form_id) DO UPDATE
SET
	clearance_data = EXCLUDED.clearance_data,
	cleared_by = EXCLUDED.cleared_by,
	updated_at = NOW()
`
	_, err := r.q().ExecContext(ctx, query, clearance.ID, clearance.ExitFormID, clearance.ClearanceData, clearance.ClearedBy)
	return err
}

func (r *repository) FindByFormID(ctx context.Context, exitFormID string) (*AssetClearance, error) {
	query := `
SELECT id::text, exit_form_id::text, clearance_data, cleared_by::text, created_at, updated_at
FROM asset_clearances
WHERE exit_form_id = $1
`
	var clearance AssetClearance
	err := r.q().QueryRowContext(ctx, query, exitFormID).Scan(
		&clearance.ID,
		&clearance.ExitFormID,
		&clearance.ClearanceData,
		&clearance.ClearedBy,
		&clearance.CreatedAt,
		&clearance.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &clearance, nil
}

func (r *repository) ExistsForForm(ctx context.Context, exitFormID string) (bool, error) {
	var exists bool
	err := r.q().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM asset_clearances WHERE exit_form_id = $1)`,
		exitFormID,
	).Scan(&exists)
	return exists, err
}
