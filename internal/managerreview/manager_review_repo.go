package managerreview

import (
	"context"
	"database/sql"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, review *ManagerReview) error
	FindByFormID(ctx context.Context, exitFormID string) (*ManagerReview, error)
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

func (r *repository) Upsert(ctx context.Context, review *ManagerReview) error {
	query := `
INSERT INTO manager_reviews (
	id, exit_form_id,
	performance_satisfactory, performance_comment,
	knowledge_transfer_complete, knowledge_transfer_comment,
	notice_period_served, notice_period_comment,
	action, reviewed_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (exit_form_id) DO UPDATE
SET
	performance_satisfactory = EXCLUDED.performance_satisfactory,
	performance_comment = EXCLUDED.performance_comment,
	knowledge_transfer_complete = EXCLUDED.knowledge_transfer_complete,
	knowledge_transfer_comment = EXCLUDED.knowledge_transfer_comment,
	notice_period_served = EXCLUDED.notice_period_served,
	notice_period_comment = EXCLUDED.notice_period_comment,
	action = EXCLUDED.action,
	reviewed_by = EXCLUDED.reviewed_by,
	updated_at = NOW()
`
	_, err := r.q().ExecContext(
		ctx, query,
		review.ID, review.ExitFormID,
		review.PerformanceSatisfactory, review.PerformanceComment,
		review.KnowledgeTransferComplete, review.KnowledgeTransferComment,
		review.NoticePeriodServed, review.NoticePeriodComment,
		review.Action, review.ReviewedBy,
	)
	return err
}

func (r *repository) FindByFormID(ctx context.Context, exitFormID string) (*ManagerReview, error) {
	query := `
SELECT
	id::text,
	exit_form_id::text,
	performance_satisfactory,
	COALESCE(performance_comment, ''),
	knowledge_transfer_complete,
	COALESCE(knowledge_transfer_comment, ''),
	notice_period_served,
	COALESCE(notice_period_comment, ''),
	action,
	reviewed_by::text,
	created_at,
	updated_at
FROM manager_reviews
WHERE exit_form_id = $1
`
	var review ManagerReview
	err := r.q().QueryRowContext(ctx, query, exitFormID).Scan(
		&review.ID,
		&review.ExitFormID,
		&review.PerformanceSatisfactory,
		&review.PerformanceComment,
		&review.KnowledgeTransferComplete,
		&review.KnowledgeTransferComment,
		&review.NoticePeriodServed,
		&review.NoticePeriodComment,
		&review.Action,
		&review.ReviewedBy,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *repository) ExistsForForm(ctx context.Context, exitFormID string) (bool, error) {
	var exists bool
	err := r.q().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM manager_reviews WHERE exit_form_id = $1)`,
		exitFormID,
	).Scan(&exists)
	return exists, err
}
