package hrreview

import (
	"context"
	"database/sql"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, review *HRReview) error
	FindByFormAndRound(ctx context.Context, exitFormID string, round int) (*HRReview, error)
	ListByForm(ctx context.Context, exitFormID string) ([]HRReview, error)
	ExistsForFormAndRound(ctx context.Context, exitFormID string, round int) (bool, error)
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
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const hrReviewColumns = `
	id::text,
	exit_form_id::text,
	verification_round,
	notice_period_verified,
	COALESCE(notice_period_comment, ''),
	leave_balance_settled,
	COALESCE(leave_balance_comment, ''),
	policy_compliance_confirmed,
	COALESCE(policy_compliance_comment, ''),
	exit_eligibility_confirmed,
	COALESCE(exit_eligibility_comment, ''),
	action,
	revised_notice_end,
	reviewed_by::text,
	created_at,
	updated_at
`

func (r *repository) Upsert(ctx context.Context, review *HRReview) error {
	query := `
INSERT INTO hr_reviews (
	id, exit_form_id, verification_round,
	notice_period_verified, notice_period_comment,
	leave_balance_settled, leave_balance_comment,
	policy_compliance_confirmed, policy_compliance_comment,
	exit_eligibility_confirmed, exit_eligibility_comment,
	action, revised_notice_end, reviewed_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (exit_form_id, verification_round) DO UPDATE
SET
	notice_period_verified = EXCLUDED.notice_period_verified,
	notice_period_comment = EXCLUDED.notice_period_comment,
	leave_balance_settled = EXCLUDED.leave_balance_settled,
	leave_balance_comment = EXCLUDED.leave_balance_comment,
	policy_compliance_confirmed = EXCLUDED.policy_compliance_confirmed,
	policy_compliance_comment = EXCLUDED.policy_compliance_comment,
	exit_eligibility_confirmed = EXCLUDED.exit_eligibility_confirmed,
	exit_eligibility_comment = EXCLUDED.exit_eligibility_comment,
	action = EXCLUDED.action,
	revised_notice_end = EXCLUDED.revised_notice_end,
	reviewed_by = EXCLUDED.reviewed_by,
	updated_at = NOW()
`
	_, err := r.q().ExecContext(
		ctx, query,
		review.ID, review.ExitFormID, review.VerificationRound,
		review.NoticePeriodVerified, review.NoticePeriodComment,
		review.LeaveBalanceSettled, review.LeaveBalanceComment,
		review.PolicyComplianceConfirmed, review.PolicyComplianceComment,
		review.ExitEligibilityConfirmed, review.ExitEligibilityComment,
		review.Action, review.RevisedNoticeEnd, review.ReviewedBy,
	)
	return err
}

func (r *repository) FindByFormAndRound(ctx context.Context, exitFormID string, round int) (*HRReview, error) {
	query := `SELECT ` + hrReviewColumns + ` FROM hr_reviews WHERE exit_form_id = $1 AND verification_round = $2`

	return scanHRReview(r.q().QueryRowContext(ctx, query, exitFormID, round))
}

func (r *repository) ListByForm(ctx context.Context, exitFormID string) ([]HRReview, error) {
	query := `SELECT ` + hrReviewColumns + ` FROM hr_reviews WHERE exit_form_id = $1 ORDER BY verification_round ASC`

	rows, err := r.q().QueryContext(ctx, query, exitFormID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]HRReview, 0, 2)
	for rows.Next() {
		review, err := scanHRReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repository) ExistsForFormAndRound(ctx context.Context, exitFormID string, round int) (bool, error) {
	var exists bool
	err := r.q().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM hr_reviews WHERE exit_form_id = $1 AND verification_round = $2)`,
		exitFormID, round,
	).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHRReview(row rowScanner) (*HRReview, error) {
	var (
		review  HRReview
		revised sql.NullTime
	)
	if err := row.Scan(
		&review.ID,
		&review.ExitFormID,
		&review.VerificationRound,
		&review.NoticePeriodVerified,
		&review.NoticePeriodComment,
		&review.LeaveBalanceSettled,
		&review.LeaveBalanceComment,
		&review.PolicyComplianceConfirmed,
		&review.PolicyComplianceComment,
		&review.ExitEligibilityConfirmed,
		&review.ExitEligibilityComment,
		&review.Action,
		&revised,
		&review.ReviewedBy,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if revised.Valid {
		t := revised.Time
		review.RevisedNoticeEnd = &t
	}
	return &review, nil
}
