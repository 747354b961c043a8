package exitform

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, f *ExitForm) error
	FindByID(ctx context.Context, id string) (*ExitForm, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]ExitForm, error)
	FindAllActive(ctx context.Context) ([]ExitForm, error)
	HasActiveForm(ctx context.Context, employeeID string) (bool, error)
	UpdateDetails(ctx context.Context, f *ExitForm) error
	// UpdateStatusGuarded flips status from -> to and reports whether any row
	// matched; false means the status moved under us.
	UpdateStatusGuarded(ctx context.Context, id string, from, to int, actorID string) (bool, error)
	UpdateNoticeEnd(ctx context.Context, id string, noticeEnd time.Time, status int, actorID string) error
	Upsert(ctx context.Context, f *ExitForm) error
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

const exitFormColumns = `
	id::text,
	form_number,
	employee_id::text,
	employee_name,
	reporting_manager_id::text,
	notice_start_date,
	notice_end_date,
	COALESCE(reason, ''),
	status,
	created_by::text,
	updated_by::text,
	created_at,
	updated_at
`

func (r *repository) Create(ctx context.Context, f *ExitForm) error {
	query := `
        INSERT INTO exit_forms (
            id, form_number, employee_id, employee_name, reporting_manager_id,
            notice_start_date, notice_end_date, reason, status, created_by
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.q().ExecContext(
		ctx, query,
		f.ID, f.FormNumber, f.EmployeeID, f.EmployeeName, f.ReportingManagerID,
		f.NoticeStartDate, f.NoticeEndDate, f.Reason, f.Status, f.CreatedBy,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ExitForm, error) {
	query := `SELECT ` + exitFormColumns + ` FROM exit_forms WHERE id = $1 AND deleted_at IS NULL`

	row := r.q().QueryRowContext(ctx, query, id)
	f, err := scanExitForm(row)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]ExitForm, error) {
	query := `
SELECT ` + exitFormColumns + `
FROM exit_forms
WHERE employee_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
`
	rows, err := r.q().QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExitForms(rows)
}

func (r *repository) FindAllActive(ctx context.Context) ([]ExitForm, error) {
	query := `
SELECT ` + exitFormColumns + `
FROM exit_forms
WHERE status BETWEEN $1 AND $2 AND deleted_at IS NULL
ORDER BY created_at ASC
`
	rows, err := r.q().QueryContext(ctx, query, 0, 5)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExitForms(rows)
}

func (r *repository) HasActiveForm(ctx context.Context, employeeID string) (bool, error) {
	query := `
SELECT EXISTS (
	SELECT 1 FROM exit_forms
	WHERE employee_id = $1
		AND status BETWEEN $2 AND $3
		AND deleted_at IS NULL
)
`
	var exists bool
	err := r.q().QueryRowContext(ctx, query, employeeID, 0, 5).Scan(&exists)
	return exists, err
}

func (r *repository) UpdateDetails(ctx context.Context, f *ExitForm) error {
	query := `
UPDATE exit_forms
SET
	notice_start_date = $2,
	notice_end_date = $3,
	reason = $4,
	updated_by = $5,
	updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
	_, err := r.q().ExecContext(ctx, query, f.ID, f.NoticeStartDate, f.NoticeEndDate, f.Reason, f.UpdatedBy)
	return err
}

func (r *repository) UpdateStatusGuarded(ctx context.Context, id string, from, to int, actorID string) (bool, error) {
	query := `
UPDATE exit_forms
SET
	status = $3,
	updated_by = $4,
	updated_at = NOW()
WHERE id = $1 AND status = $2 AND deleted_at IS NULL
`
	res, err := r.q().ExecContext(ctx, query, id, from, to, actorID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) UpdateNoticeEnd(ctx context.Context, id string, noticeEnd time.Time, status int, actorID string) error {
	query := `
UPDATE exit_forms
SET
	notice_end_date = $2,
	status = $3,
	updated_by = $4,
	updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
`
	_, err := r.q().ExecContext(ctx, query, id, noticeEnd, status, actorID)
	return err
}

func (r *repository) Upsert(ctx context.Context, f *ExitForm) error {
	query := `
INSERT INTO exit_forms (
	id, form_number, employee_id, employee_name, reporting_manager_id,
	notice_start_date, notice_end_date, reason, status, created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE
SET
	employee_name = EXCLUDED.employee_name,
	reporting_manager_id = EXCLUDED.reporting_manager_id,
	notice_start_date = EXCLUDED.notice_start_date,
	notice_end_date = EXCLUDED.notice_end_date,
	reason = EXCLUDED.reason,
	status = EXCLUDED.status,
	updated_at = NOW()
`
	_, err := r.q().ExecContext(
		ctx, query,
		f.ID, f.FormNumber, f.EmployeeID, f.EmployeeName, f.ReportingManagerID,
		f.NoticeStartDate, f.NoticeEndDate, f.Reason, f.Status, f.CreatedBy,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExitForm(row rowScanner) (*ExitForm, error) {
	var (
		f         ExitForm
		updatedBy sql.NullString
	)
	if err := row.Scan(
		&f.ID,
		&f.FormNumber,
		&f.EmployeeID,
		&f.EmployeeName,
		&f.ReportingManagerID,
		&f.NoticeStartDate,
		&f.NoticeEndDate,
		&f.Reason,
		&f.Status,
		&f.CreatedBy,
		&updatedBy,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if updatedBy.Valid {
		if id, err := uuid.Parse(updatedBy.String); err == nil {
			f.UpdatedBy = &id
		}
	}
	return &f, nil
}

func collectExitForms(rows *sql.Rows) ([]ExitForm, error) {
	forms := make([]ExitForm, 0)
	for rows.Next() {
		f, err := scanExitForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return forms, nil
}
