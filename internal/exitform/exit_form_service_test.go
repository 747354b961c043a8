package exitform

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-exitflow/internal/employee"
	exitformerrors "go-exitflow/internal/exitform/errors"
	"go-exitflow/internal/messaging/kafka"
	"go-exitflow/internal/workflow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	createFn              func(ctx context.Context, f *ExitForm) error
	findByIDFn            func(ctx context.Context, id string) (*ExitForm, error)
	findByEmployeeFn      func(ctx context.Context, employeeID string) ([]ExitForm, error)
	findAllActiveFn       func(ctx context.Context) ([]ExitForm, error)
	hasActiveFormFn       func(ctx context.Context, employeeID string) (bool, error)
	updateDetailsFn       func(ctx context.Context, f *ExitForm) error
	updateStatusGuardedFn func(ctx context.Context, id string, from, to int, actorID string) (bool, error)
	updateNoticeEndFn     func(ctx context.Context, id string, noticeEnd time.Time, status int, actorID string) error
	upsertFn              func(ctx context.Context, f *ExitForm) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                  { return f }
func (f *fakeRepo) Create(ctx context.Context, e *ExitForm) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*ExitForm, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) ([]ExitForm, error) {
	return f.findByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindAllActive(ctx context.Context) ([]ExitForm, error) {
	return f.findAllActiveFn(ctx)
}
func (f *fakeRepo) HasActiveForm(ctx context.Context, employeeID string) (bool, error) {
	return f.hasActiveFormFn(ctx, employeeID)
}
func (f *fakeRepo) UpdateDetails(ctx context.Context, e *ExitForm) error {
	return f.updateDetailsFn(ctx, e)
}
func (f *fakeRepo) UpdateStatusGuarded(ctx context.Context, id string, from, to int, actorID string) (bool, error) {
	return f.updateStatusGuardedFn(ctx, id, from, to, actorID)
}
func (f *fakeRepo) UpdateNoticeEnd(ctx context.Context, id string, noticeEnd time.Time, status int, actorID string) error {
	return f.updateNoticeEndFn(ctx, id, noticeEnd, status, actorID)
}
func (f *fakeRepo) Upsert(ctx context.Context, e *ExitForm) error { return f.upsertFn(ctx, e) }

type fakeEmployees struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployees) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployees) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployees) FindByUsernameOrEmail(ctx context.Context, login string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployees) HasDirectReports(ctx context.Context, managerID string) (bool, error) {
	return false, nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func storedForm(status workflow.Status) *ExitForm {
	return &ExitForm{
		ID:                 uuid.New(),
		FormNumber:         "EXIT-0042",
		EmployeeID:         uuid.New(),
		EmployeeName:       "Dana Whitfield",
		ReportingManagerID: uuid.New(),
		NoticeStartDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		NoticeEndDate:      time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		Reason:             "relocation",
		Status:             int(status),
		CreatedBy:          uuid.New(),
	}
}

func TestCreate_HappyPath(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	actorID := uuid.New()
	managerID := uuid.New()

	var created *ExitForm
	repo := &fakeRepo{
		hasActiveFormFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
		createFn:        func(ctx context.Context, f *ExitForm) error { created = f; return nil },
	}
	employees := &fakeEmployees{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{FullName: "Dana Whitfield", ReportingManagerID: &managerID}, nil
		},
	}
	outbox := &fakeOutbox{}

	svc := NewService(db, repo, employees, &fakeCounter{}, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	sess := workflow.Session{EmployeeID: actorID.String(), Role: workflow.RoleEmployee}
	resp, err := svc.Create(context.Background(), sess, CreateExitFormRequest{
		NoticeStartDate: "2026-08-01",
		NoticeEndDate:   "2026-09-30",
		Reason:          "relocation",
	})

	assert.NoError(t, err)
	assert.Equal(t, "EXIT-0001", resp.FormNumber)
	assert.Equal(t, int(workflow.StatusPendingManager), resp.Status)
	assert.Equal(t, 2, resp.ProgressStep)
	assert.Equal(t, managerID.String(), created.ReportingManagerID.String())

	// An exit_form_created event rides the same transaction.
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "exit_form_created", outbox.events[0].EventType)
	assert.Equal(t, created.ID.String(), outbox.events[0].AggregateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_OnBehalfRequiresHR(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeEmployees{}, &fakeCounter{}, nil, nil)

	sess := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleEmployee}
	_, err := svc.Create(context.Background(), sess, CreateExitFormRequest{
		EmployeeID:      uuid.New().String(),
		NoticeStartDate: "2026-08-01",
		NoticeEndDate:   "2026-09-30",
		Reason:          "relocation",
	})
	assert.ErrorIs(t, err, exitformerrors.ErrNotFormOwner)
}

func TestCreate_SecondActiveFormRefused(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	managerID := uuid.New()
	repo := &fakeRepo{
		hasActiveFormFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
	}
	employees := &fakeEmployees{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{FullName: "Dana Whitfield", ReportingManagerID: &managerID}, nil
		},
	}
	svc := NewService(db, repo, employees, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	sess := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleEmployee}
	_, err := svc.Create(context.Background(), sess, CreateExitFormRequest{
		NoticeStartDate: "2026-08-01",
		NoticeEndDate:   "2026-09-30",
		Reason:          "relocation",
	})
	assert.ErrorIs(t, err, exitformerrors.ErrActiveFormExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NoticePeriodValidation(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	svc := NewService(db, &fakeRepo{}, &fakeEmployees{}, &fakeCounter{}, nil, nil)
	sess := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleEmployee}

	_, err := svc.Create(context.Background(), sess, CreateExitFormRequest{
		NoticeStartDate: "01-08-2026",
		NoticeEndDate:   "2026-09-30",
		Reason:          "relocation",
	})
	assert.ErrorIs(t, err, exitformerrors.ErrInvalidDateFormat)

	_, err = svc.Create(context.Background(), sess, CreateExitFormRequest{
		NoticeStartDate: "2026-09-30",
		NoticeEndDate:   "2026-08-01",
		Reason:          "relocation",
	})
	assert.ErrorIs(t, err, exitformerrors.ErrInvalidNoticePeriod)
}

func TestAdvanceStatus_GuardedTransition(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	form := storedForm(workflow.StatusPendingManager)
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*ExitForm, error) { return form, nil },
		updateStatusGuardedFn: func(ctx context.Context, id string, from, to int, actorID string) (bool, error) {
			assert.Equal(t, 0, from)
			assert.Equal(t, 1, to)
			return true, nil
		},
	}
	outbox := &fakeOutbox{}
	svc := NewService(db, repo, &fakeEmployees{}, &fakeCounter{}, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.AdvanceStatus(context.Background(), form.ID.String(),
		workflow.StatusPendingManager, workflow.StatusPendingHRRound1, uuid.New().String())

	assert.NoError(t, err)
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "exit_status_changed", outbox.events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvanceStatus_LosingRaceGetsConflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	// Another actor moved the form first: the guarded UPDATE matches no row.
	form := storedForm(workflow.StatusPendingHRRound1)
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*ExitForm, error) { return form, nil },
		updateStatusGuardedFn: func(ctx context.Context, id string, from, to int, actorID string) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(db, repo, &fakeEmployees{}, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.AdvanceStatus(context.Background(), form.ID.String(),
		workflow.StatusPendingManager, workflow.StatusPendingHRRound1, uuid.New().String())

	assert.ErrorIs(t, err, exitformerrors.ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvanceStatus_RejectsDegenerateTransitions(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	svc := NewService(db, &fakeRepo{}, &fakeEmployees{}, &fakeCounter{}, nil, nil)

	err := svc.AdvanceStatus(context.Background(), uuid.New().String(),
		workflow.StatusPendingManager, workflow.StatusPendingManager, uuid.New().String())
	assert.ErrorIs(t, err, exitformerrors.ErrStatusConflict)

	err = svc.AdvanceStatus(context.Background(), uuid.New().String(),
		workflow.Status(42), workflow.StatusPendingHRRound1, uuid.New().String())
	assert.ErrorIs(t, err, exitformerrors.ErrStatusConflict)
}

func TestReviseNotice_ResetsToManagerReview(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	form := storedForm(workflow.StatusPendingHRRound1)
	newEnd := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	var resetTo int
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*ExitForm, error) { return form, nil },
		updateNoticeEndFn: func(ctx context.Context, id string, noticeEnd time.Time, status int, actorID string) error {
			assert.Equal(t, newEnd, noticeEnd)
			resetTo = status
			return nil
		},
	}
	outbox := &fakeOutbox{}
	svc := NewService(db, repo, &fakeEmployees{}, &fakeCounter{}, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.ReviseNotice(context.Background(), form.ID.String(), newEnd,
		workflow.StatusPendingHRRound1, uuid.New().String())

	assert.NoError(t, err)
	assert.Equal(t, int(workflow.StatusPendingManager), resetTo)
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "exit_notice_revised", outbox.events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllActive_PrivilegedOnly(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	svc := NewService(db, &fakeRepo{}, &fakeEmployees{}, &fakeCounter{}, nil, nil)

	sess := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleEmployee}
	_, err := svc.GetAllActive(context.Background(), sess)
	assert.Error(t, err)
}

func TestGetAllActive_CacheHitSkipsRepository(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	cached := []ExitFormResponse{{ID: uuid.New().String(), FormNumber: "EXIT-0007"}}
	payload, _ := json.Marshal(cached)

	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectGet(ActiveFormsCacheKey).SetVal(string(payload))

	repo := &fakeRepo{
		findAllActiveFn: func(ctx context.Context) ([]ExitForm, error) {
			t.Fatal("repository must not be hit on a cache hit")
			return nil, nil
		},
	}
	svc := NewService(db, repo, &fakeEmployees{}, &fakeCounter{}, nil, rdb)

	sess := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleHR}
	resp, err := svc.GetAllActive(context.Background(), sess)

	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestGetAllActive_MissDedupesAndLists(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	form := storedForm(workflow.StatusPendingPayroll)
	repo := &fakeRepo{
		findAllActiveFn: func(ctx context.Context) ([]ExitForm, error) {
			// Same row twice, as a replayed legacy import can produce.
			return []ExitForm{*form, *form}, nil
		},
	}
	svc := NewService(db, repo, &fakeEmployees{}, &fakeCounter{}, nil, nil)

	sess := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RolePayroll}
	resp, err := svc.GetAllActive(context.Background(), sess)

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Pending - Payroll", resp[0].StatusLabel)
}

func TestGetByEmployee_OwnFormsOnlyForRankAndFile(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	repo := &fakeRepo{
		findByEmployeeFn: func(ctx context.Context, id string) ([]ExitForm, error) {
			assert.Equal(t, employeeID, id)
			return []ExitForm{*storedForm(workflow.StatusPendingManager)}, nil
		},
	}
	svc := NewService(db, repo, &fakeEmployees{}, &fakeCounter{}, nil, nil)

	own := workflow.Session{EmployeeID: employeeID, Role: workflow.RoleEmployee}
	resp, err := svc.GetByEmployee(context.Background(), own, "")
	assert.NoError(t, err)
	assert.Len(t, resp, 1)

	other := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleEmployee}
	_, err = svc.GetByEmployee(context.Background(), other, employeeID)
	assert.Error(t, err)
}

func TestUpdate_FrozenOnceManagerActs(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	form := storedForm(workflow.StatusPendingHRRound1)
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*ExitForm, error) { return form, nil },
	}
	svc := NewService(db, repo, &fakeEmployees{}, &fakeCounter{}, nil, nil)

	sess := workflow.Session{EmployeeID: form.EmployeeID.String(), Role: workflow.RoleEmployee}
	_, err := svc.Update(context.Background(), sess, form.ID.String(), UpdateExitFormRequest{
		NoticeStartDate: "2026-08-01",
		NoticeEndDate:   "2026-09-30",
		Reason:          "relocation, revised",
	})
	assert.ErrorIs(t, err, exitformerrors.ErrFormNotEditable)
}
