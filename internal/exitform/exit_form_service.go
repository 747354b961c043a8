package exitform

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-exitflow/internal/employee"
	"go-exitflow/internal/events"
	exitformerrors "go-exitflow/internal/exitform/errors"
	"go-exitflow/internal/messaging/kafka"
	"go-exitflow/internal/shared/apperror"
	"go-exitflow/internal/shared/contextutil"
	"go-exitflow/internal/shared/counter"
	"go-exitflow/internal/workflow"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	ActiveFormsCacheKey = "exitforms:active"
	activeFormsCacheTTL = 60 * time.Second
)

type Service interface {
	Create(ctx context.Context, sess workflow.Session, req CreateExitFormRequest) (ExitFormResponse, error)
	GetByID(ctx context.Context, sess workflow.Session, id string) (ExitFormResponse, error)
	GetByEmployee(ctx context.Context, sess workflow.Session, employeeID string) ([]ExitFormResponse, error)
	GetAllActive(ctx context.Context, sess workflow.Session) ([]ExitFormResponse, error)
	Update(ctx context.Context, sess workflow.Session, id string, req UpdateExitFormRequest) (ExitFormResponse, error)

	// GetRef and the mutators below are the gateway used by stage services.
	GetRef(ctx context.Context, id string) (workflow.FormRef, error)
	AdvanceStatus(ctx context.Context, id string, from, to workflow.Status, actorID string) error
	ReviseNotice(ctx context.Context, id string, noticeEnd time.Time, from workflow.Status, actorID string) error

	ImportLegacy(ctx context.Context, records []map[string]any) (int, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("exitform.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("exitform.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		counter:   counterRepo,
		outbox:    outboxRepo,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, sess workflow.Session, req CreateExitFormRequest) (ExitFormResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create exit form requested",
		zap.String("request_id", rid),
		zap.String("actor_id", sess.EmployeeID),
		zap.String("employee_id", req.EmployeeID),
	)

	actorUUID, err := uuid.Parse(sess.EmployeeID)
	if err != nil {
		return ExitFormResponse{}, exitformerrors.ErrInvalidActorID
	}

	targetID := req.EmployeeID
	if targetID == "" {
		targetID = sess.EmployeeID
	}
	if targetID != sess.EmployeeID && !workflow.CanActAsHR(sess) {
		return ExitFormResponse{}, exitformerrors.ErrNotFormOwner
	}
	employeeUUID, err := uuid.Parse(targetID)
	if err != nil {
		return ExitFormResponse{}, exitformerrors.ErrInvalidEmployeeID
	}

	startDate, err := parseDate(req.NoticeStartDate)
	if err != nil {
		return ExitFormResponse{}, err
	}
	endDate, err := parseDate(req.NoticeEndDate)
	if err != nil {
		return ExitFormResponse{}, err
	}
	if startDate.After(endDate) {
		return ExitFormResponse{}, exitformerrors.ErrInvalidNoticePeriod
	}

	emp, err := s.employees.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExitFormResponse{}, exitformerrors.ErrInvalidEmployeeID
		}
		return ExitFormResponse{}, err
	}
	if emp.ReportingManagerID == nil {
		return ExitFormResponse{}, apperror.New(
			apperror.CodeInvalidState,
			"employee has no reporting manager on record",
			400,
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create exit form begin tx failed", zap.Error(err))
		return ExitFormResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	active, err := qtx.HasActiveForm(ctx, targetID)
	if err != nil {
		s.logger.Error("create exit form active check failed", zap.Error(err))
		return ExitFormResponse{}, err
	}
	if active {
		return ExitFormResponse{}, exitformerrors.ErrActiveFormExists
	}

	seq, err := s.counter.GetNextValue(ctx, "exit_form_number")
	if err != nil {
		s.logger.Error("create exit form number failed", zap.Error(err))
		return ExitFormResponse{}, err
	}

	f := &ExitForm{
		ID:                 uuid.New(),
		FormNumber:         fmt.Sprintf("EXIT-%04d", seq),
		EmployeeID:         employeeUUID,
		EmployeeName:       emp.FullName,
		ReportingManagerID: *emp.ReportingManagerID,
		NoticeStartDate:    startDate,
		NoticeEndDate:      endDate,
		Reason:             req.Reason,
		Status:             int(workflow.StatusPendingManager),
		CreatedBy:          actorUUID,
	}

	if err := qtx.Create(ctx, f); err != nil {
		s.logger.Error("create exit form persist failed", zap.Error(err))
		return ExitFormResponse{}, err
	}

	if s.outbox != nil {
		if err := s.enqueueStatusEvent(ctx, tx, f.ID.String(), f.EmployeeID.String(),
			"exit_form_created", workflow.StatusPendingManager, workflow.StatusPendingManager, sess.EmployeeID); err != nil {
			s.logger.Error("create exit form outbox failed", zap.Error(err))
			return ExitFormResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create exit form commit failed", zap.Error(err))
		return ExitFormResponse{}, err
	}

	s.invalidateActiveCache(ctx)
	s.logger.Info("create exit form success",
		zap.String("exit_form_id", f.ID.String()),
		zap.String("form_number", f.FormNumber),
		zap.String("employee_id", targetID),
	)

	return mapToResponse(*f), nil
}

func (s *service) GetByID(ctx context.Context, sess workflow.Session, id string) (ExitFormResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExitFormResponse{}, exitformerrors.ErrExitFormNotFound
		}
		return ExitFormResponse{}, err
	}
	if !workflow.CanView(sess, refOf(f)) {
		return ExitFormResponse{}, exitformerrors.ErrNotViewable
	}
	return mapToResponse(*f), nil
}

func (s *service) GetByEmployee(ctx context.Context, sess workflow.Session, employeeID string) ([]ExitFormResponse, error) {
	if employeeID == "" {
		employeeID = sess.EmployeeID
	}
	if employeeID != sess.EmployeeID && !isPrivileged(sess) {
		return nil, apperror.ErrForbidden
	}

	forms, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(DedupeForms(forms)), nil
}

// GetAllActive backs the global HR/SysAdmin/Payroll/CEO views. The listing is
// cached and single-flighted because every privileged dashboard polls it.
func (s *service) GetAllActive(ctx context.Context, sess workflow.Session) ([]ExitFormResponse, error) {
	if !isPrivileged(sess) {
		return nil, apperror.ErrForbidden
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ActiveFormsCacheKey).Result(); err == nil {
			var resp []ExitFormResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ActiveFormsCacheKey, func() (any, error) {
		forms, err := s.repo.FindAllActive(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(DedupeForms(forms))

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				_ = s.rdb.Set(ctx, ActiveFormsCacheKey, payload, activeFormsCacheTTL).Err()
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ExitFormResponse), nil
}

func (s *service) Update(ctx context.Context, sess workflow.Session, id string, req UpdateExitFormRequest) (ExitFormResponse, error) {
	startDate, err := parseDate(req.NoticeStartDate)
	if err != nil {
		return ExitFormResponse{}, err
	}
	endDate, err := parseDate(req.NoticeEndDate)
	if err != nil {
		return ExitFormResponse{}, err
	}
	if startDate.After(endDate) {
		return ExitFormResponse{}, exitformerrors.ErrInvalidNoticePeriod
	}

	actorUUID, err := uuid.Parse(sess.EmployeeID)
	if err != nil {
		return ExitFormResponse{}, exitformerrors.ErrInvalidActorID
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExitFormResponse{}, exitformerrors.ErrExitFormNotFound
		}
		return ExitFormResponse{}, err
	}

	if f.EmployeeID.String() != sess.EmployeeID {
		return ExitFormResponse{}, exitformerrors.ErrNotFormOwner
	}
	// Details are frozen the moment the manager stage acts on the form
	if workflow.Status(f.Status) != workflow.StatusPendingManager {
		return ExitFormResponse{}, exitformerrors.ErrFormNotEditable
	}

	f.NoticeStartDate = startDate
	f.NoticeEndDate = endDate
	f.Reason = req.Reason
	f.UpdatedBy = &actorUUID

	if err := s.repo.UpdateDetails(ctx, f); err != nil {
		s.logger.Error("update exit form persist failed", zap.String("exit_form_id", id), zap.Error(err))
		return ExitFormResponse{}, err
	}

	s.invalidateActiveCache(ctx)
	return mapToResponse(*f), nil
}

func (s *service) GetRef(ctx context.Context, id string) (workflow.FormRef, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return workflow.FormRef{}, exitformerrors.ErrExitFormNotFound
		}
		return workflow.FormRef{}, err
	}
	return refOf(f), nil
}

// AdvanceStatus moves the anchor form from -> to atomically. The WHERE on the
// current status is the optimistic check: two actors racing on the same stage
// cannot both win, the loser gets ErrStatusConflict.
func (s *service) AdvanceStatus(ctx context.Context, id string, from, to workflow.Status, actorID string) error {
	if !from.Valid() || !to.Valid() || from == to {
		return exitformerrors.ErrStatusConflict
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return exitformerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("advance status begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	f, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return exitformerrors.ErrExitFormNotFound
		}
		return err
	}

	moved, err := qtx.UpdateStatusGuarded(ctx, id, int(from), int(to), actorID)
	if err != nil {
		s.logger.Error("advance status persist failed",
			zap.String("exit_form_id", id),
			zap.Int("from", int(from)),
			zap.Int("to", int(to)),
			zap.Error(err),
		)
		return err
	}
	if !moved {
		s.logger.Warn("advance status conflict",
			zap.String("exit_form_id", id),
			zap.Int("expected_from", int(from)),
		)
		return exitformerrors.ErrStatusConflict
	}

	if s.outbox != nil {
		if err := s.enqueueStatusEvent(ctx, tx, id, f.EmployeeID.String(),
			"exit_status_changed", from, to, actorID); err != nil {
			s.logger.Error("advance status outbox failed", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("advance status commit failed", zap.Error(err))
		return err
	}

	s.invalidateActiveCache(ctx)
	s.logger.Info("advance status success",
		zap.String("exit_form_id", id),
		zap.Int("from", int(from)),
		zap.Int("to", int(to)),
	)
	return nil
}

// ReviseNotice handles the HR REVISE_LWD outcome: store the corrected last
// working day and send the form back to manager review so the revised notice
// period is re-confirmed.
func (s *service) ReviseNotice(ctx context.Context, id string, noticeEnd time.Time, from workflow.Status, actorID string) error {
	if _, err := uuid.Parse(actorID); err != nil {
		return exitformerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	f, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return exitformerrors.ErrExitFormNotFound
		}
		return err
	}
	if workflow.Status(f.Status) != from {
		return exitformerrors.ErrStatusConflict
	}

	if err := qtx.UpdateNoticeEnd(ctx, id, noticeEnd, int(workflow.StatusPendingManager), actorID); err != nil {
		s.logger.Error("revise notice persist failed", zap.String("exit_form_id", id), zap.Error(err))
		return err
	}

	if s.outbox != nil {
		if err := s.enqueueStatusEvent(ctx, tx, id, f.EmployeeID.String(),
			"exit_notice_revised", from, workflow.StatusPendingManager, actorID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateActiveCache(ctx)
	s.logger.Info("revise notice success",
		zap.String("exit_form_id", id),
		zap.String("new_notice_end", noticeEnd.Format("2006-01-02")),
	)
	return nil
}

func (s *service) enqueueStatusEvent(
	ctx context.Context,
	tx *sql.Tx,
	formID, employeeID, eventType string,
	from, to workflow.Status,
	actorID string,
) error {
	event := events.ExitStatusChangedEvent{
		EventType:  eventType,
		ExitFormID: formID,
		EmployeeID: employeeID,
		FromStatus: int(from),
		ToStatus:   int(to),
		Stage:      string(to.Stage()),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "exit_form",
		AggregateID:   formID,
		EventType:     eventType,
		Topic:         events.ExitStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateActiveCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ActiveFormsCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate active forms cache failed", zap.Error(err))
	}
}

func isPrivileged(sess workflow.Session) bool {
	return workflow.CanActAsHR(sess) || workflow.IsSystemAdmin(sess) || workflow.IsPayrollUser(sess)
}

func refOf(f *ExitForm) workflow.FormRef {
	return workflow.FormRef{
		ID:                 f.ID.String(),
		EmployeeID:         f.EmployeeID.String(),
		ReportingManagerID: f.ReportingManagerID.String(),
		Status:             workflow.Status(f.Status),
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, exitformerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(f ExitForm) ExitFormResponse {
	status := workflow.Status(f.Status)
	return ExitFormResponse{
		ID:                 f.ID.String(),
		FormNumber:         f.FormNumber,
		EmployeeID:         f.EmployeeID.String(),
		EmployeeName:       f.EmployeeName,
		ReportingManagerID: f.ReportingManagerID.String(),
		NoticeStartDate:    f.NoticeStartDate.Format("2006-01-02"),
		NoticeEndDate:      f.NoticeEndDate.Format("2006-01-02"),
		Reason:             f.Reason,
		Status:             f.Status,
		StatusLabel:        status.String(),
		Terminal:           status.Terminal(),
		ProgressStep:       status.ProgressStep(),
		CreatedBy:          f.CreatedBy.String(),
		CreatedAt:          f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(forms []ExitForm) []ExitFormResponse {
	resp := make([]ExitFormResponse, len(forms))
	for i, f := range forms {
		resp[i] = mapToResponse(f)
	}
	return resp
}
