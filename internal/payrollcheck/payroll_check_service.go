package payrollcheck

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	payrollcheckerrors "go-exitflow/internal/payrollcheck/errors"
	"go-exitflow/internal/shared/apperror"
	"go-exitflow/internal/shared/checklist"
	"go-exitflow/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FormService is the slice of the exit-form service this stage needs.
type FormService interface {
	GetRef(ctx context.Context, id string) (workflow.FormRef, error)
	AdvanceStatus(ctx context.Context, id string, from, to workflow.Status, actorID string) error
}

type Service interface {
	Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitPayrollCheckRequest, editMode bool) (PayrollCheckResponse, error)
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (PayrollCheckResponse, error)
}

type service struct {
	repo   Repository
	forms  FormService
	logger *zap.Logger
}

func NewService(repo Repository, forms FormService, logger ...*zap.Logger) Service {
	l := zap.L().Named("payrollcheck.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollcheck.service")
	}
	return &service{repo: repo, forms: forms, logger: l}
}

func validateItems(items []ChecklistItem) error {
	for _, item := range items {
		if item.Checked && item.Comment == "" {
			return payrollcheckerrors.ErrCommentRequired
		}
		if strings.Contains(item.Label, "#") || strings.Contains(item.Label, "||") ||
			strings.Contains(item.Comment, "#") || strings.Contains(item.Comment, "||") {
			return payrollcheckerrors.ErrReservedCharacters
		}
	}
	return nil
}

func packItems(items []ChecklistItem) string {
	packed := make([]checklist.Item, len(items))
	for i, item := range items {
		state := StateOpen
		if item.Checked {
			state = StateCleared
		}
		packed[i] = checklist.Item{Label: item.Label, Status: state, Comment: item.Comment}
	}
	return checklist.Build(packed)
}

func unpackItems(data string) []ChecklistItem {
	parsed := checklist.Parse(data)
	items := make([]ChecklistItem, len(parsed))
	for i, entry := range parsed {
		items[i] = ChecklistItem{
			Label:   entry.Label,
			Checked: entry.Status == StateCleared,
			Comment: entry.Comment,
		}
	}
	return items
}

func (s *service) Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitPayrollCheckRequest, editMode bool) (PayrollCheckResponse, error) {
	if err := validateItems(req.Items); err != nil {
		return PayrollCheckResponse{}, err
	}

	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return PayrollCheckResponse{}, err
	}
	if ref.Status.Stage() != workflow.StagePayrollChecks {
		return PayrollCheckResponse{}, payrollcheckerrors.ErrWrongStage
	}

	hasExisting, err := s.repo.ExistsForForm(ctx, formID)
	if err != nil {
		return PayrollCheckResponse{}, err
	}
	if !workflow.CanEditStage(sess, ref, workflow.StagePayrollChecks, hasExisting, editMode) {
		if hasExisting && !editMode {
			return PayrollCheckResponse{}, payrollcheckerrors.ErrAlreadySubmitted
		}
		return PayrollCheckResponse{}, payrollcheckerrors.ErrNotStageActor
	}

	verifiedBy, err := uuid.Parse(sess.EmployeeID)
	if err != nil {
		return PayrollCheckResponse{}, apperror.ErrUnauthorized
	}
	formUUID, err := uuid.Parse(ref.ID)
	if err != nil {
		return PayrollCheckResponse{}, apperror.ErrInternal
	}

	record := &PayrollCheck{
		ID:          uuid.New(),
		ExitFormID:  formUUID,
		PayrollData: packItems(req.Items),
		VerifiedBy:  verifiedBy,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		s.logger.Error("payroll checks persist failed", zap.String("exit_form_id", formID), zap.Error(err))
		return PayrollCheckResponse{}, err
	}

	if err := s.forms.AdvanceStatus(ctx, formID, ref.Status, workflow.StatusPendingFinalApproval, sess.EmployeeID); err != nil {
		s.logger.Error("payroll checks saved but status advance failed",
			zap.String("exit_form_id", formID),
			zap.Error(err),
		)
		return PayrollCheckResponse{}, apperror.StatusAdvanceFailed(err)
	}

	s.logger.Info("payroll checks submitted",
		zap.String("exit_form_id", formID),
		zap.Int("item_count", len(req.Items)),
	)

	return mapToResponse(record, int(workflow.StatusPendingFinalApproval)), nil
}

func (s *service) GetByForm(ctx context.Context, sess workflow.Session, formID string) (PayrollCheckResponse, error) {
	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return PayrollCheckResponse{}, err
	}
	if !workflow.CanView(sess, ref) {
		return PayrollCheckResponse{}, payrollcheckerrors.ErrNotViewable
	}

	record, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PayrollCheckResponse{}, payrollcheckerrors.ErrChecksNotFound
		}
		return PayrollCheckResponse{}, err
	}
	return mapToResponse(record, int(ref.Status)), nil
}

func mapToResponse(record *PayrollCheck, formStatus int) PayrollCheckResponse {
	submittedAt := record.UpdatedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	return PayrollCheckResponse{
		ID:          record.ID.String(),
		ExitFormID:  record.ExitFormID.String(),
		Items:       unpackItems(record.PayrollData),
		VerifiedBy:  record.VerifiedBy.String(),
		SubmittedAt: submittedAt.UTC().Format(time.RFC3339),
		FormStatus:  formStatus,
	}
}
