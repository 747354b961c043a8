package offboarding

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	offboardingerrors "go-exitflow/internal/offboarding/errors"
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
	Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitOffboardingRequest, editMode bool) (OffboardingResponse, error)
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (OffboardingResponse, error)
}

type service struct {
	repo   Repository
	forms  FormService
	logger *zap.Logger
}

func NewService(repo Repository, forms FormService, logger ...*zap.Logger) Service {
	l := zap.L().Named("offboarding.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("offboarding.service")
	}
	return &service{repo: repo, forms: forms, logger: l}
}

func validateItems(items []ChecklistItem) error {
	for _, item := range items {
		if item.Checked && item.Comment == "" {
			return offboardingerrors.ErrCommentRequired
		}
		if strings.Contains(item.Label, "#") || strings.Contains(item.Label, "||") ||
			strings.Contains(item.Comment, "#") || strings.Contains(item.Comment, "||") {
			return offboardingerrors.ErrReservedCharacters
		}
	}
	return nil
}

func packItems(items []ChecklistItem) string {
	packed := make([]checklist.Item, len(items))
	for i, item := range items {
		state := StatePending
		if item.Checked {
			state = StateDone
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
			Checked: entry.Status == StateDone,
			Comment: entry.Comment,
		}
	}
	return items
}

func (s *service) Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitOffboardingRequest, editMode bool) (OffboardingResponse, error) {
	if err := validateItems(req.Items); err != nil {
		return OffboardingResponse{}, err
	}

	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return OffboardingResponse{}, err
	}
	if ref.Status.Stage() != workflow.StageOffboarding {
		return OffboardingResponse{}, offboardingerrors.ErrWrongStage
	}

	hasExisting, err := s.repo.ExistsForForm(ctx, formID)
	if err != nil {
		return OffboardingResponse{}, err
	}
	if !workflow.CanEditStage(sess, ref, workflow.StageOffboarding, hasExisting, editMode) {
		if hasExisting && !editMode {
			return OffboardingResponse{}, offboardingerrors.ErrAlreadySubmitted
		}
		return OffboardingResponse{}, offboardingerrors.ErrNotStageActor
	}

	completedBy, err := uuid.Parse(sess.EmployeeID)
	if err != nil {
		return OffboardingResponse{}, apperror.ErrUnauthorized
	}
	formUUID, err := uuid.Parse(ref.ID)
	if err != nil {
		return OffboardingResponse{}, apperror.ErrInternal
	}

	record := &OffboardingChecklist{
		ID:              uuid.New(),
		ExitFormID:      formUUID,
		OffboardingData: packItems(req.Items),
		CompletedBy:     completedBy,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		s.logger.Error("offboarding checklist persist failed", zap.String("exit_form_id", formID), zap.Error(err))
		return OffboardingResponse{}, err
	}

	if err := s.forms.AdvanceStatus(ctx, formID, ref.Status, workflow.StatusPendingPayroll, sess.EmployeeID); err != nil {
		s.logger.Error("offboarding checklist saved but status advance failed",
			zap.String("exit_form_id", formID),
			zap.Error(err),
		)
		return OffboardingResponse{}, apperror.StatusAdvanceFailed(err)
	}

	s.logger.Info("offboarding checklist submitted",
		zap.String("exit_form_id", formID),
		zap.Int("item_count", len(req.Items)),
	)

	return mapToResponse(record, int(workflow.StatusPendingPayroll)), nil
}

func (s *service) GetByForm(ctx context.Context, sess workflow.Session, formID string) (OffboardingResponse, error) {
	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return OffboardingResponse{}, err
	}
	if !workflow.CanView(sess, ref) {
		return OffboardingResponse{}, offboardingerrors.ErrNotViewable
	}

	record, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OffboardingResponse{}, offboardingerrors.ErrChecklistNotFound
		}
		return OffboardingResponse{}, err
	}
	return mapToResponse(record, int(ref.Status)), nil
}

func mapToResponse(record *OffboardingChecklist, formStatus int) OffboardingResponse {
	submittedAt := record.UpdatedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	return OffboardingResponse{
		ID:          record.ID.String(),
		ExitFormID:  record.ExitFormID.String(),
		Items:       unpackItems(record.OffboardingData),
		CompletedBy: record.CompletedBy.String(),
		SubmittedAt: submittedAt.UTC().Format(time.RFC3339),
		FormStatus:  formStatus,
	}
}
