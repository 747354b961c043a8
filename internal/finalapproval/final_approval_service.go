package finalapproval

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	finalapprovalerrors "go-exitflow/internal/finalapproval/errors"
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
	Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitFinalApprovalRequest, editMode bool) (FinalApprovalResponse, error)
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (FinalApprovalResponse, error)
}

type service struct {
	repo   Repository
	forms  FormService
	logger *zap.Logger
}

func NewService(repo Repository, forms FormService, logger ...*zap.Logger) Service {
	l := zap.L().Named("finalapproval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("finalapproval.service")
	}
	return &service{repo: repo, forms: forms, logger: l}
}

// validateItems enforces the terminal-stage gate: exactly the eight required
// labels, every one checked, every one commented. An approving submit with
// anything missing never reaches the repository.
func validateItems(items []ApprovalItem, action string) error {
	if len(items) != len(RequiredItems) {
		return finalapprovalerrors.ErrIncompleteChecklist
	}

	byLabel := make(map[string]ApprovalItem, len(items))
	for _, item := range items {
		if strings.Contains(item.Comment, "#") || strings.Contains(item.Comment, "||") {
			return finalapprovalerrors.ErrReservedCharacters
		}
		byLabel[item.Label] = item
	}

	for _, label := range RequiredItems {
		item, ok := byLabel[label]
		if !ok {
			return finalapprovalerrors.ErrUnknownItem
		}
		if action == ActionApprove && (!item.Checked || item.Comment == "") {
			return finalapprovalerrors.ErrIncompleteChecklist
		}
	}
	return nil
}

func packItems(items []ApprovalItem) string {
	packed := make([]checklist.Item, len(items))
	for i, item := range items {
		state := ""
		if item.Checked {
			state = StateDone
		}
		packed[i] = checklist.Item{Label: item.Label, Status: state, Comment: item.Comment}
	}
	return checklist.Build(packed)
}

func unpackItems(data string) []ApprovalItem {
	parsed := checklist.Parse(data)
	items := make([]ApprovalItem, len(parsed))
	for i, entry := range parsed {
		items[i] = ApprovalItem{
			Label:   entry.Label,
			Checked: entry.Status == StateDone,
			Comment: entry.Comment,
		}
	}
	return items
}

func (s *service) Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitFinalApprovalRequest, editMode bool) (FinalApprovalResponse, error) {
	if strings.TrimSpace(req.Remarks) == "" {
		return FinalApprovalResponse{}, finalapprovalerrors.ErrRemarksRequired
	}
	if err := validateItems(req.Items, req.Action); err != nil {
		return FinalApprovalResponse{}, err
	}

	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return FinalApprovalResponse{}, err
	}
	if ref.Status.Stage() != workflow.StageFinalApproval {
		return FinalApprovalResponse{}, finalapprovalerrors.ErrWrongStage
	}

	hasExisting, err := s.repo.ExistsForForm(ctx, formID)
	if err != nil {
		return FinalApprovalResponse{}, err
	}
	if !workflow.CanEditStage(sess, ref, workflow.StageFinalApproval, hasExisting, editMode) {
		if hasExisting && !editMode {
			return FinalApprovalResponse{}, finalapprovalerrors.ErrAlreadySubmitted
		}
		return FinalApprovalResponse{}, finalapprovalerrors.ErrNotStageActor
	}

	approvedBy, err := uuid.Parse(sess.EmployeeID)
	if err != nil {
		return FinalApprovalResponse{}, apperror.ErrUnauthorized
	}
	formUUID, err := uuid.Parse(ref.ID)
	if err != nil {
		return FinalApprovalResponse{}, apperror.ErrInternal
	}

	record := &FinalApproval{
		ID:           uuid.New(),
		ExitFormID:   formUUID,
		ApprovalData: packItems(req.Items),
		Remarks:      req.Remarks,
		Action:       req.Action,
		ApprovedBy:   approvedBy,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		s.logger.Error("final approval persist failed", zap.String("exit_form_id", formID), zap.Error(err))
		return FinalApprovalResponse{}, err
	}

	to := workflow.StatusCompleted
	if req.Action == ActionReject {
		to = workflow.StatusRejectedByHR
	}
	if err := s.forms.AdvanceStatus(ctx, formID, ref.Status, to, sess.EmployeeID); err != nil {
		s.logger.Error("final approval saved but status advance failed",
			zap.String("exit_form_id", formID),
			zap.Error(err),
		)
		return FinalApprovalResponse{}, apperror.StatusAdvanceFailed(err)
	}

	s.logger.Info("final approval submitted",
		zap.String("exit_form_id", formID),
		zap.String("action", req.Action),
		zap.Int("new_status", int(to)),
	)

	return mapToResponse(record, int(to)), nil
}

func (s *service) GetByForm(ctx context.Context, sess workflow.Session, formID string) (FinalApprovalResponse, error) {
	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return FinalApprovalResponse{}, err
	}
	if !workflow.CanView(sess, ref) {
		return FinalApprovalResponse{}, finalapprovalerrors.ErrNotViewable
	}

	record, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FinalApprovalResponse{}, finalapprovalerrors.ErrApprovalNotFound
		}
		return FinalApprovalResponse{}, err
	}
	return mapToResponse(record, int(ref.Status)), nil
}

func mapToResponse(record *FinalApproval, formStatus int) FinalApprovalResponse {
	submittedAt := record.UpdatedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	return FinalApprovalResponse{
		ID:          record.ID.String(),
		ExitFormID:  record.ExitFormID.String(),
		Items:       unpackItems(record.ApprovalData),
		Remarks:     record.Remarks,
		Action:      record.Action,
		ApprovedBy:  record.ApprovedBy.String(),
		SubmittedAt: submittedAt.UTC().Format(time.RFC3339),
		FormStatus:  formStatus,
	}
}
