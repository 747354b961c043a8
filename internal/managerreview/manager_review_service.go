package managerreview

import (
	"context"
	"database/sql"
	"errors"
	"time"

	managerreviewerrors "go-exitflow/internal/managerreview/errors"
	"go-exitflow/internal/shared/apperror"
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
	Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitManagerReviewRequest, editMode bool) (ManagerReviewResponse, error)
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (ManagerReviewResponse, error)
}

type service struct {
	repo   Repository
	forms  FormService
	logger *zap.Logger
}

func NewService(repo Repository, forms FormService, logger ...*zap.Logger) Service {
	l := zap.L().Named("managerreview.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("managerreview.service")
	}
	return &service{repo: repo, forms: forms, logger: l}
}

func transitionFor(action string) (workflow.Status, bool) {
	switch action {
	case ActionApprove:
		return workflow.StatusPendingHRRound1, true
	case ActionReject:
		return workflow.StatusRejectedByManager, true
	case ActionOnHold:
		return workflow.StatusOnHoldByManager, true
	}
	return 0, false
}

func validateComments(req SubmitManagerReviewRequest) error {
	// A checked assessment without a comment is not reviewable evidence
	if req.PerformanceSatisfactory && req.PerformanceComment == "" {
		return managerreviewerrors.ErrCommentRequired
	}
	if req.KnowledgeTransferComplete && req.KnowledgeTransferComment == "" {
		return managerreviewerrors.ErrCommentRequired
	}
	if req.NoticePeriodServed && req.NoticePeriodComment == "" {
		return managerreviewerrors.ErrCommentRequired
	}
	return nil
}

func (s *service) Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitManagerReviewRequest, editMode bool) (ManagerReviewResponse, error) {
	to, ok := transitionFor(req.Action)
	if !ok {
		return ManagerReviewResponse{}, managerreviewerrors.ErrInvalidAction
	}
	if err := validateComments(req); err != nil {
		return ManagerReviewResponse{}, err
	}

	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return ManagerReviewResponse{}, err
	}
	if ref.Status.Stage() != workflow.StageManagerReview {
		return ManagerReviewResponse{}, managerreviewerrors.ErrWrongStage
	}

	hasExisting, err := s.repo.ExistsForForm(ctx, formID)
	if err != nil {
		return ManagerReviewResponse{}, err
	}
	if !workflow.CanEditStage(sess, ref, workflow.StageManagerReview, hasExisting, editMode) {
		if hasExisting && !editMode {
			return ManagerReviewResponse{}, managerreviewerrors.ErrAlreadySubmitted
		}
		return ManagerReviewResponse{}, managerreviewerrors.ErrNotStageActor
	}

	reviewedBy, err := uuid.Parse(sess.EmployeeID)
	if err != nil {
		return ManagerReviewResponse{}, apperror.ErrUnauthorized
	}
	formUUID, err := uuid.Parse(ref.ID)
	if err != nil {
		return ManagerReviewResponse{}, apperror.ErrInternal
	}

	review := &ManagerReview{
		ID:                        uuid.New(),
		ExitFormID:                formUUID,
		PerformanceSatisfactory:   req.PerformanceSatisfactory,
		PerformanceComment:        req.PerformanceComment,
		KnowledgeTransferComplete: req.KnowledgeTransferComplete,
		KnowledgeTransferComment:  req.KnowledgeTransferComment,
		NoticePeriodServed:        req.NoticePeriodServed,
		NoticePeriodComment:       req.NoticePeriodComment,
		Action:                    req.Action,
		ReviewedBy:                reviewedBy,
	}

	if err := s.repo.Upsert(ctx, review); err != nil {
		s.logger.Error("manager review persist failed",
			zap.String("exit_form_id", formID),
			zap.Error(err),
		)
		return ManagerReviewResponse{}, err
	}

	// The review record is already durable at this point. A failure below
	// leaves the form stuck at its old status, which is the partial-failure
	// case callers must be able to distinguish from a validation error.
	if err := s.forms.AdvanceStatus(ctx, formID, ref.Status, to, sess.EmployeeID); err != nil {
		s.logger.Error("manager review saved but status advance failed",
			zap.String("exit_form_id", formID),
			zap.Int("from", int(ref.Status)),
			zap.Int("to", int(to)),
			zap.Error(err),
		)
		return ManagerReviewResponse{}, apperror.StatusAdvanceFailed(err)
	}

	s.logger.Info("manager review submitted",
		zap.String("exit_form_id", formID),
		zap.String("action", req.Action),
		zap.Int("new_status", int(to)),
	)

	return mapToResponse(review, int(to)), nil
}

func (s *service) GetByForm(ctx context.Context, sess workflow.Session, formID string) (ManagerReviewResponse, error) {
	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return ManagerReviewResponse{}, err
	}
	if !workflow.CanView(sess, ref) {
		return ManagerReviewResponse{}, managerreviewerrors.ErrNotViewable
	}

	review, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ManagerReviewResponse{}, managerreviewerrors.ErrReviewNotFound
		}
		return ManagerReviewResponse{}, err
	}
	return mapToResponse(review, int(ref.Status)), nil
}

func mapToResponse(review *ManagerReview, formStatus int) ManagerReviewResponse {
	submittedAt := review.UpdatedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	return ManagerReviewResponse{
		ID:                        review.ID.String(),
		ExitFormID:                review.ExitFormID.String(),
		PerformanceSatisfactory:   review.PerformanceSatisfactory,
		PerformanceComment:        review.PerformanceComment,
		KnowledgeTransferComplete: review.KnowledgeTransferComplete,
		KnowledgeTransferComment:  review.KnowledgeTransferComment,
		NoticePeriodServed:        review.NoticePeriodServed,
		NoticePeriodComment:       review.NoticePeriodComment,
		Action:                    review.Action,
		ReviewedBy:                review.ReviewedBy.String(),
		SubmittedAt:               submittedAt.UTC().Format(time.RFC3339),
		FormStatus:                formStatus,
	}
}
