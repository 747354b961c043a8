package hrreview

import (
	"context"
	"database/sql"
	"errors"
	"time"

	hrreviewerrors "go-exitflow/internal/hrreview/errors"
	"go-exitflow/internal/shared/apperror"
	"go-exitflow/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FormService is the slice of the exit-form service this stage needs.
// ReviseNotice backs the REVISE_LWD outcome.
type FormService interface {
	GetRef(ctx context.Context, id string) (workflow.FormRef, error)
	AdvanceStatus(ctx context.Context, id string, from, to workflow.Status, actorID string) error
	ReviseNotice(ctx context.Context, id string, noticeEnd time.Time, from workflow.Status, actorID string) error
}

type Service interface {
	Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitHRReviewRequest, editMode bool) (HRReviewResponse, error)
	GetByFormAndRound(ctx context.Context, sess workflow.Session, formID string, round int) (HRReviewResponse, error)
	ListByForm(ctx context.Context, sess workflow.Session, formID string) ([]HRReviewResponse, error)
}

type service struct {
	repo   Repository
	forms  FormService
	logger *zap.Logger
}

func NewService(repo Repository, forms FormService, logger ...*zap.Logger) Service {
	l := zap.L().Named("hrreview.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hrreview.service")
	}
	return &service{repo: repo, forms: forms, logger: l}
}

// roundStage maps a verification round to the workflow stage whose status
// window it belongs to. Round 2 shares the offboarding window: the checklist
// submit owns the 3->4 advance, so an approving round 2 review is record-only.
func roundStage(round int) (workflow.Stage, bool) {
	switch round {
	case RoundOne:
		return workflow.StageHRRound1, true
	case RoundTwo:
		return workflow.StageOffboarding, true
	}
	return workflow.StageNone, false
}

func validateComments(req SubmitHRReviewRequest) error {
	checked := []struct {
		on      bool
		comment string
	}{
		{req.NoticePeriodVerified, req.NoticePeriodComment},
		{req.LeaveBalanceSettled, req.LeaveBalanceComment},
		{req.PolicyComplianceConfirmed, req.PolicyComplianceComment},
		{req.ExitEligibilityConfirmed, req.ExitEligibilityComment},
	}
	for _, item := range checked {
		if item.on && item.comment == "" {
			return hrreviewerrors.ErrCommentRequired
		}
	}
	return nil
}

func (s *service) Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitHRReviewRequest, editMode bool) (HRReviewResponse, error) {
	stage, ok := roundStage(req.Round)
	if !ok {
		return HRReviewResponse{}, hrreviewerrors.ErrInvalidRound
	}
	if err := validateComments(req); err != nil {
		return HRReviewResponse{}, err
	}

	var revisedEnd *time.Time
	if req.Action == ActionReviseLWD {
		if req.RevisedNoticeEndDate == "" {
			return HRReviewResponse{}, hrreviewerrors.ErrRevisedDateRequired
		}
		t, err := time.Parse("2006-01-02", req.RevisedNoticeEndDate)
		if err != nil {
			return HRReviewResponse{}, hrreviewerrors.ErrInvalidRevisedDate
		}
		revisedEnd = &t
	}

	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return HRReviewResponse{}, err
	}
	if ref.Status.Stage() != stage {
		return HRReviewResponse{}, hrreviewerrors.ErrWrongStage
	}

	hasExisting, err := s.repo.ExistsForFormAndRound(ctx, formID, req.Round)
	if err != nil {
		return HRReviewResponse{}, err
	}
	if !workflow.CanEditStage(sess, ref, stage, hasExisting, editMode) {
		if hasExisting && !editMode {
			return HRReviewResponse{}, hrreviewerrors.ErrAlreadySubmitted
		}
		return HRReviewResponse{}, hrreviewerrors.ErrNotStageActor
	}

	reviewedBy, err := uuid.Parse(sess.EmployeeID)
	if err != nil {
		return HRReviewResponse{}, apperror.ErrUnauthorized
	}
	formUUID, err := uuid.Parse(ref.ID)
	if err != nil {
		return HRReviewResponse{}, apperror.ErrInternal
	}

	review := &HRReview{
		ID:                        uuid.New(),
		ExitFormID:                formUUID,
		VerificationRound:         req.Round,
		NoticePeriodVerified:      req.NoticePeriodVerified,
		NoticePeriodComment:       req.NoticePeriodComment,
		LeaveBalanceSettled:       req.LeaveBalanceSettled,
		LeaveBalanceComment:       req.LeaveBalanceComment,
		PolicyComplianceConfirmed: req.PolicyComplianceConfirmed,
		PolicyComplianceComment:   req.PolicyComplianceComment,
		ExitEligibilityConfirmed:  req.ExitEligibilityConfirmed,
		ExitEligibilityComment:    req.ExitEligibilityComment,
		Action:                    req.Action,
		RevisedNoticeEnd:          revisedEnd,
		ReviewedBy:                reviewedBy,
	}

	if err := s.repo.Upsert(ctx, review); err != nil {
		s.logger.Error("hr review persist failed",
			zap.String("exit_form_id", formID),
			zap.Int("round", req.Round),
			zap.Error(err),
		)
		return HRReviewResponse{}, err
	}

	newStatus, err := s.applyOutcome(ctx, ref, req, revisedEnd, sess.EmployeeID)
	if err != nil {
		s.logger.Error("hr review saved but status advance failed",
			zap.String("exit_form_id", formID),
			zap.Int("round", req.Round),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return HRReviewResponse{}, apperror.StatusAdvanceFailed(err)
	}

	s.logger.Info("hr review submitted",
		zap.String("exit_form_id", formID),
		zap.Int("round", req.Round),
		zap.String("action", req.Action),
		zap.Int("new_status", int(newStatus)),
	)

	return mapToResponse(review, int(newStatus)), nil
}

// applyOutcome runs the status side of a submitted review and returns the
// resulting form status.
func (s *service) applyOutcome(ctx context.Context, ref workflow.FormRef, req SubmitHRReviewRequest, revisedEnd *time.Time, actorID string) (workflow.Status, error) {
	switch req.Action {
	case ActionApprove:
		if req.Round == RoundOne {
			if err := s.forms.AdvanceStatus(ctx, ref.ID, ref.Status, workflow.StatusPendingAssetClearance, actorID); err != nil {
				return ref.Status, err
			}
			return workflow.StatusPendingAssetClearance, nil
		}
		// Round 2 approval is record-only; the offboarding checklist
		// submit carries the 3->4 transition.
		return ref.Status, nil
	case ActionReject:
		if err := s.forms.AdvanceStatus(ctx, ref.ID, ref.Status, workflow.StatusRejectedByHR, actorID); err != nil {
			return ref.Status, err
		}
		return workflow.StatusRejectedByHR, nil
	case ActionOnHold:
		if err := s.forms.AdvanceStatus(ctx, ref.ID, ref.Status, workflow.StatusOnHoldByHR, actorID); err != nil {
			return ref.Status, err
		}
		return workflow.StatusOnHoldByHR, nil
	case ActionReviseLWD:
		if err := s.forms.ReviseNotice(ctx, ref.ID, *revisedEnd, ref.Status, actorID); err != nil {
			return ref.Status, err
		}
		return workflow.StatusPendingManager, nil
	}
	return ref.Status, hrreviewerrors.ErrInvalidRound
}

func (s *service) GetByFormAndRound(ctx context.Context, sess workflow.Session, formID string, round int) (HRReviewResponse, error) {
	if _, ok := roundStage(round); !ok {
		return HRReviewResponse{}, hrreviewerrors.ErrInvalidRound
	}

	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return HRReviewResponse{}, err
	}
	if !workflow.CanView(sess, ref) {
		return HRReviewResponse{}, hrreviewerrors.ErrNotViewable
	}

	review, err := s.repo.FindByFormAndRound(ctx, formID, round)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return HRReviewResponse{}, hrreviewerrors.ErrReviewNotFound
		}
		return HRReviewResponse{}, err
	}
	return mapToResponse(review, int(ref.Status)), nil
}

func (s *service) ListByForm(ctx context.Context, sess workflow.Session, formID string) ([]HRReviewResponse, error) {
	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanView(sess, ref) {
		return nil, hrreviewerrors.ErrNotViewable
	}

	reviews, err := s.repo.ListByForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	resp := make([]HRReviewResponse, len(reviews))
	for i := range reviews {
		resp[i] = mapToResponse(&reviews[i], int(ref.Status))
	}
	return resp, nil
}

func mapToResponse(review *HRReview, formStatus int) HRReviewResponse {
	submittedAt := review.UpdatedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	resp := HRReviewResponse{
		ID:                        review.ID.String(),
		ExitFormID:                review.ExitFormID.String(),
		VerificationRound:         review.VerificationRound,
		NoticePeriodVerified:      review.NoticePeriodVerified,
		NoticePeriodComment:       review.NoticePeriodComment,
		LeaveBalanceSettled:       review.LeaveBalanceSettled,
		LeaveBalanceComment:       review.LeaveBalanceComment,
		PolicyComplianceConfirmed: review.PolicyComplianceConfirmed,
		PolicyComplianceComment:   review.PolicyComplianceComment,
		ExitEligibilityConfirmed:  review.ExitEligibilityConfirmed,
		ExitEligibilityComment:    review.ExitEligibilityComment,
		Action:                    review.Action,
		ReviewedBy:                review.ReviewedBy.String(),
		SubmittedAt:               submittedAt.UTC().Format(time.RFC3339),
		FormStatus:                formStatus,
	}
	if review.RevisedNoticeEnd != nil {
		resp.RevisedNoticeEndDate = review.RevisedNoticeEnd.Format("2006-01-02")
	}
	return resp
}
