package exitworkflow

import (
	"context"
	"errors"

	"go-exitflow/internal/assetclearance"
	"go-exitflow/internal/employee"
	"go-exitflow/internal/exitform"
	exitworkflowerrors "go-exitflow/internal/exitworkflow/errors"
	"go-exitflow/internal/finalapproval"
	"go-exitflow/internal/hrreview"
	"go-exitflow/internal/managerreview"
	"go-exitflow/internal/offboarding"
	"go-exitflow/internal/payrollcheck"
	"go-exitflow/internal/shared/apperror"
	"go-exitflow/internal/workflow"

	"go.uber.org/zap"
)

// HRRound2Stage tags the round-2 verification slot in the composed view. It
// shares the offboarding status window, so it is a view label rather than a
// workflow.Stage of its own.
const HRRound2Stage = "HR_ROUND_2"

// Steps on the 8-node progress bar.
const (
	StepRequest       = 1
	StepManager       = 2
	StepHRRound1      = 3
	StepSysAdmin      = 4
	StepOffboarding   = 5
	StepPayroll       = 6
	StepFinalApproval = 7
	StepApproved      = 8
)

// Narrow read views of the stage services; satisfied by their full Service
// interfaces.
type managerReviewReader interface {
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (managerreview.ManagerReviewResponse, error)
}

type hrReviewReader interface {
	GetByFormAndRound(ctx context.Context, sess workflow.Session, formID string, round int) (hrreview.HRReviewResponse, error)
}

type assetClearanceReader interface {
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (assetclearance.AssetClearanceResponse, error)
}

type offboardingReader interface {
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (offboarding.OffboardingResponse, error)
}

type payrollCheckReader interface {
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (payrollcheck.PayrollCheckResponse, error)
}

type finalApprovalReader interface {
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (finalapproval.FinalApprovalResponse, error)
}

type Service interface {
	GetWorkflow(ctx context.Context, sess workflow.Session, formID string) (WorkflowView, error)
	NavigateToStep(ctx context.Context, sess workflow.Session, formID string, step int) (StepView, error)
}

type service struct {
	forms          exitform.Service
	employees      employee.Repository
	managerReviews managerReviewReader
	hrReviews      hrReviewReader
	clearances     assetClearanceReader
	checklists     offboardingReader
	payrollChecks  payrollCheckReader
	approvals      finalApprovalReader
	logger         *zap.Logger
}

func NewService(
	forms exitform.Service,
	employees employee.Repository,
	managerReviews managerReviewReader,
	hrReviews hrReviewReader,
	clearances assetClearanceReader,
	checklists offboardingReader,
	payrollChecks payrollCheckReader,
	approvals finalApprovalReader,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("exitworkflow.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("exitworkflow.service")
	}
	return &service{
		forms:          forms,
		employees:      employees,
		managerReviews: managerReviews,
		hrReviews:      hrReviews,
		clearances:     clearances,
		checklists:     checklists,
		payrollChecks:  payrollChecks,
		approvals:      approvals,
		logger:         l,
	}
}

func isNotFound(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == apperror.CodeNotFound
}

// fetchStage loads one stage record, treating "nothing submitted yet" as an
// empty slot rather than an error.
func fetchStage(stage string, step int, load func() (any, error)) (StageRecord, error) {
	record := StageRecord{Stage: stage, Step: step}
	data, err := load()
	if err != nil {
		if isNotFound(err) {
			return record, nil
		}
		return record, err
	}
	record.Submitted = true
	record.Data = data
	return record, nil
}

func (s *service) collectStages(ctx context.Context, sess workflow.Session, formID string) ([]StageRecord, error) {
	loaders := []struct {
		stage string
		step  int
		load  func() (any, error)
	}{
		{string(workflow.StageManagerReview), StepManager, func() (any, error) {
			return s.managerReviews.GetByForm(ctx, sess, formID)
		}},
		{string(workflow.StageHRRound1), StepHRRound1, func() (any, error) {
			return s.hrReviews.GetByFormAndRound(ctx, sess, formID, hrreview.RoundOne)
		}},
		{string(workflow.StageAssetClearance), StepSysAdmin, func() (any, error) {
			return s.clearances.GetByForm(ctx, sess, formID)
		}},
		{HRRound2Stage, StepOffboarding, func() (any, error) {
			return s.hrReviews.GetByFormAndRound(ctx, sess, formID, hrreview.RoundTwo)
		}},
		{string(workflow.StageOffboarding), StepOffboarding, func() (any, error) {
			return s.checklists.GetByForm(ctx, sess, formID)
		}},
		{string(workflow.StagePayrollChecks), StepPayroll, func() (any, error) {
			return s.payrollChecks.GetByForm(ctx, sess, formID)
		}},
		{string(workflow.StageFinalApproval), StepFinalApproval, func() (any, error) {
			return s.approvals.GetByForm(ctx, sess, formID)
		}},
	}

	stages := make([]StageRecord, 0, len(loaders))
	for _, loader := range loaders {
		record, err := fetchStage(loader.stage, loader.step, loader.load)
		if err != nil {
			return nil, err
		}
		stages = append(stages, record)
	}
	return stages, nil
}

func (s *service) GetWorkflow(ctx context.Context, sess workflow.Session, formID string) (WorkflowView, error) {
	form, err := s.forms.GetByID(ctx, sess, formID)
	if err != nil {
		return WorkflowView{}, err
	}
	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return WorkflowView{}, err
	}

	hasReports, err := s.employees.HasDirectReports(ctx, sess.EmployeeID)
	if err != nil {
		s.logger.Warn("direct reports lookup failed, assuming none",
			zap.String("employee_id", sess.EmployeeID),
			zap.Error(err),
		)
		hasReports = false
	}
	caps := workflow.Resolve(sess, ref, hasReports)

	stages, err := s.collectStages(ctx, sess, formID)
	if err != nil {
		return WorkflowView{}, err
	}

	view := WorkflowView{
		Form:              form,
		Status:            int(ref.Status),
		StatusLabel:       ref.Status.String(),
		Terminal:          ref.Status.Terminal(),
		Blocked:           ref.Status.Blocked(),
		CurrentStage:      string(ref.Status.Stage()),
		ProgressStep:      ref.Status.ProgressStep(),
		ProgressSteps:     workflow.ProgressSteps,
		OwnerProgressStep: ref.Status.OwnerProgressStep(),
		Capabilities:      caps,
		Stages:            stages,
	}

	// Auto-open: if the viewer is the acting role for the exact current
	// status, surface that stage's editor along with whether a record is
	// already there (the read-only-after-submit path).
	currentStage := ref.Status.Stage()
	if currentStage != workflow.StageNone && workflow.CanEditStage(sess, ref, currentStage, false, false) {
		view.ActiveStage = string(currentStage)
		for _, record := range stages {
			if record.Stage == string(currentStage) {
				view.ActiveStageHasRecord = record.Submitted
				break
			}
		}
	}

	return view, nil
}

func stageForStep(step int) (string, bool) {
	switch step {
	case StepManager:
		return string(workflow.StageManagerReview), true
	case StepHRRound1:
		return string(workflow.StageHRRound1), true
	case StepSysAdmin:
		return string(workflow.StageAssetClearance), true
	case StepOffboarding:
		return string(workflow.StageOffboarding), true
	case StepPayroll:
		return string(workflow.StagePayrollChecks), true
	case StepFinalApproval:
		return string(workflow.StageFinalApproval), true
	}
	return "", false
}

// NavigateToStep resolves a progress-bar click. Steps past the form's current
// position are refused with a user-visible message; reachable steps render
// read-only unless the viewer is the acting role for that exact status.
func (s *service) NavigateToStep(ctx context.Context, sess workflow.Session, formID string, step int) (StepView, error) {
	if step < 1 || step > workflow.ProgressSteps {
		return StepView{}, exitworkflowerrors.ErrInvalidStep
	}

	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return StepView{}, err
	}
	if !workflow.CanView(sess, ref) {
		return StepView{}, exitworkflowerrors.ErrNotViewable
	}
	if !workflow.NavigableStep(sess, ref, step) {
		return StepView{}, exitworkflowerrors.ErrStepNotReachable
	}

	switch step {
	case StepRequest:
		form, err := s.forms.GetByID(ctx, sess, formID)
		if err != nil {
			return StepView{}, err
		}
		return StepView{
			Step:     step,
			Stage:    "EXIT_REQUEST",
			ReadOnly: ref.Status != workflow.StatusPendingManager || ref.EmployeeID != sess.EmployeeID,
			Record:   StageRecord{Stage: "EXIT_REQUEST", Step: step, Submitted: true, Data: form},
		}, nil
	case StepApproved:
		return StepView{
			Step:     step,
			Stage:    "APPROVED",
			ReadOnly: true,
			Record:   StageRecord{Stage: "APPROVED", Step: step, Submitted: ref.Status == workflow.StatusCompleted},
		}, nil
	}

	stage, _ := stageForStep(step)
	stages, err := s.collectStages(ctx, sess, formID)
	if err != nil {
		return StepView{}, err
	}

	var record StageRecord
	for _, candidate := range stages {
		if candidate.Stage == stage {
			record = candidate
			break
		}
	}

	editable := workflow.CanEditStage(sess, ref, workflow.Stage(stage), record.Submitted, false)
	return StepView{
		Step:     step,
		Stage:    stage,
		ReadOnly: !editable,
		Record:   record,
	}, nil
}
