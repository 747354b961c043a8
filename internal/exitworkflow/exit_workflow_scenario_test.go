package exitworkflow

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"go-exitflow/internal/assetclearance"
	"go-exitflow/internal/exitform"
	"go-exitflow/internal/finalapproval"
	"go-exitflow/internal/hrreview"
	"go-exitflow/internal/managerreview"
	"go-exitflow/internal/offboarding"
	"go-exitflow/internal/payrollcheck"
	"go-exitflow/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// anchor is a stateful stand-in for the exit form service: the guarded status
// flip actually mutates, so a chain of stage submissions sequences for real.
type anchor struct {
	ref workflow.FormRef
}

func (a *anchor) GetRef(ctx context.Context, id string) (workflow.FormRef, error) {
	return a.ref, nil
}

func (a *anchor) AdvanceStatus(ctx context.Context, id string, from, to workflow.Status, actorID string) error {
	if a.ref.Status != from {
		return fmt.Errorf("transition %d -> %d against current status %d", from, to, a.ref.Status)
	}
	a.ref.Status = to
	return nil
}

func (a *anchor) ReviseNotice(ctx context.Context, id string, noticeEnd time.Time, from workflow.Status, actorID string) error {
	return fmt.Errorf("unexpected notice revision")
}

// In-memory stage repositories.

type memManagerReviews struct{ rec *managerreview.ManagerReview }

func (m *memManagerReviews) WithTx(tx *sql.Tx) managerreview.Repository { return m }
func (m *memManagerReviews) Upsert(ctx context.Context, r *managerreview.ManagerReview) error {
	m.rec = r
	return nil
}
func (m *memManagerReviews) FindByFormID(ctx context.Context, id string) (*managerreview.ManagerReview, error) {
	if m.rec == nil {
		return nil, sql.ErrNoRows
	}
	return m.rec, nil
}
func (m *memManagerReviews) ExistsForForm(ctx context.Context, id string) (bool, error) {
	return m.rec != nil, nil
}

type memHRReviews struct{ byRound map[int]*hrreview.HRReview }

func (m *memHRReviews) WithTx(tx *sql.Tx) hrreview.Repository { return m }
func (m *memHRReviews) Upsert(ctx context.Context, r *hrreview.HRReview) error {
	m.byRound[r.VerificationRound] = r
	return nil
}
func (m *memHRReviews) FindByFormAndRound(ctx context.Context, id string, round int) (*hrreview.HRReview, error) {
	if rec, ok := m.byRound[round]; ok {
		return rec, nil
	}
	return nil, sql.ErrNoRows
}
func (m *memHRReviews) ListByForm(ctx context.Context, id string) ([]hrreview.HRReview, error) {
	out := make([]hrreview.HRReview, 0, len(m.byRound))
	for _, rec := range m.byRound {
		out = append(out, *rec)
	}
	return out, nil
}
func (m *memHRReviews) ExistsForFormAndRound(ctx context.Context, id string, round int) (bool, error) {
	_, ok := m.byRound[round]
	return ok, nil
}

type memClearances struct {
	rec *assetclearance.AssetClearance
}

func (m *memClearances) WithTx(tx *sql.Tx) assetclearance.Repository { return m }
func (m *memClearances) Upsert(ctx context.Context, r *assetclearance.AssetClearance) error {
	m.rec = r
	return nil
}
func (m *memClearances) FindByFormID(ctx context.Context, id string) (*assetclearance.AssetClearance, error) {
	if m.rec == nil {
		return nil, sql.ErrNoRows
	}
	return m.rec, nil
}
func (m *memClearances) ExistsForForm(ctx context.Context, id string) (bool, error) {
	return m.rec != nil, nil
}

type memChecklists struct {
	rec *offboarding.OffboardingChecklist
}

func (m *memChecklists) WithTx(tx *sql.Tx) offboarding.Repository { return m }
func (m *memChecklists) Upsert(ctx context.Context, r *offboarding.OffboardingChecklist) error {
	m.rec = r
	return nil
}
func (m *memChecklists) FindByFormID(ctx context.Context, id string) (*offboarding.OffboardingChecklist, error) {
	if m.rec == nil {
		return nil, sql.ErrNoRows
	}
	return m.rec, nil
}
func (m *memChecklists) ExistsForForm(ctx context.Context, id string) (bool, error) {
	return m.rec != nil, nil
}

type memPayrollChecks struct{ rec *payrollcheck.PayrollCheck }

func (m *memPayrollChecks) WithTx(tx *sql.Tx) payrollcheck.Repository { return m }
func (m *memPayrollChecks) Upsert(ctx context.Context, r *payrollcheck.PayrollCheck) error {
	m.rec = r
	return nil
}
func (m *memPayrollChecks) FindByFormID(ctx context.Context, id string) (*payrollcheck.PayrollCheck, error) {
	if m.rec == nil {
		return nil, sql.ErrNoRows
	}
	return m.rec, nil
}
func (m *memPayrollChecks) ExistsForForm(ctx context.Context, id string) (bool, error) {
	return m.rec != nil, nil
}

type memApprovals struct{ rec *finalapproval.FinalApproval }

func (m *memApprovals) WithTx(tx *sql.Tx) finalapproval.Repository { return m }
func (m *memApprovals) Upsert(ctx context.Context, r *finalapproval.FinalApproval) error {
	m.rec = r
	return nil
}
func (m *memApprovals) FindByFormID(ctx context.Context, id string) (*finalapproval.FinalApproval, error) {
	if m.rec == nil {
		return nil, sql.ErrNoRows
	}
	return m.rec, nil
}
func (m *memApprovals) ExistsForForm(ctx context.Context, id string) (bool, error) {
	return m.rec != nil, nil
}

func hrVerification(round int) hrreview.SubmitHRReviewRequest {
	return hrreview.SubmitHRReviewRequest{
		Round:                     round,
		NoticePeriodVerified:      true,
		NoticePeriodComment:       "dates confirmed",
		LeaveBalanceSettled:       true,
		LeaveBalanceComment:       "balance settled",
		PolicyComplianceConfirmed: true,
		PolicyComplianceComment:   "no open cases",
		ExitEligibilityConfirmed:  true,
		ExitEligibilityComment:    "eligible",
		Action:                    hrreview.ActionApprove,
	}
}

// TestWorkflow_HappyPathEndToEnd runs one exit form through every stage in
// order, actor by actor, and then reads the composed view back.
func TestWorkflow_HappyPathEndToEnd(t *testing.T) {
	ctx := context.Background()
	managerID := uuid.New().String()
	a := &anchor{ref: workflow.FormRef{
		ID:                 uuid.New().String(),
		EmployeeID:         uuid.New().String(),
		ReportingManagerID: managerID,
		Status:             workflow.StatusPendingManager,
	}}

	managerReviews := &memManagerReviews{}
	hrReviews := &memHRReviews{byRound: map[int]*hrreview.HRReview{}}
	clearances := &memClearances{}
	checklists := &memChecklists{}
	payrollChecks := &memPayrollChecks{}
	approvals := &memApprovals{}

	managerReviewSvc := managerreview.NewService(managerReviews, a)
	hrReviewSvc := hrreview.NewService(hrReviews, a)
	clearanceSvc := assetclearance.NewService(clearances, a)
	offboardingSvc := offboarding.NewService(checklists, a)
	payrollSvc := payrollcheck.NewService(payrollChecks, a)
	approvalSvc := finalapproval.NewService(approvals, a)

	manager := workflow.Session{EmployeeID: managerID, Role: workflow.RoleManager}
	hr := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleHR}
	sysadmin := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleSystemAdmin}
	payroll := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RolePayroll}

	_, err := managerReviewSvc.Submit(ctx, manager, a.ref.ID, managerreview.SubmitManagerReviewRequest{
		PerformanceSatisfactory:   true,
		PerformanceComment:        "solid delivery",
		KnowledgeTransferComplete: true,
		KnowledgeTransferComment:  "handover reviewed",
		NoticePeriodServed:        true,
		NoticePeriodComment:       "full notice",
		Action:                    managerreview.ActionApprove,
	}, false)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusPendingHRRound1, a.ref.Status)

	_, err = hrReviewSvc.Submit(ctx, hr, a.ref.ID, hrVerification(hrreview.RoundOne), false)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusPendingAssetClearance, a.ref.Status)

	_, err = clearanceSvc.Submit(ctx, sysadmin, a.ref.ID, assetclearance.SubmitAssetClearanceRequest{
		Items: []assetclearance.AssetItem{
			{Label: "Laptop", Condition: assetclearance.ConditionGood, Comment: "returned"},
			{Label: "Laptop Charger", Condition: assetclearance.ConditionGood, Comment: ""},
		},
	}, false)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusPendingOffboarding, a.ref.Status)

	// Round 2 is record-only: the status stays with the offboarding window.
	_, err = hrReviewSvc.Submit(ctx, hr, a.ref.ID, hrVerification(hrreview.RoundTwo), false)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusPendingOffboarding, a.ref.Status)

	_, err = offboardingSvc.Submit(ctx, hr, a.ref.ID, offboarding.SubmitOffboardingRequest{
		Items: []offboarding.ChecklistItem{
			{Label: "ID Card", Checked: true, Comment: "collected"},
			{Label: "Access Card", Checked: true, Comment: "deactivated"},
		},
	}, false)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusPendingPayroll, a.ref.Status)

	_, err = payrollSvc.Submit(ctx, payroll, a.ref.ID, payrollcheck.SubmitPayrollCheckRequest{
		Items: []payrollcheck.ChecklistItem{
			{Label: "Final Salary Processed", Checked: true, Comment: "final cycle run"},
			{Label: "Expense Claims Cleared", Checked: true, Comment: "no open claims"},
		},
	}, false)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusPendingFinalApproval, a.ref.Status)

	items := make([]finalapproval.ApprovalItem, len(finalapproval.RequiredItems))
	for i, label := range finalapproval.RequiredItems {
		items[i] = finalapproval.ApprovalItem{Label: label, Checked: true, Comment: "verified"}
	}
	_, err = approvalSvc.Submit(ctx, hr, a.ref.ID, finalapproval.SubmitFinalApprovalRequest{
		Items:   items,
		Remarks: "all obligations met, cleared for relieving",
		Action:  finalapproval.ActionApprove,
	}, false)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusCompleted, a.ref.Status)

	// The composed view reflects every submission.
	forms := &fakeForms{
		getByIDFn: func(ctx context.Context, sess workflow.Session, id string) (exitform.ExitFormResponse, error) {
			return exitform.ExitFormResponse{ID: a.ref.ID, Status: int(a.ref.Status)}, nil
		},
		getRefFn: func(ctx context.Context, id string) (workflow.FormRef, error) {
			return a.ref, nil
		},
	}
	svc := NewService(forms, &fakeEmployees{}, managerReviewSvc, hrReviewSvc, clearanceSvc, offboardingSvc, payrollSvc, approvalSvc)

	view, err := svc.GetWorkflow(ctx, hr, a.ref.ID)
	assert.NoError(t, err)
	assert.Equal(t, int(workflow.StatusCompleted), view.Status)
	assert.Equal(t, "Approved & Completed", view.StatusLabel)
	assert.True(t, view.Terminal)
	assert.False(t, view.Blocked)
	assert.Equal(t, workflow.ProgressSteps, view.ProgressStep)
	for _, record := range view.Stages {
		assert.True(t, record.Submitted, record.Stage)
	}
}
