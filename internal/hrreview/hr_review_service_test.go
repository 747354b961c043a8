package hrreview

import (
	"context"
	"database/sql"
	"testing"
	"time"

	hrreviewerrors "go-exitflow/internal/hrreview/errors"
	"go-exitflow/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	upsertFn                func(ctx context.Context, review *HRReview) error
	findByFormAndRoundFn    func(ctx context.Context, exitFormID string, round int) (*HRReview, error)
	listByFormFn            func(ctx context.Context, exitFormID string) ([]HRReview, error)
	existsForFormAndRoundFn func(ctx context.Context, exitFormID string, round int) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Upsert(ctx context.Context, review *HRReview) error {
	return f.upsertFn(ctx, review)
}
func (f *fakeRepo) FindByFormAndRound(ctx context.Context, exitFormID string, round int) (*HRReview, error) {
	return f.findByFormAndRoundFn(ctx, exitFormID, round)
}
func (f *fakeRepo) ListByForm(ctx context.Context, exitFormID string) ([]HRReview, error) {
	return f.listByFormFn(ctx, exitFormID)
}
func (f *fakeRepo) ExistsForFormAndRound(ctx context.Context, exitFormID string, round int) (bool, error) {
	return f.existsForFormAndRoundFn(ctx, exitFormID, round)
}

type fakeForms struct {
	getRefFn        func(ctx context.Context, id string) (workflow.FormRef, error)
	advanceStatusFn func(ctx context.Context, id string, from, to workflow.Status, actorID string) error
	reviseNoticeFn  func(ctx context.Context, id string, noticeEnd time.Time, from workflow.Status, actorID string) error
}

func (f *fakeForms) GetRef(ctx context.Context, id string) (workflow.FormRef, error) {
	return f.getRefFn(ctx, id)
}
func (f *fakeForms) AdvanceStatus(ctx context.Context, id string, from, to workflow.Status, actorID string) error {
	return f.advanceStatusFn(ctx, id, from, to, actorID)
}
func (f *fakeForms) ReviseNotice(ctx context.Context, id string, noticeEnd time.Time, from workflow.Status, actorID string) error {
	return f.reviseNoticeFn(ctx, id, noticeEnd, from, actorID)
}

func formAt(status workflow.Status) workflow.FormRef {
	return workflow.FormRef{
		ID:                 uuid.New().String(),
		EmployeeID:         uuid.New().String(),
		ReportingManagerID: uuid.New().String(),
		Status:             status,
	}
}

func hrSession() workflow.Session {
	return workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleHR}
}

func reviewRequest(round int, action string) SubmitHRReviewRequest {
	return SubmitHRReviewRequest{
		Round:                     round,
		NoticePeriodVerified:      true,
		NoticePeriodComment:       "notice dates confirmed against the roster",
		LeaveBalanceSettled:       true,
		LeaveBalanceComment:       "3 days encashed",
		PolicyComplianceConfirmed: true,
		PolicyComplianceComment:   "no open cases",
		ExitEligibilityConfirmed:  true,
		ExitEligibilityComment:    "eligible",
		Action:                    action,
	}
}

func newFakes(form workflow.FormRef) (*fakeRepo, *fakeForms) {
	repo := &fakeRepo{
		upsertFn:                func(ctx context.Context, r *HRReview) error { return nil },
		existsForFormAndRoundFn: func(ctx context.Context, id string, round int) (bool, error) { return false, nil },
	}
	forms := &fakeForms{
		getRefFn: func(ctx context.Context, id string) (workflow.FormRef, error) { return form, nil },
	}
	return repo, forms
}

func TestSubmit_RoundOneApprove(t *testing.T) {
	form := formAt(workflow.StatusPendingHRRound1)
	repo, forms := newFakes(form)

	var advancedTo workflow.Status
	forms.advanceStatusFn = func(ctx context.Context, id string, from, to workflow.Status, actorID string) error {
		assert.Equal(t, workflow.StatusPendingHRRound1, from)
		advancedTo = to
		return nil
	}

	resp, err := NewService(repo, forms).Submit(
		context.Background(), hrSession(), form.ID, reviewRequest(RoundOne, ActionApprove), false,
	)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusPendingAssetClearance, advancedTo)
	assert.Equal(t, int(workflow.StatusPendingAssetClearance), resp.FormStatus)
	assert.Equal(t, RoundOne, resp.VerificationRound)
}

func TestSubmit_RoundTwoApproveIsRecordOnly(t *testing.T) {
	form := formAt(workflow.StatusPendingOffboarding)
	repo, forms := newFakes(form)

	// Any transition attempt would be a regression: the offboarding
	// checklist owns the advance out of this window.
	forms.advanceStatusFn = func(ctx context.Context, id string, from, to workflow.Status, actorID string) error {
		t.Fatalf("unexpected status transition %d -> %d", from, to)
		return nil
	}

	resp, err := NewService(repo, forms).Submit(
		context.Background(), hrSession(), form.ID, reviewRequest(RoundTwo, ActionApprove), false,
	)
	assert.NoError(t, err)
	assert.Equal(t, int(workflow.StatusPendingOffboarding), resp.FormStatus)
}

func TestSubmit_RoundTwoRejectTransitions(t *testing.T) {
	form := formAt(workflow.StatusPendingOffboarding)
	repo, forms := newFakes(form)

	var advancedTo workflow.Status
	forms.advanceStatusFn = func(ctx context.Context, id string, from, to workflow.Status, actorID string) error {
		advancedTo = to
		return nil
	}

	_, err := NewService(repo, forms).Submit(
		context.Background(), hrSession(), form.ID, reviewRequest(RoundTwo, ActionReject), false,
	)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusRejectedByHR, advancedTo)
}

func TestSubmit_ReviseLWDResetsTheForm(t *testing.T) {
	form := formAt(workflow.StatusPendingHRRound1)
	repo, forms := newFakes(form)

	var revisedTo time.Time
	forms.reviseNoticeFn = func(ctx context.Context, id string, noticeEnd time.Time, from workflow.Status, actorID string) error {
		assert.Equal(t, form.ID, id)
		assert.Equal(t, workflow.StatusPendingHRRound1, from)
		revisedTo = noticeEnd
		return nil
	}

	req := reviewRequest(RoundOne, ActionReviseLWD)
	req.RevisedNoticeEndDate = "2026-10-15"

	resp, err := NewService(repo, forms).Submit(context.Background(), hrSession(), form.ID, req, false)
	assert.NoError(t, err)
	assert.Equal(t, "2026-10-15", revisedTo.Format("2006-01-02"))
	assert.Equal(t, int(workflow.StatusPendingManager), resp.FormStatus)
}

func TestSubmit_ReviseLWDRequiresDate(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeForms{})

	req := reviewRequest(RoundOne, ActionReviseLWD)
	req.RevisedNoticeEndDate = ""
	_, err := svc.Submit(context.Background(), hrSession(), uuid.New().String(), req, false)
	assert.ErrorIs(t, err, hrreviewerrors.ErrRevisedDateRequired)

	req.RevisedNoticeEndDate = "15/10/2026"
	_, err = svc.Submit(context.Background(), hrSession(), uuid.New().String(), req, false)
	assert.ErrorIs(t, err, hrreviewerrors.ErrInvalidRevisedDate)
}

func TestSubmit_RoundMismatchesWindow(t *testing.T) {
	// A round 2 review against a form still in the round 1 window.
	form := formAt(workflow.StatusPendingHRRound1)
	_, forms := newFakes(form)

	_, err := NewService(&fakeRepo{}, forms).Submit(
		context.Background(), hrSession(), form.ID, reviewRequest(RoundTwo, ActionApprove), false,
	)
	assert.ErrorIs(t, err, hrreviewerrors.ErrWrongStage)
}

func TestSubmit_CheckedItemNeedsComment(t *testing.T) {
	req := reviewRequest(RoundOne, ActionApprove)
	req.LeaveBalanceComment = ""

	_, err := NewService(&fakeRepo{}, &fakeForms{}).Submit(
		context.Background(), hrSession(), uuid.New().String(), req, false,
	)
	assert.ErrorIs(t, err, hrreviewerrors.ErrCommentRequired)
}

func TestSubmit_RoundsAreIndependentRecords(t *testing.T) {
	form := formAt(workflow.StatusPendingOffboarding)
	repo, forms := newFakes(form)

	// A stored round 1 record must not block the first round 2 submit.
	repo.existsForFormAndRoundFn = func(ctx context.Context, id string, round int) (bool, error) {
		return round == RoundOne, nil
	}

	var saved *HRReview
	repo.upsertFn = func(ctx context.Context, r *HRReview) error { saved = r; return nil }

	_, err := NewService(repo, forms).Submit(
		context.Background(), hrSession(), form.ID, reviewRequest(RoundTwo, ActionApprove), false,
	)
	assert.NoError(t, err)
	assert.Equal(t, RoundTwo, saved.VerificationRound)
}

func TestGetByFormAndRound(t *testing.T) {
	form := formAt(workflow.StatusPendingAssetClearance)
	sess := hrSession()

	stored := &HRReview{
		ID:                uuid.New(),
		ExitFormID:        uuid.MustParse(form.ID),
		VerificationRound: RoundOne,
		Action:            ActionApprove,
		ReviewedBy:        uuid.New(),
	}
	repo := &fakeRepo{
		findByFormAndRoundFn: func(ctx context.Context, id string, round int) (*HRReview, error) {
			assert.Equal(t, RoundOne, round)
			return stored, nil
		},
	}
	forms := &fakeForms{
		getRefFn: func(ctx context.Context, id string) (workflow.FormRef, error) { return form, nil },
	}
	svc := NewService(repo, forms)

	resp, err := svc.GetByFormAndRound(context.Background(), sess, form.ID, RoundOne)
	assert.NoError(t, err)
	assert.Equal(t, stored.ID.String(), resp.ID)

	_, err = svc.GetByFormAndRound(context.Background(), sess, form.ID, 3)
	assert.ErrorIs(t, err, hrreviewerrors.ErrInvalidRound)

	repo.findByFormAndRoundFn = func(ctx context.Context, id string, round int) (*HRReview, error) {
		return nil, sql.ErrNoRows
	}
	_, err = svc.GetByFormAndRound(context.Background(), sess, form.ID, RoundOne)
	assert.ErrorIs(t, err, hrreviewerrors.ErrReviewNotFound)
}

func TestListByForm(t *testing.T) {
	form := formAt(workflow.StatusPendingPayroll)
	repo := &fakeRepo{
		listByFormFn: func(ctx context.Context, id string) ([]HRReview, error) {
			return []HRReview{
				{ID: uuid.New(), ExitFormID: uuid.MustParse(form.ID), VerificationRound: RoundOne},
				{ID: uuid.New(), ExitFormID: uuid.MustParse(form.ID), VerificationRound: RoundTwo},
			}, nil
		},
	}
	forms := &fakeForms{
		getRefFn: func(ctx context.Context, id string) (workflow.FormRef, error) { return form, nil },
	}

	resp, err := NewService(repo, forms).ListByForm(context.Background(), hrSession(), form.ID)
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, RoundOne, resp[0].VerificationRound)
	assert.Equal(t, RoundTwo, resp[1].VerificationRound)
}
