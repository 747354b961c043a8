package offboarding

import (
	"context"
	"database/sql"
	"testing"

	offboardingerrors "go-exitflow/internal/offboarding/errors"
	"go-exitflow/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	upsertFn        func(ctx context.Context, record *OffboardingChecklist) error
	findByFormIDFn  func(ctx context.Context, exitFormID string) (*OffboardingChecklist, error)
	existsForFormFn func(ctx context.Context, exitFormID string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Upsert(ctx context.Context, record *OffboardingChecklist) error {
	return f.upsertFn(ctx, record)
}
func (f *fakeRepo) FindByFormID(ctx context.Context, exitFormID string) (*OffboardingChecklist, error) {
	return f.findByFormIDFn(ctx, exitFormID)
}
func (f *fakeRepo) ExistsForForm(ctx context.Context, exitFormID string) (bool, error) {
	return f.existsForFormFn(ctx, exitFormID)
}

type fakeForms struct {
	getRefFn        func(ctx context.Context, id string) (workflow.FormRef, error)
	advanceStatusFn func(ctx context.Context, id string, from, to workflow.Status, actorID string) error
}

func (f *fakeForms) GetRef(ctx context.Context, id string) (workflow.FormRef, error) {
	return f.getRefFn(ctx, id)
}
func (f *fakeForms) AdvanceStatus(ctx context.Context, id string, from, to workflow.Status, actorID string) error {
	return f.advanceStatusFn(ctx, id, from, to, actorID)
}

func offboardingForm() workflow.FormRef {
	return workflow.FormRef{
		ID:                 uuid.New().String(),
		EmployeeID:         uuid.New().String(),
		ReportingManagerID: uuid.New().String(),
		Status:             workflow.StatusPendingOffboarding,
	}
}

func TestSubmit_AdvancesToPayroll(t *testing.T) {
	form := offboardingForm()
	sess := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleHR}

	var saved *OffboardingChecklist
	repo := &fakeRepo{
		upsertFn:        func(ctx context.Context, r *OffboardingChecklist) error { saved = r; return nil },
		existsForFormFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	var advancedTo workflow.Status
	forms := &fakeForms{
		getRefFn: func(ctx context.Context, id string) (workflow.FormRef, error) { return form, nil },
		advanceStatusFn: func(ctx context.Context, id string, from, to workflow.Status, actorID string) error {
			assert.Equal(t, workflow.StatusPendingOffboarding, from)
			advancedTo = to
			return nil
		},
	}

	req := SubmitOffboardingRequest{Items: []ChecklistItem{
		{Label: "ID Card", Checked: true, Comment: "collected at reception"},
		{Label: "Access Card", Checked: false},
	}}
	resp, err := NewService(repo, forms).Submit(context.Background(), sess, form.ID, req, false)

	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusPendingPayroll, advancedTo)
	assert.Equal(t, int(workflow.StatusPendingPayroll), resp.FormStatus)
	assert.Contains(t, saved.OffboardingData, "ID Card : Done")
	assert.Contains(t, saved.OffboardingData, "Access Card : Pending")
}

func TestSubmit_CheckedItemNeedsComment(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeForms{})
	sess := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleHR}

	req := SubmitOffboardingRequest{Items: []ChecklistItem{
		{Label: "ID Card", Checked: true, Comment: ""},
	}}
	_, err := svc.Submit(context.Background(), sess, uuid.New().String(), req, false)
	assert.ErrorIs(t, err, offboardingerrors.ErrCommentRequired)
}

func TestSubmit_OnlyHRActsHere(t *testing.T) {
	form := offboardingForm()
	repo := &fakeRepo{
		existsForFormFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	forms := &fakeForms{
		getRefFn: func(ctx context.Context, id string) (workflow.FormRef, error) { return form, nil },
	}

	sysadmin := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleSystemAdmin}
	req := SubmitOffboardingRequest{Items: []ChecklistItem{{Label: "ID Card"}}}
	_, err := NewService(repo, forms).Submit(context.Background(), sysadmin, form.ID, req, false)
	assert.ErrorIs(t, err, offboardingerrors.ErrNotStageActor)
}

func TestSubmit_ClosedOnceFormMovesOn(t *testing.T) {
	form := offboardingForm()
	form.Status = workflow.StatusPendingPayroll

	forms := &fakeForms{
		getRefFn: func(ctx context.Context, id string) (workflow.FormRef, error) { return form, nil },
	}
	sess := workflow.Session{EmployeeID: uuid.New().String(), Role: workflow.RoleHR}

	req := SubmitOffboardingRequest{Items: []ChecklistItem{{Label: "ID Card"}}}
	_, err := NewService(&fakeRepo{}, forms).Submit(context.Background(), sess, form.ID, req, false)
	assert.ErrorIs(t, err, offboardingerrors.ErrWrongStage)
}

func TestGetByForm_NotFound(t *testing.T) {
	form := offboardingForm()
	repo := &fakeRepo{
		findByFormIDFn: func(ctx context.Context, id string) (*OffboardingChecklist, error) {
			return nil, sql.ErrNoRows
		},
	}
	forms := &fakeForms{
		getRefFn: func(ctx context.Context, id string) (workflow.FormRef, error) { return form, nil },
	}

	sess := workflow.Session{EmployeeID: form.EmployeeID, Role: workflow.RoleEmployee}
	_, err := NewService(repo, forms).GetByForm(context.Background(), sess, form.ID)
	assert.ErrorIs(t, err, offboardingerrors.ErrChecklistNotFound)
}
