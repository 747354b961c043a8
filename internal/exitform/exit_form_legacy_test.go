package exitform

import (
	"context"
	"testing"

	"go-exitflow/internal/workflow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentityKey(t *testing.T) {
	// A native id always wins, whatever the export spelled it.
	assert.Equal(t, "abc", IdentityKey(map[string]any{"id": "abc"}))
	assert.Equal(t, "abc", IdentityKey(map[string]any{"exitFormId": "abc"}))
	assert.Equal(t, "abc", IdentityKey(map[string]any{"exit_form_id": "abc"}))

	// Without one, the composite fallback.
	key := IdentityKey(map[string]any{
		"employee_id":  "e-1",
		"created_date": "2021-03-01",
		"employeeName": "Ravi",
	})
	assert.Equal(t, "e-1|2021-03-01|Ravi", key)

	// Empty-everything records collapse to the sentinel key.
	assert.Equal(t, "||", IdentityKey(map[string]any{}))
}

func TestDedupeLegacy(t *testing.T) {
	records := []map[string]any{
		{"id": "a", "status": float64(1)},
		{"formId": "a", "status": float64(2)}, // same form, later batch
		{"id": "b"},
		{}, // unidentifiable, dropped
		{"id": "a"},
	}

	out := DedupeLegacy(records)
	assert.Len(t, out, 2)
	// First record per key wins, order preserved.
	assert.Equal(t, "a", out[0]["id"])
	assert.Equal(t, float64(1), out[0]["status"])
	assert.Equal(t, "b", out[1]["id"])
}

func TestDedupeForms(t *testing.T) {
	a := ExitForm{ID: uuid.New()}
	b := ExitForm{ID: uuid.New()}
	out := DedupeForms([]ExitForm{a, b, a})
	assert.Len(t, out, 2)
	assert.Equal(t, a.ID, out[0].ID)
	assert.Equal(t, b.ID, out[1].ID)
}

func TestLegacyToForm(t *testing.T) {
	employeeID := uuid.New().String()
	rec := map[string]any{
		"employee_id":           employeeID,
		"EMPLOYEE_NAME":         "Ravi Shankar",
		"noticePeriodStartDate": "2021-03-01",
		"lastWorkingDay":        "2021-04-30",
		"exitReason":            "better opportunity",
		"STATUS":                "4",
	}

	f, err := legacyToForm(rec)
	assert.NoError(t, err)
	assert.Equal(t, employeeID, f.EmployeeID.String())
	assert.Equal(t, "Ravi Shankar", f.EmployeeName)
	assert.Equal(t, int(workflow.StatusPendingPayroll), f.Status)
	assert.Equal(t, "2021-03-01", f.NoticeStartDate.Format("2006-01-02"))
	assert.Equal(t, "2021-04-30", f.NoticeEndDate.Format("2006-01-02"))
	assert.Equal(t, uuid.Nil, f.ReportingManagerID)

	// No native id: the derived id must be stable across replays.
	again, err := legacyToForm(rec)
	assert.NoError(t, err)
	assert.Equal(t, f.ID, again.ID)
	assert.Contains(t, f.FormNumber, "LEGACY-")

	// An inverted notice window collapses to the start date.
	rec["noticePeriodStartDate"] = "2021-05-01"
	inverted, err := legacyToForm(rec)
	assert.NoError(t, err)
	assert.Equal(t, inverted.NoticeStartDate, inverted.NoticeEndDate)
}

func TestLegacyToForm_NoEmployeeID(t *testing.T) {
	_, err := legacyToForm(map[string]any{"employeeName": "Ghost"})
	assert.Error(t, err)
}

func TestImportLegacy(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	var upserted []*ExitForm
	repo := &fakeRepo{
		upsertFn: func(ctx context.Context, f *ExitForm) error {
			upserted = append(upserted, f)
			return nil
		},
	}
	svc := NewService(db, repo, &fakeEmployees{}, &fakeCounter{}, nil, nil)

	records := []map[string]any{
		{"id": uuid.New().String(), "employeeId": employeeID, "status": float64(3)},
		{"employeeName": "broken row"}, // no employee id, skipped
		{"id": uuid.New().String(), "employeeId": employeeID, "status": "6"},
	}

	imported, err := svc.ImportLegacy(context.Background(), records)
	assert.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Len(t, upserted, 2)
	assert.Equal(t, int(workflow.StatusPendingOffboarding), upserted[0].Status)
	assert.Equal(t, int(workflow.StatusCompleted), upserted[1].Status)
}

func TestImportLegacy_ReplayedBatchIsIdempotent(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New().String()
	employeeID := uuid.New().String()

	calls := 0
	repo := &fakeRepo{
		upsertFn: func(ctx context.Context, f *ExitForm) error {
			calls++
			assert.Equal(t, id, f.ID.String())
			return nil
		},
	}
	svc := NewService(db, repo, &fakeEmployees{}, &fakeCounter{}, nil, nil)

	rec := map[string]any{"id": id, "employeeId": employeeID}
	imported, err := svc.ImportLegacy(context.Background(), []map[string]any{rec, rec, rec})
	assert.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, calls)
}
