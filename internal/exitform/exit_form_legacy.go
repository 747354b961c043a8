package exitform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-exitflow/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Legacy HRMS exports are messy: the same form shows up multiple times across
// batches, field names vary by export version, and the status column arrives
// under several spellings. All of that tolerance lives here, at the ingestion
// boundary. Nothing past ImportLegacy ever sees a raw record.

var legacyFieldAliases = map[string][]string{
	"id":           {"id", "formId", "exitFormId", "form_id", "exit_form_id"},
	"employeeId":   {"employeeId", "employee_id", "empId"},
	"employeeName": {"employeeName", "employee_name", "EMPLOYEE_NAME"},
	"managerId":    {"reportingManagerId", "reporting_manager_id", "managerId"},
	"noticeStart":  {"noticeStartDate", "notice_start_date", "noticePeriodStartDate"},
	"noticeEnd":    {"noticeEndDate", "notice_end_date", "noticePeriodEndDate", "lastWorkingDay"},
	"reason":       {"reason", "exitReason", "reason_for_exit"},
	"createdDate":  {"createdDate", "created_date", "createdAt"},
}

func legacyString(rec map[string]any, field string) string {
	for _, key := range legacyFieldAliases[field] {
		if v, ok := rec[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// IdentityKey says which legacy records are "the same form". A real id wins;
// without one we fall back to a composite of the fields old exports always
// carried.
func IdentityKey(rec map[string]any) string {
	if id := legacyString(rec, "id"); id != "" {
		return id
	}
	return fmt.Sprintf("%s|%s|%s",
		legacyString(rec, "employeeId"),
		legacyString(rec, "createdDate"),
		legacyString(rec, "employeeName"),
	)
}

// DedupeLegacy keeps the first record seen per identity key, preserving order.
func DedupeLegacy(records []map[string]any) []map[string]any {
	seen := make(map[string]struct{}, len(records))
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		key := IdentityKey(rec)
		if key == "||" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// DedupeForms removes duplicate rows by form id, preserving order. Listings
// must stay idempotent even if a join or a replayed import doubles a row.
func DedupeForms(forms []ExitForm) []ExitForm {
	seen := make(map[uuid.UUID]struct{}, len(forms))
	out := make([]ExitForm, 0, len(forms))
	for _, f := range forms {
		if _, dup := seen[f.ID]; dup {
			continue
		}
		seen[f.ID] = struct{}{}
		out = append(out, f)
	}
	return out
}

func (s *service) ImportLegacy(ctx context.Context, records []map[string]any) (int, error) {
	imported := 0

	for _, rec := range DedupeLegacy(records) {
		f, err := legacyToForm(rec)
		if err != nil {
			s.logger.Warn("skipping legacy exit form record",
				zap.String("identity_key", IdentityKey(rec)),
				zap.Error(err),
			)
			continue
		}

		if err := s.repo.Upsert(ctx, f); err != nil {
			s.logger.Error("legacy exit form upsert failed",
				zap.String("exit_form_id", f.ID.String()),
				zap.Error(err),
			)
			return imported, err
		}
		imported++
	}

	if imported > 0 {
		s.invalidateActiveCache(ctx)
	}
	s.logger.Info("legacy exit form import finished",
		zap.Int("received", len(records)),
		zap.Int("imported", imported),
	)
	return imported, nil
}

func legacyToForm(rec map[string]any) (*ExitForm, error) {
	employeeID, err := uuid.Parse(legacyString(rec, "employeeId"))
	if err != nil {
		return nil, fmt.Errorf("legacy record has no usable employee id: %w", err)
	}

	id, err := uuid.Parse(legacyString(rec, "id"))
	if err != nil {
		// No native id: derive a stable one so replayed batches upsert
		// instead of multiplying rows.
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte("legacy-exit-form:"+IdentityKey(rec)))
	}

	status := workflow.CoerceStatus(rec)

	managerID, err := uuid.Parse(legacyString(rec, "managerId"))
	if err != nil {
		managerID = uuid.Nil
	}

	noticeStart := legacyDate(rec, "noticeStart")
	noticeEnd := legacyDate(rec, "noticeEnd")
	if noticeEnd.Before(noticeStart) {
		noticeEnd = noticeStart
	}

	name := legacyString(rec, "employeeName")
	if name == "" {
		name = "(unknown)"
	}

	return &ExitForm{
		ID:                 id,
		FormNumber:         "LEGACY-" + id.String()[:8],
		EmployeeID:         employeeID,
		EmployeeName:       name,
		ReportingManagerID: managerID,
		NoticeStartDate:    noticeStart,
		NoticeEndDate:      noticeEnd,
		Reason:             legacyString(rec, "reason"),
		Status:             int(status),
		CreatedBy:          employeeID,
	}, nil
}

func legacyDate(rec map[string]any, field string) time.Time {
	raw := legacyString(rec, field)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}
