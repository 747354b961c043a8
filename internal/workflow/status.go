package workflow

import (
	"strconv"
	"strings"
)

// Status is the single integer driving the whole exit pipeline. The anchor
// exit form is always in exactly one of the eleven states below; every stage
// submission derives the next value from the chosen action, never from client
// input.
type Status int

const (
	StatusPendingManager        Status = 0
	StatusPendingHRRound1       Status = 1
	StatusPendingAssetClearance Status = 2
	StatusPendingOffboarding    Status = 3 // HR verification round 2 range
	StatusPendingPayroll        Status = 4
	StatusPendingFinalApproval  Status = 5
	StatusCompleted             Status = 6
	StatusRejectedByManager     Status = 7
	StatusRejectedByHR          Status = 8
	StatusOnHoldByManager       Status = 9
	StatusOnHoldByHR            Status = 10
)

// Stage identifies which component owns editing at a given status.
type Stage string

const (
	StageManagerReview  Stage = "MANAGER_REVIEW"
	StageHRRound1       Stage = "HR_ROUND_1"
	StageAssetClearance Stage = "ASSET_CLEARANCE"
	StageOffboarding    Stage = "OFFBOARDING"
	StagePayrollChecks  Stage = "PAYROLL_CHECKS"
	StageFinalApproval  Stage = "FINAL_HR_APPROVAL"
	StageNone           Stage = "NONE"
)

func (s Status) Valid() bool {
	return s >= StatusPendingManager && s <= StatusOnHoldByHR
}

// Terminal reports whether no further transition is defined from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejectedByManager, StatusRejectedByHR,
		StatusOnHoldByManager, StatusOnHoldByHR:
		return true
	}
	return false
}

// Blocked reports a rejected or on-hold state, terminal but retained so the
// history stays viewable.
func (s Status) Blocked() bool {
	return s.Terminal() && s != StatusCompleted
}

// Stage returns the one component allowed to edit at this status, or StageNone
// for terminal states. Exactly one stage owns each non-terminal status.
func (s Status) Stage() Stage {
	switch s {
	case StatusPendingManager:
		return StageManagerReview
	case StatusPendingHRRound1:
		return StageHRRound1
	case StatusPendingAssetClearance:
		return StageAssetClearance
	case StatusPendingOffboarding:
		return StageOffboarding
	case StatusPendingPayroll:
		return StagePayrollChecks
	case StatusPendingFinalApproval:
		return StageFinalApproval
	default:
		return StageNone
	}
}

// NextOnApprove returns the status an approval at s advances to. The second
// return is false for terminal states.
func (s Status) NextOnApprove() (Status, bool) {
	if s.Terminal() || !s.Valid() {
		return s, false
	}
	return s + 1, true
}

func (s Status) String() string {
	switch s {
	case StatusPendingManager:
		return "Pending - Manager"
	case StatusPendingHRRound1:
		return "Pending - HR Verification (Round 1)"
	case StatusPendingAssetClearance:
		return "Pending - System Admin (Asset Clearance)"
	case StatusPendingOffboarding:
		return "Pending - HR Offboarding (Round 2)"
	case StatusPendingPayroll:
		return "Pending - Payroll"
	case StatusPendingFinalApproval:
		return "Pending - Final HR Approval"
	case StatusCompleted:
		return "Approved & Completed"
	case StatusRejectedByManager:
		return "Rejected by Manager"
	case StatusRejectedByHR:
		return "Rejected by HR"
	case StatusOnHoldByManager:
		return "On Hold by Manager"
	case StatusOnHoldByHR:
		return "On Hold by HR"
	}
	return "Unknown"
}

// Progress bar nodes: User, Manager, HR1, SysAdmin, HR2, Payroll, FinalHR,
// Approved.
const ProgressSteps = 8

// ProgressStep maps a status to its 1-based node on the 8-node progress bar.
// Rejected/on-hold statuses map back to the node where they occurred, not
// forward.
func (s Status) ProgressStep() int {
	switch s {
	case StatusPendingManager:
		return 2
	case StatusPendingHRRound1:
		return 3
	case StatusPendingAssetClearance:
		return 4
	case StatusPendingOffboarding:
		return 5
	case StatusPendingPayroll:
		return 6
	case StatusPendingFinalApproval:
		return 7
	case StatusCompleted:
		return 8
	case StatusRejectedByManager, StatusOnHoldByManager:
		return 2
	case StatusRejectedByHR, StatusOnHoldByHR:
		return 3
	}
	return 1
}

// OwnerProgressStep is the collapsed 4-node bar shown to the form's own
// employee: User, Manager, HR, Approved & Completed. Everything past HR
// round 1 lands in the final bucket. Presentation only, same state machine.
func (s Status) OwnerProgressStep() int {
	switch {
	case s == StatusPendingManager, s == StatusRejectedByManager, s == StatusOnHoldByManager:
		return 2
	case s == StatusPendingHRRound1, s == StatusRejectedByHR, s == StatusOnHoldByHR:
		return 3
	case s >= StatusPendingAssetClearance && s <= StatusCompleted:
		return 4
	}
	return 1
}

// CoerceStatus tries the field-name spellings legacy HRMS payloads use for
// the status value (status, STATUS, formStatus, nested meta.status) and
// coerces whatever it finds to an integer, defaulting to 0. Confined to the
// legacy ingestion boundary; everything past the repository sees one canonical
// int.
func CoerceStatus(fields map[string]any) Status {
	if fields == nil {
		return StatusPendingManager
	}

	candidates := []any{
		fields["status"],
		fields["STATUS"],
		fields["formStatus"],
	}
	if meta, ok := fields["meta"].(map[string]any); ok {
		candidates = append(candidates, meta["status"])
	}

	for _, raw := range candidates {
		if s, ok := coerceInt(raw); ok && Status(s).Valid() {
			return Status(s)
		}
	}
	return StatusPendingManager
}

func coerceInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" || trimmed == "null" {
			return 0, false
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
