package workflow

import (
	"strings"
)

// Role strings carried in the JWT. Comparisons are case-insensitive because
// the legacy HRMS stored them with inconsistent casing.
const (
	RoleEmployee    = "EMPLOYEE"
	RoleManager     = "MANAGER"
	RoleHR          = "HR"
	RoleCEO         = "CEO"
	RoleSystemAdmin = "SYSTEM_ADMIN"
	RolePayroll     = "PAYROLL"
)

// Session is the authenticated viewer, passed explicitly into every
// authorization decision. No ambient state.
type Session struct {
	EmployeeID string
	Username   string
	Role       string
}

// FormRef is the slice of the anchor form that authorization depends on.
type FormRef struct {
	ID                 string
	EmployeeID         string
	ReportingManagerID string
	Status             Status
}

// Capabilities is the derived capability set for one (session, form) pair.
type Capabilities struct {
	IsFormOwner     bool `json:"is_form_owner"`
	IsDirectManager bool `json:"is_direct_manager"`
	IsManager       bool `json:"is_manager"`
	CanActAsHR      bool `json:"can_act_as_hr"`
	IsSystemAdmin   bool `json:"is_system_admin"`
	IsPayrollUser   bool `json:"is_payroll_user"`
}

func roleEquals(role, want string) bool {
	return strings.EqualFold(strings.TrimSpace(role), want)
}

// CanActAsHR holds for HR and CEO alike: the CEO carries identical workflow
// authority to HR at every HR-gated stage.
func CanActAsHR(sess Session) bool {
	return roleEquals(sess.Role, RoleHR) || roleEquals(sess.Role, RoleCEO)
}

func IsSystemAdmin(sess Session) bool {
	return roleEquals(sess.Role, RoleSystemAdmin) ||
		strings.Contains(strings.ToLower(sess.Username), "sysadmin")
}

// IsPayrollUser matches the payroll role plus the legacy ACC account naming.
func IsPayrollUser(sess Session) bool {
	if roleEquals(sess.Role, RolePayroll) {
		return true
	}
	username := strings.ToLower(sess.Username)
	return strings.Contains(username, "payroll") || strings.HasPrefix(username, "acc")
}

// IsManagerRole checks the role string only. Resolve combines it with the
// direct-report fallback for ambiguous role data.
func IsManagerRole(sess Session) bool {
	return roleEquals(sess.Role, RoleManager)
}

// Resolve computes the capability set for a viewer against one form.
// hasDirectReports is supplied by the caller (a directory lookup) and acts as
// the manager fallback when the role string is ambiguous.
func Resolve(sess Session, form FormRef, hasDirectReports bool) Capabilities {
	return Capabilities{
		IsFormOwner:     sess.EmployeeID != "" && sess.EmployeeID == form.EmployeeID,
		IsDirectManager: sess.EmployeeID != "" && sess.EmployeeID == form.ReportingManagerID,
		IsManager:       IsManagerRole(sess) || hasDirectReports,
		CanActAsHR:      CanActAsHR(sess),
		IsSystemAdmin:   IsSystemAdmin(sess),
		IsPayrollUser:   IsPayrollUser(sess),
	}
}

// CanView: the owner, the recorded manager, and every broader workflow role
// may read a form at any status. Reads are never blocked by stage gating.
func CanView(sess Session, form FormRef) bool {
	caps := Resolve(sess, form, false)
	return caps.IsFormOwner || caps.IsDirectManager ||
		caps.CanActAsHR || caps.IsSystemAdmin || caps.IsPayrollUser
}

// stageActor reports whether the session holds the acting role for a stage.
// The direct-manager check is on top of the role for manager review.
func stageActor(sess Session, form FormRef, stage Stage) bool {
	switch stage {
	case StageManagerReview:
		return sess.EmployeeID == form.ReportingManagerID || IsManagerRole(sess)
	case StageHRRound1, StageOffboarding, StageFinalApproval:
		return CanActAsHR(sess)
	case StageAssetClearance:
		return IsSystemAdmin(sess)
	case StagePayrollChecks:
		return IsPayrollUser(sess)
	}
	return false
}

// CanEditStage implements the per-stage edit contract: editable iff the role
// matches the stage's actor set, the form status is the exact value the stage
// owns, and either no submission exists yet or the same authorized actor
// explicitly enabled edit mode to amend one.
func CanEditStage(sess Session, form FormRef, stage Stage, hasExisting, editMode bool) bool {
	if form.Status.Stage() != stage {
		return false
	}
	if !stageActor(sess, form, stage) {
		return false
	}
	if hasExisting && !editMode {
		return false
	}
	return true
}

// NavigableStep decides whether a viewer may open progress-bar node step.
// Completed and current steps render read-only history for any viewer with a
// broad role; steps whose preconditions aren't met are refused (the caller
// surfaces a message rather than silently ignoring the click).
//
// On a rejected or on-hold form the pipeline is frozen, so broad workflow
// roles may open every node as read-only history while they review what
// happened; the owner and the manager stay behind the progress cut.
func NavigableStep(sess Session, form FormRef, step int) bool {
	if step < 1 || step > ProgressSteps {
		return false
	}
	if !CanView(sess, form) {
		return false
	}
	if form.Status.Blocked() && (CanActAsHR(sess) || IsSystemAdmin(sess) || IsPayrollUser(sess)) {
		return true
	}
	return step <= form.Status.ProgressStep()
}
