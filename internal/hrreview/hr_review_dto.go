package hrreview

type SubmitHRReviewRequest struct {
	// Round is always supplied by the caller; the server never infers it
	// from which records already exist.
	Round int `json:"round" binding:"required,oneof=1 2"`

	NoticePeriodVerified      bool   `json:"notice_period_verified"`
	NoticePeriodComment       string `json:"notice_period_comment"`
	LeaveBalanceSettled       bool   `json:"leave_balance_settled"`
	LeaveBalanceComment       string `json:"leave_balance_comment"`
	PolicyComplianceConfirmed bool   `json:"policy_compliance_confirmed"`
	PolicyComplianceComment   string `json:"policy_compliance_comment"`
	ExitEligibilityConfirmed  bool   `json:"exit_eligibility_confirmed"`
	ExitEligibilityComment    string `json:"exit_eligibility_comment"`

	Action string `json:"action" binding:"required,oneof=APPROVE REJECT ON_HOLD REVISE_LWD"`
	// Required when Action is REVISE_LWD.
	RevisedNoticeEndDate string `json:"revised_notice_end_date" binding:"omitempty"`
}

type HRReviewResponse struct {
	ID                string `json:"id"`
	ExitFormID        string `json:"exit_form_id"`
	VerificationRound int    `json:"verification_round"`

	NoticePeriodVerified      bool   `json:"notice_period_verified"`
	NoticePeriodComment       string `json:"notice_period_comment"`
	LeaveBalanceSettled       bool   `json:"leave_balance_settled"`
	LeaveBalanceComment       string `json:"leave_balance_comment"`
	PolicyComplianceConfirmed bool   `json:"policy_compliance_confirmed"`
	PolicyComplianceComment   string `json:"policy_compliance_comment"`
	ExitEligibilityConfirmed  bool   `json:"exit_eligibility_confirmed"`
	ExitEligibilityComment    string `json:"exit_eligibility_comment"`

	Action               string `json:"action"`
	RevisedNoticeEndDate string `json:"revised_notice_end_date,omitempty"`
	ReviewedBy           string `json:"reviewed_by"`
	SubmittedAt          string `json:"submitted_at"`
	FormStatus           int    `json:"form_status"`
}
