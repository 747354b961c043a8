package finalapproval

type ApprovalItem struct {
	Label   string `json:"label" binding:"required"`
	Checked bool   `json:"checked"`
	Comment string `json:"comment"`
}

type SubmitFinalApprovalRequest struct {
	Items   []ApprovalItem `json:"items" binding:"required,len=8,dive"`
	Remarks string         `json:"remarks" binding:"required"`
	Action  string         `json:"action" binding:"required,oneof=APPROVE REJECT"`
}

type FinalApprovalResponse struct {
	ID          string         `json:"id"`
	ExitFormID  string         `json:"exit_form_id"`
	Items       []ApprovalItem `json:"items"`
	Remarks     string         `json:"remarks"`
	Action      string         `json:"action"`
	ApprovedBy  string         `json:"approved_by"`
	SubmittedAt string         `json:"submitted_at"`
	FormStatus  int            `json:"form_status"`
}
