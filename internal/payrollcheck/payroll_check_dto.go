package payrollcheck

type ChecklistItem struct {
	Label   string `json:"label" binding:"required"`
	Checked bool   `json:"checked"`
	Comment string `json:"comment"`
}

type SubmitPayrollCheckRequest struct {
	Items []ChecklistItem `json:"items" binding:"required,min=1,dive"`
}

type PayrollCheckResponse struct {
	ID          string          `json:"id"`
	ExitFormID  string          `json:"exit_form_id"`
	Items       []ChecklistItem `json:"items"`
	VerifiedBy  string          `json:"verified_by"`
	SubmittedAt string          `json:"submitted_at"`
	FormStatus  int             `json:"form_status"`
}
