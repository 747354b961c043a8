package exitform

type CreateExitFormRequest struct {
	// Optional: HR/CEO may file on behalf of an employee. Defaults to the
	// session's own employee id.
	EmployeeID      string `json:"employee_id" binding:"omitempty,uuid"`
	NoticeStartDate string `json:"notice_start_date" binding:"required"`
	NoticeEndDate   string `json:"notice_end_date" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
}

type UpdateExitFormRequest struct {
	NoticeStartDate string `json:"notice_start_date" binding:"required"`
	NoticeEndDate   string `json:"notice_end_date" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
}

type ExitFormResponse struct {
	ID                 string `json:"id"`
	FormNumber         string `json:"form_number"`
	EmployeeID         string `json:"employee_id"`
	EmployeeName       string `json:"employee_name"`
	ReportingManagerID string `json:"reporting_manager_id"`
	NoticeStartDate    string `json:"notice_start_date"`
	NoticeEndDate      string `json:"notice_end_date"`
	Reason             string `json:"reason"`
	Status             int    `json:"status"`
	StatusLabel        string `json:"status_label"`
	Terminal           bool   `json:"terminal"`
	ProgressStep       int    `json:"progress_step"`
	CreatedBy          string `json:"created_by"`
	CreatedAt          string `json:"created_at"`
}
