package employee

type EmployeeResponse struct {
	ID                 string  `json:"id"`
	FullName           string  `json:"full_name"`
	Email              string  `json:"email"`
	Username           string  `json:"username"`
	Role               string  `json:"role"`
	ReportingManagerID *string `json:"reporting_manager_id,omitempty"`
	Active             bool    `json:"active"`
}
