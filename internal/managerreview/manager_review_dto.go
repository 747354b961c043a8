package managerreview

type SubmitManagerReviewRequest struct {
	PerformanceSatisfactory   bool   `json:"performance_satisfactory"`
	PerformanceComment        string `json:"performance_comment"`
	KnowledgeTransferComplete bool   `json:"knowledge_transfer_complete"`
	KnowledgeTransferComment  string `json:"knowledge_transfer_comment"`
	NoticePeriodServed        bool   `json:"notice_period_served"`
	NoticePeriodComment       string `json:"notice_period_comment"`
	Action                    string `json:"action" binding:"required,oneof=APPROVE REJECT ON_HOLD"`
}

type ManagerReviewResponse struct {
	ID                        string `json:"id"`
	ExitFormID                string `json:"exit_form_id"`
	PerformanceSatisfactory   bool   `json:"performance_satisfactory"`
	PerformanceComment        string `json:"performance_comment"`
	KnowledgeTransferComplete bool   `json:"knowledge_transfer_complete"`
	KnowledgeTransferComment  string `json:"knowledge_transfer_comment"`
	NoticePeriodServed        bool   `json:"notice_period_served"`
	NoticePeriodComment       string `json:"notice_period_comment"`
	Action                    string `json:"action"`
	ReviewedBy                string `json:"reviewed_by"`
	SubmittedAt               string `json:"submitted_at"`
	FormStatus                int    `json:"form_status"`
}
