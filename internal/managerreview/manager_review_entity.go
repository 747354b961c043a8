package managerreview

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
	ActionOnHold  = "ON_HOLD"
)

// ManagerReview is the reporting manager's assessment of a pending exit form.
// One review per form; a resubmission while the form is still at the manager
// stage replaces the previous record.
type ManagerReview struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExitFormID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_manager_reviews_form"`

	PerformanceSatisfactory   bool   `gorm:"not null;default:false"`
	PerformanceComment        string `gorm:"type:text"`
	KnowledgeTransferComplete bool   `gorm:"not null;default:false"`
	KnowledgeTransferComment  string `gorm:"type:text"`
	NoticePeriodServed        bool   `gorm:"not null;default:false"`
	NoticePeriodComment       string `gorm:"type:text"`

	Action     string    `gorm:"type:varchar(20);not null"`
	ReviewedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
