package hrreview

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionApprove   = "APPROVE"
	ActionReject    = "REJECT"
	ActionOnHold    = "ON_HOLD"
	ActionReviseLWD = "REVISE_LWD"
)

const (
	RoundOne = 1
	RoundTwo = 2
)

// HRReview is one HR verification pass over an exit form. The same form gets
// two of these: round 1 right after the manager approves, round 2 during
// offboarding. The pair is disambiguated by VerificationRound, never by
// record order.
type HRReview struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExitFormID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hr_reviews_form_round,priority:1"`
	VerificationRound int       `gorm:"not null;uniqueIndex:idx_hr_reviews_form_round,priority:2"`

	NoticePeriodVerified      bool   `gorm:"not null;default:false"`
	NoticePeriodComment       string `gorm:"type:text"`
	LeaveBalanceSettled       bool   `gorm:"not null;default:false"`
	LeaveBalanceComment       string `gorm:"type:text"`
	PolicyComplianceConfirmed bool   `gorm:"not null;default:false"`
	PolicyComplianceComment   string `gorm:"type:text"`
	ExitEligibilityConfirmed  bool   `gorm:"not null;default:false"`
	ExitEligibilityComment    string `gorm:"type:text"`

	Action           string     `gorm:"type:varchar(20);not null"`
	RevisedNoticeEnd *time.Time `gorm:"type:date"`
	ReviewedBy       uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
