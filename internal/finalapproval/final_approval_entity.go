package finalapproval

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

const StateDone = "Done"

// RequiredItems is the fixed closing checklist. Unlike the other stages this
// list is not extensible: final approval means every one of these is done and
// documented.
var RequiredItems = []string{
	"Resignation Letter Received",
	"Exit Interview Completed",
	"Knowledge Transfer Verified",
	"Company Assets Recovered",
	"System Access Revoked",
	"Final Settlement Computed",
	"Relieving Letter Prepared",
	"Experience Letter Prepared",
}

// FinalApproval closes an exit form. ApprovalData holds the packed checklist,
// Remarks the mandatory closing note.
type FinalApproval struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExitFormID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_final_approvals_form"`

	ApprovalData string    `gorm:"type:text;not null"`
	Remarks      string    `gorm:"type:text;not null"`
	Action       string    `gorm:"type:varchar(20);not null"`
	ApprovedBy   uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
