package offboarding

import (
	"time"

	"github.com/google/uuid"
)

// Checklist item states as stored inside the packed string.
const (
	StateDone    = "Done"
	StatePending = "Pending"
)

// DefaultItems is the physical-asset return sheet HR walks through during
// round 2. Free-text rows can be added on top.
var DefaultItems = []string{
	"ID Card",
	"Access Card",
	"Corporate SIM",
	"Company Documents",
}

// OffboardingChecklist is HR's record for the status-3 window. Its submit is
// the one that moves the form on to payroll.
type OffboardingChecklist struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExitFormID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_offboarding_checklists_form"`

	OffboardingData string    `gorm:"type:text;not null"`
	CompletedBy     uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
