package payrollcheck

import (
	"time"

	"github.com/google/uuid"
)

const (
	StateCleared = "Cleared"
	StateOpen    = "Open"
)

// DefaultItems is the payroll-closure sheet the payroll team works through
// before final HR approval.
var DefaultItems = []string{
	"Final Salary Processed",
	"Leave Encashment Settled",
	"Expense Claims Cleared",
	"Tax Documents Issued",
}

type PayrollCheck struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExitFormID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_checks_form"`

	PayrollData string    `gorm:"type:text;not null"`
	VerifiedBy  uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
