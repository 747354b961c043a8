package exitform

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExitForm is the anchor record of the exit pipeline. Every stage record
// references it by id, and its Status column is the only place workflow
// position lives. Forms are never deleted: rejected and on-hold outcomes are
// terminal status values, not removals.
type ExitForm struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FormNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_exit_forms_number"`

	EmployeeID         uuid.UUID `gorm:"type:uuid;not null;index:idx_exit_forms_employee"`
	EmployeeName       string    `gorm:"type:varchar(150);not null"`
	ReportingManagerID uuid.UUID `gorm:"type:uuid;not null;index:idx_exit_forms_manager"`

	NoticeStartDate time.Time `gorm:"type:date;not null"`
	NoticeEndDate   time.Time `gorm:"type:date;not null"`
	Reason          string    `gorm:"type:text"`

	Status int `gorm:"type:int;not null;default:0;index:idx_exit_forms_status"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_exit_forms_deleted_at"`
}
