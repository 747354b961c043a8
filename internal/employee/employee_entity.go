package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"type:varchar(150);not null"`
	Email    string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_employees_email"`
	Username string    `gorm:"type:varchar(80);not null;uniqueIndex:idx_employees_username"`

	PasswordHash string `gorm:"type:varchar(100);not null"`
	Role         string `gorm:"type:varchar(30);not null;default:'EMPLOYEE';index:idx_employees_role"`

	ReportingManagerID *uuid.UUID `gorm:"type:uuid;index:idx_employees_manager"`
	Active             bool       `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}
