package assetclearance

import (
	"time"

	"github.com/google/uuid"
)

const (
	ConditionGood        = "Good"
	ConditionAverage     = "Average"
	ConditionOK          = "OK"
	ConditionBad         = "Bad"
	ConditionNotReceived = "Not Received"
)

// DefaultAssets are always present on a clearance sheet; the system admin
// can add more rows but never remove these two.
var DefaultAssets = []string{"Laptop", "Laptop Charger"}

// AssetClearance stores the system admin's asset sheet for one exit form.
// ClearanceData is the packed checklist representation, one entry per asset.
type AssetClearance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExitFormID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_asset_clearances_form"`

	ClearanceData string    `gorm:"type:text;not null"`
	ClearedBy     uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
