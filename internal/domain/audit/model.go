package audit

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index"`
	Action       string         `json:"action" gorm:"size:64;index"`
	ResourceType string         `json:"resource_type" gorm:"size:64;index"`
	ResourceID   string         `json:"resource_id" gorm:"size:64"`
	OldData      datatypes.JSON `json:"old_data,omitempty"`
	NewData      datatypes.JSON `json:"new_data,omitempty"`
	IPAddress    string         `json:"ip_address" gorm:"size:64"`
	UserAgent    string         `json:"user_agent"`
	Description  string         `json:"description"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
}

const (
	ActionStatusChange  = "status_change"
	ActionUpdateDetails = "update_details"
	ActionStatusEmail   = "status_email"

	ResourceApplication = "job_application"
)
