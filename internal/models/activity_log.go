package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only audit record. For template syncs the Details
// payload is the full itemized ledger of every mutation the sync performed;
// nothing else in the system stores the "why" of a sync.
type ActivityLog struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	EntityType string         `gorm:"type:varchar(50);not null;index:idx_activity_entity" json:"entity_type"`
	EntityID   uint64         `gorm:"not null;index:idx_activity_entity" json:"entity_id"`
	Action     string         `gorm:"type:varchar(50);not null" json:"action"`
	UserID     *uint64        `gorm:"index" json:"user_id"`
	Details    datatypes.JSON `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

const (
	ActivityEntityAssignment = "Assignment"
	ActivityActionSync       = "sync_template"
)
