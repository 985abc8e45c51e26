package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
	TaskStatusQCApproved TaskStatus = "qc_approved"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task is a work item scoped to one assignment and bound to exactly one
// template site asset. The sync engine never deletes tasks; superseded ones
// are transitioned to cancelled with an appended note.
type Task struct {
	ID                   uint64         `gorm:"primarykey" json:"id"`
	AssignmentID         uint64         `gorm:"not null;index" json:"assignment_id"`
	TemplateSiteAssetID  uint64         `gorm:"not null;index" json:"template_site_asset_id"`
	Name                 string         `gorm:"type:varchar(255);not null" json:"name"`
	Status               TaskStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority             TaskPriority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	DueDate              *time.Time     `json:"due_date"`
	IdealDurationMinutes int            `gorm:"not null;default:30" json:"ideal_duration_minutes"`
	Notes                string         `gorm:"type:text" json:"notes"`
	CategoryID           *uint64        `gorm:"index" json:"category_id"`
	AssigneeID           *uint64        `gorm:"index" json:"assignee_id"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignment Assignment         `gorm:"foreignKey:AssignmentID" json:"-"`
	SiteAsset  *TemplateSiteAsset `gorm:"foreignKey:TemplateSiteAssetID" json:"site_asset,omitempty"`
	Category   *TaskCategory      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Assignee   *User              `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
