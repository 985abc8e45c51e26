package models

import (
	"time"

	"gorm.io/gorm"
)

type AssignmentStatus string

const (
	AssignmentStatusActive   AssignmentStatus = "active"
	AssignmentStatusPaused   AssignmentStatus = "paused"
	AssignmentStatusArchived AssignmentStatus = "archived"
)

// Assignment binds one client to one template and owns that client's tasks
// and per-asset settings. TemplateID is only ever changed by the template
// sync engine, as the last write of a successful sync.
type Assignment struct {
	ID         uint64           `gorm:"primarykey" json:"id"`
	ClientID   uint64           `gorm:"not null;index" json:"client_id"`
	TemplateID uint64           `gorm:"not null;index" json:"template_id"`
	Status     AssignmentStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Client      Client                       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Template    Template                     `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Tasks       []Task                       `gorm:"foreignKey:AssignmentID" json:"tasks,omitempty"`
	Settings    []AssignmentSiteAssetSetting `gorm:"foreignKey:AssignmentID" json:"settings,omitempty"`
	TeamMembers []AssignmentTeamMember       `gorm:"foreignKey:AssignmentID" json:"team_members,omitempty"`
}

type TeamMemberRole string

const (
	TeamRoleManager     TeamMemberRole = "manager"
	TeamRoleContributor TeamMemberRole = "contributor"
)

type AssignmentTeamMember struct {
	AssignmentID uint64         `gorm:"primarykey" json:"assignment_id"`
	UserID       uint64         `gorm:"primarykey" json:"user_id"`
	Role         TeamMemberRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignment Assignment `gorm:"foreignKey:AssignmentID" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
