package models

import (
	"time"

	"gorm.io/gorm"
)

type ClientStatus string

const (
	ClientStatusActive     ClientStatus = "active"
	ClientStatusPaused     ClientStatus = "paused"
	ClientStatusOffboarded ClientStatus = "offboarded"
)

type Client struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	ContactEmail string         `gorm:"type:varchar(255)" json:"contact_email"`
	ClientCode   string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"client_code"`
	Status       ClientStatus   `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignments []Assignment `gorm:"foreignKey:ClientID" json:"assignments,omitempty"`
}
