package models

import "time"

// TaskCategory is a global name-unique lookup row. Rows are upserted by name
// before any task that references them is created.
type TaskCategory struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:CategoryID" json:"-"`
}
