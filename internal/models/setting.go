package models

import (
	"time"

	"gorm.io/gorm"
)

type SettingPeriod string

const (
	PeriodWeekly    SettingPeriod = "weekly"
	PeriodMonthly   SettingPeriod = "monthly"
	PeriodQuarterly SettingPeriod = "quarterly"
)

// AssignmentSiteAssetSetting is the per (assignment, asset) override record.
// The engine keeps at most one live row per pair via read-then-decide upsert.
type AssignmentSiteAssetSetting struct {
	ID                   uint64         `gorm:"primarykey" json:"id"`
	AssignmentID         uint64         `gorm:"not null;index:idx_settings_assignment_asset" json:"assignment_id"`
	TemplateSiteAssetID  uint64         `gorm:"not null;index:idx_settings_assignment_asset" json:"template_site_asset_id"`
	RequiredFrequency    int            `gorm:"not null;default:1" json:"required_frequency"`
	Period               SettingPeriod  `gorm:"type:varchar(15);not null;default:'monthly'" json:"period"`
	IdealDurationMinutes int            `gorm:"not null;default:30" json:"ideal_duration_minutes"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignment Assignment         `gorm:"foreignKey:AssignmentID" json:"-"`
	SiteAsset  *TemplateSiteAsset `gorm:"foreignKey:TemplateSiteAssetID" json:"site_asset,omitempty"`
}
