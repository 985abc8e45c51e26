package models

import (
	"time"

	"gorm.io/gorm"
)

// AssetType is the closed set of work item kinds a template can define.
type AssetType string

const (
	AssetTypeGBPPost        AssetType = "gbp_post"
	AssetTypeBlogPost       AssetType = "blog_post"
	AssetTypeSocialPost     AssetType = "social_post"
	AssetTypeCitation       AssetType = "citation"
	AssetTypeReviewResponse AssetType = "review_response"
	AssetTypePhotoUpload    AssetType = "photo_upload"
	AssetTypeQAUpdate       AssetType = "qa_update"
)

type Template struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	SiteAssets []TemplateSiteAsset `gorm:"foreignKey:TemplateID" json:"site_assets,omitempty"`
}

// TemplateSiteAsset is a canonical work item definition owned by one template.
// Asset ids are only meaningful within their owning template; correspondence
// across templates is declared by callers, never inferred.
type TemplateSiteAsset struct {
	ID                          uint64    `gorm:"primarykey" json:"id"`
	TemplateID                  uint64    `gorm:"not null;index" json:"template_id"`
	Type                        AssetType `gorm:"type:varchar(30);not null" json:"type"`
	Name                        string    `gorm:"type:varchar(255);not null" json:"name"`
	DefaultPostingFrequency     int       `gorm:"not null;default:1" json:"default_posting_frequency"`
	DefaultIdealDurationMinutes *int      `json:"default_ideal_duration_minutes"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`

	// Relations
	Template Template `gorm:"foreignKey:TemplateID" json:"-"`
}
