package dto

import (
	"time"

	"github.com/clientdesk/assignment-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ClientDTO represents a client in API responses
type ClientDTO struct {
	ID         uint64              `json:"id"`
	Name       string              `json:"name"`
	ClientCode string              `json:"client_code"`
	Status     models.ClientStatus `json:"status"`
}

// SiteAssetDTO represents a template site asset in API responses
type SiteAssetDTO struct {
	ID                          uint64           `json:"id"`
	Type                        models.AssetType `json:"type"`
	Name                        string           `json:"name"`
	DefaultPostingFrequency     int              `json:"default_posting_frequency"`
	DefaultIdealDurationMinutes *int             `json:"default_ideal_duration_minutes"`
}

// TemplateDTO represents a template in API responses
type TemplateDTO struct {
	ID          uint64         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	SiteAssets  []SiteAssetDTO `json:"site_assets,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                   uint64              `json:"id"`
	TemplateSiteAssetID  uint64              `json:"template_site_asset_id"`
	Name                 string              `json:"name"`
	Status               models.TaskStatus   `json:"status"`
	Priority             models.TaskPriority `json:"priority"`
	DueDate              *time.Time          `json:"due_date"`
	IdealDurationMinutes int                 `json:"ideal_duration_minutes"`
	Notes                string              `json:"notes"`
	Category             *string             `json:"category"`
	Assignee             *UserDTO            `json:"assignee,omitempty"`
	SiteAsset            *SiteAssetDTO       `json:"site_asset,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
}

// SettingDTO represents a per-asset setting in API responses
type SettingDTO struct {
	ID                   uint64               `json:"id"`
	TemplateSiteAssetID  uint64               `json:"template_site_asset_id"`
	RequiredFrequency    int                  `json:"required_frequency"`
	Period               models.SettingPeriod `json:"period"`
	IdealDurationMinutes int                  `json:"ideal_duration_minutes"`
	SiteAsset            *SiteAssetDTO        `json:"site_asset,omitempty"`
}

// TeamMemberDTO represents an assignment team member in API responses
type TeamMemberDTO struct {
	UserID uint64                `json:"user_id"`
	Role   models.TeamMemberRole `json:"role"`
	User   *UserDTO              `json:"user,omitempty"`
}

// AssignmentDetailDTO is the rehydrated assignment view returned after a
// successful sync and from the assignment detail endpoint.
type AssignmentDetailDTO struct {
	ID          uint64                  `json:"id"`
	ClientID    uint64                  `json:"client_id"`
	TemplateID  uint64                  `json:"template_id"`
	Status      models.AssignmentStatus `json:"status"`
	Client      *ClientDTO              `json:"client,omitempty"`
	Template    *TemplateDTO            `json:"template,omitempty"`
	TeamMembers []TeamMemberDTO         `json:"team_members"`
	Tasks       []TaskDTO               `json:"tasks"`
	Settings    []SettingDTO            `json:"settings"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// ToSiteAssetDTO converts a TemplateSiteAsset model to SiteAssetDTO
func ToSiteAssetDTO(asset models.TemplateSiteAsset) SiteAssetDTO {
	return SiteAssetDTO{
		ID:                          asset.ID,
		Type:                        asset.Type,
		Name:                        asset.Name,
		DefaultPostingFrequency:     asset.DefaultPostingFrequency,
		DefaultIdealDurationMinutes: asset.DefaultIdealDurationMinutes,
	}
}

// ToTemplateDTO converts a Template model to TemplateDTO
func ToTemplateDTO(template models.Template) TemplateDTO {
	dto := TemplateDTO{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
	}
	for _, asset := range template.SiteAssets {
		dto.SiteAssets = append(dto.SiteAssets, ToSiteAssetDTO(asset))
	}
	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                   task.ID,
		TemplateSiteAssetID:  task.TemplateSiteAssetID,
		Name:                 task.Name,
		Status:               task.Status,
		Priority:             task.Priority,
		DueDate:              task.DueDate,
		IdealDurationMinutes: task.IdealDurationMinutes,
		Notes:                task.Notes,
		CreatedAt:            task.CreatedAt,
	}
	if task.Category != nil {
		name := task.Category.Name
		dto.Category = &name
	}
	if task.Assignee != nil {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}
	if task.SiteAsset != nil {
		asset := ToSiteAssetDTO(*task.SiteAsset)
		dto.SiteAsset = &asset
	}
	return dto
}

// ToSettingDTO converts a setting model to SettingDTO
func ToSettingDTO(setting models.AssignmentSiteAssetSetting) SettingDTO {
	dto := SettingDTO{
		ID:                   setting.ID,
		TemplateSiteAssetID:  setting.TemplateSiteAssetID,
		RequiredFrequency:    setting.RequiredFrequency,
		Period:               setting.Period,
		IdealDurationMinutes: setting.IdealDurationMinutes,
	}
	if setting.SiteAsset != nil {
		asset := ToSiteAssetDTO(*setting.SiteAsset)
		dto.SiteAsset = &asset
	}
	return dto
}

// ToAssignmentDetailDTO converts a rehydrated Assignment to its API view
func ToAssignmentDetailDTO(assignment models.Assignment) AssignmentDetailDTO {
	dto := AssignmentDetailDTO{
		ID:          assignment.ID,
		ClientID:    assignment.ClientID,
		TemplateID:  assignment.TemplateID,
		Status:      assignment.Status,
		TeamMembers: []TeamMemberDTO{},
		Tasks:       []TaskDTO{},
		Settings:    []SettingDTO{},
	}

	if assignment.Client.ID != 0 {
		dto.Client = &ClientDTO{
			ID:         assignment.Client.ID,
			Name:       assignment.Client.Name,
			ClientCode: assignment.Client.ClientCode,
			Status:     assignment.Client.Status,
		}
	}
	if assignment.Template.ID != 0 {
		template := ToTemplateDTO(assignment.Template)
		dto.Template = &template
	}
	for _, member := range assignment.TeamMembers {
		memberDTO := TeamMemberDTO{
			UserID: member.UserID,
			Role:   member.Role,
		}
		if member.User.ID != 0 {
			user := ToUserDTO(member.User)
			memberDTO.User = &user
		}
		dto.TeamMembers = append(dto.TeamMembers, memberDTO)
	}
	for _, task := range assignment.Tasks {
		dto.Tasks = append(dto.Tasks, ToTaskDTO(task))
	}
	for _, setting := range assignment.Settings {
		dto.Settings = append(dto.Settings, ToSettingDTO(setting))
	}

	return dto
}
