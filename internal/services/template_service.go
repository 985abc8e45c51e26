package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clientdesk/assignment-api/internal/constants"
	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/clientdesk/assignment-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTemplateNameRequired = errors.New("template name is required")
	ErrTemplateNoAssets     = errors.New("template requires at least one site asset")
	ErrInvalidAssetType     = errors.New("invalid site asset type")
)

var validAssetTypes = map[models.AssetType]struct{}{
	models.AssetTypeGBPPost:        {},
	models.AssetTypeBlogPost:       {},
	models.AssetTypeSocialPost:     {},
	models.AssetTypeCitation:       {},
	models.AssetTypeReviewResponse: {},
	models.AssetTypePhotoUpload:    {},
	models.AssetTypeQAUpdate:       {},
}

// TemplateService handles template business logic. Templates are read-mostly;
// the sync engine never mutates them.
type TemplateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// SiteAssetInput represents one site asset definition
type SiteAssetInput struct {
	Type                        models.AssetType
	Name                        string
	DefaultPostingFrequency     int
	DefaultIdealDurationMinutes *int
}

// CreateTemplateInput represents input for creating a template
type CreateTemplateInput struct {
	Name        string
	Description string
	SiteAssets  []SiteAssetInput
}

// CreateTemplate creates a template with its site assets
func (s *TemplateService) CreateTemplate(input CreateTemplateInput) (*models.Template, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTemplateNameRequired
	}
	if len(input.SiteAssets) == 0 {
		return nil, ErrTemplateNoAssets
	}

	assets := make([]models.TemplateSiteAsset, 0, len(input.SiteAssets))
	for _, assetInput := range input.SiteAssets {
		if _, ok := validAssetTypes[assetInput.Type]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAssetType, assetInput.Type)
		}
		frequency := assetInput.DefaultPostingFrequency
		if frequency <= 0 {
			frequency = constants.SyncDefaultRequiredFrequency
		}
		assets = append(assets, models.TemplateSiteAsset{
			Type:                        assetInput.Type,
			Name:                        strings.TrimSpace(assetInput.Name),
			DefaultPostingFrequency:     frequency,
			DefaultIdealDurationMinutes: assetInput.DefaultIdealDurationMinutes,
		})
	}

	template := &models.Template{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SiteAssets:  assets,
	}

	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return template, nil
}

// GetTemplate returns a template with its site assets
func (s *TemplateService) GetTemplate(id uint64) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return template, nil
}

// ListTemplates returns templates with pagination
func (s *TemplateService) ListTemplates(offset, limit int) ([]models.Template, int64, error) {
	templates, total, err := s.templateRepo.List(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, total, nil
}
