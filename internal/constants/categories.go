package constants

import "github.com/clientdesk/assignment-api/internal/models"

// AssetTypeCategories maps each template asset type to the name of the task
// category its tasks belong to. A task whose asset type has no entry here is
// created with a null category, never a guessed one.
var AssetTypeCategories = map[models.AssetType]string{
	models.AssetTypeGBPPost:        "GBP Posting",
	models.AssetTypeBlogPost:       "Content",
	models.AssetTypeSocialPost:     "Social Media",
	models.AssetTypeCitation:       "Citations",
	models.AssetTypeReviewResponse: "Reputation",
	models.AssetTypePhotoUpload:    "Media",
	models.AssetTypeQAUpdate:       "Q&A",
}

// CategoryNames returns the distinct category names from the table.
func CategoryNames() []string {
	seen := make(map[string]struct{}, len(AssetTypeCategories))
	names := make([]string, 0, len(AssetTypeCategories))
	for _, name := range AssetTypeCategories {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
