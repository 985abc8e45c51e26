package services

import (
	"github.com/clientdesk/assignment-api/internal/models"
)

// AssetMapping is a caller-declared correspondence between an asset id known
// to the assignment and an asset id in the target template. Correspondence is
// never inferred from name or type similarity.
type AssetMapping struct {
	OldAssetID uint64 `json:"old_asset_id"`
	NewAssetID uint64 `json:"new_asset_id"`
}

// resolvedReplacement is a replacement whose target asset was found in the
// target template.
type resolvedReplacement struct {
	OldAssetID uint64
	NewAsset   models.TemplateSiteAsset
}

// assetPlan partitions the target template's assets into disjoint groups.
// An asset claimed by a replacement never reappears as a new addition.
type assetPlan struct {
	Replacements []resolvedReplacement
	NewAssets    []models.TemplateSiteAsset

	// SkippedReplacements are declared replacements whose new asset id is
	// not part of the target template. They are warnings, not errors.
	SkippedReplacements []AssetMapping
}

// classifyAssets partitions the target template's assets given the asset ids
// the assignment already knows (from its current settings snapshot) and the
// caller's declared replacements.
func classifyAssets(existingAssetIDs map[uint64]struct{}, targetAssets []models.TemplateSiteAsset, replacements []AssetMapping) assetPlan {
	assetsByID := make(map[uint64]models.TemplateSiteAsset, len(targetAssets))
	for _, asset := range targetAssets {
		assetsByID[asset.ID] = asset
	}

	// Every declared replacement target is claimed up front so the new-asset
	// pass cannot create a second task for the same id.
	replacementTargets := make(map[uint64]struct{}, len(replacements))
	for _, mapping := range replacements {
		replacementTargets[mapping.NewAssetID] = struct{}{}
	}

	plan := assetPlan{}

	for _, mapping := range replacements {
		asset, ok := assetsByID[mapping.NewAssetID]
		if !ok {
			plan.SkippedReplacements = append(plan.SkippedReplacements, mapping)
			continue
		}
		plan.Replacements = append(plan.Replacements, resolvedReplacement{
			OldAssetID: mapping.OldAssetID,
			NewAsset:   asset,
		})
	}

	for _, asset := range targetAssets {
		if _, known := existingAssetIDs[asset.ID]; known {
			continue
		}
		if _, claimed := replacementTargets[asset.ID]; claimed {
			continue
		}
		plan.NewAssets = append(plan.NewAssets, asset)
	}

	return plan
}
