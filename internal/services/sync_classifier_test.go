package services

import (
	"testing"

	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func asset(id uint64, name string) models.TemplateSiteAsset {
	return models.TemplateSiteAsset{ID: id, Type: models.AssetTypeGBPPost, Name: name}
}

func idSet(ids ...uint64) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestClassifyAssets_AllNewWhenNothingKnown(t *testing.T) {
	target := []models.TemplateSiteAsset{asset(5, "GBP"), asset(6, "Blog")}

	plan := classifyAssets(idSet(), target, nil)

	assert.Len(t, plan.NewAssets, 2)
	assert.Empty(t, plan.Replacements)
	assert.Empty(t, plan.SkippedReplacements)
}

func TestClassifyAssets_KnownAssetsAreNotNew(t *testing.T) {
	target := []models.TemplateSiteAsset{asset(5, "GBP"), asset(6, "Blog")}

	plan := classifyAssets(idSet(5), target, nil)

	assert.Len(t, plan.NewAssets, 1)
	assert.Equal(t, uint64(6), plan.NewAssets[0].ID)
}

func TestClassifyAssets_ReplacementTargetNotDuplicatedAsNew(t *testing.T) {
	target := []models.TemplateSiteAsset{asset(5, "GBP"), asset(6, "Blog"), asset(7, "Social")}
	replacements := []AssetMapping{{OldAssetID: 1, NewAssetID: 5}}

	plan := classifyAssets(idSet(1, 2), target, replacements)

	assert.Len(t, plan.Replacements, 1)
	assert.Equal(t, uint64(1), plan.Replacements[0].OldAssetID)
	assert.Equal(t, uint64(5), plan.Replacements[0].NewAsset.ID)

	// 5 is claimed by the replacement; only 6 and 7 are new.
	newIDs := make([]uint64, 0, len(plan.NewAssets))
	for _, a := range plan.NewAssets {
		newIDs = append(newIDs, a.ID)
	}
	assert.ElementsMatch(t, []uint64{6, 7}, newIDs)
}

func TestClassifyAssets_UnresolvableReplacementIsSkipped(t *testing.T) {
	target := []models.TemplateSiteAsset{asset(5, "GBP")}
	replacements := []AssetMapping{
		{OldAssetID: 1, NewAssetID: 5},
		{OldAssetID: 2, NewAssetID: 99},
	}

	plan := classifyAssets(idSet(1, 2), target, replacements)

	assert.Len(t, plan.Replacements, 1)
	assert.Len(t, plan.SkippedReplacements, 1)
	assert.Equal(t, uint64(99), plan.SkippedReplacements[0].NewAssetID)
}

func TestClassifyAssets_SkippedReplacementTargetStaysClaimed(t *testing.T) {
	// A declared replacement target is excluded from the new-asset group even
	// when the pair itself resolves; the groups stay disjoint.
	target := []models.TemplateSiteAsset{asset(5, "GBP"), asset(6, "Blog")}
	replacements := []AssetMapping{{OldAssetID: 1, NewAssetID: 6}}

	plan := classifyAssets(idSet(1), target, replacements)

	assert.Len(t, plan.Replacements, 1)
	assert.Len(t, plan.NewAssets, 1)
	assert.Equal(t, uint64(5), plan.NewAssets[0].ID)
}
