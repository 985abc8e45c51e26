package services

// Kinds recorded on ledger entries, distinguishing the path that produced them.
const (
	SyncKindReplacement = "replacement"
	SyncKindNew         = "new"
)

// CreatedTaskEntry records one task created during a sync.
type CreatedTaskEntry struct {
	TaskID    uint64 `json:"task_id"`
	Name      string `json:"name"`
	AssetID   uint64 `json:"asset_id"`
	AssetName string `json:"asset_name"`
	Kind      string `json:"kind"`
}

// ArchivedTaskEntry records one task archived (cancelled, never deleted)
// during a sync.
type ArchivedTaskEntry struct {
	TaskID     uint64 `json:"task_id"`
	Name       string `json:"name"`
	OldAssetID uint64 `json:"old_asset_id"`
}

// CreatedSettingEntry records one setting created or refreshed during a sync.
type CreatedSettingEntry struct {
	SettingID uint64 `json:"setting_id"`
	AssetID   uint64 `json:"asset_id"`
	AssetName string `json:"asset_name"`
	Kind      string `json:"kind"`
	Updated   bool   `json:"updated"`
}

// MigratedSettingEntry records one setting copied from an old asset id to a
// new one through a common-asset mapping.
type MigratedSettingEntry struct {
	SettingID  uint64 `json:"setting_id"`
	OldAssetID uint64 `json:"old_asset_id"`
	NewAssetID uint64 `json:"new_asset_id"`
}

// syncLedger accumulates every mutation of one sync invocation. It is
// serialized verbatim into the ActivityLog details payload.
type syncLedger struct {
	TasksCreated     []CreatedTaskEntry
	TasksArchived    []ArchivedTaskEntry
	SettingsCreated  []CreatedSettingEntry
	SettingsMigrated []MigratedSettingEntry
}

// SyncDetails is the ActivityLog details payload for a sync_template record.
// It is the durable diff of the sync; nothing else stores the "why".
type SyncDetails struct {
	OldTemplateID uint64 `json:"old_template_id"`
	NewTemplateID uint64 `json:"new_template_id"`
	ClientID      uint64 `json:"client_id"`
	ClientName    string `json:"client_name"`

	ReplacementCount        int `json:"replacement_count"`
	CommonAssetMappingCount int `json:"common_asset_mapping_count"`

	TasksCreatedCount     int `json:"tasks_created_count"`
	TasksArchivedCount    int `json:"tasks_archived_count"`
	SettingsCreatedCount  int `json:"settings_created_count"`
	SettingsMigratedCount int `json:"settings_migrated_count"`

	TasksCreated     []CreatedTaskEntry     `json:"tasks_created"`
	TasksArchived    []ArchivedTaskEntry    `json:"tasks_archived"`
	SettingsCreated  []CreatedSettingEntry  `json:"settings_created"`
	SettingsMigrated []MigratedSettingEntry `json:"settings_migrated"`
}
