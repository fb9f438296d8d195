package backup

import "errors"

// Common errors
var (
	ErrForbidden           = errors.New("insufficient role")
	ErrInvalidBackup       = errors.New("backup document has no tables map")
	ErrUnknownPlatform     = errors.New("unknown restore platform")
	ErrPlatformUnavailable = errors.New("restore platform is not configured")
)

// Platform selects the restore target store.
type Platform string

const (
	PlatformPostgres Platform = "postgres"
	PlatformMongo    Platform = "mongo"
)

// NormalizePlatform maps request values to a supported platform. The empty
// string defaults to the relational target; the aliases used by previously
// exported backup tooling are accepted and normalized.
func NormalizePlatform(p string) (Platform, error) {
	switch p {
	case "", "postgres", "supabase":
		return PlatformPostgres, nil
	case "mongo", "firebase":
		return PlatformMongo, nil
	}
	return "", ErrUnknownPlatform
}

// BackupTables is the fixed set of tables included in every backup. Order
// does not matter for backup, only for restore.
var BackupTables = []string{
	"profiles",
	"objectives",
	"objective_updates",
	"daily_work",
	"action_items",
	"action_item_closures",
	"action_item_verifications",
	"system_settings",
	"component_permissions",
}

// RestoreOrder is the fixed dependency order for restores: parents before
// children.
var RestoreOrder = []string{
	"profiles",
	"system_settings",
	"component_permissions",
	"objectives",
	"objective_updates",
	"daily_work",
	"action_items",
	"action_item_closures",
	"action_item_verifications",
}

// Collections maps source table names to document-store collection names.
var Collections = map[string]string{
	"profiles":                  "users",
	"objectives":                "objectives",
	"objective_updates":         "updates",
	"daily_work":                "dailyWork",
	"action_items":              "actionItems",
	"action_item_closures":      "actionItemClosures",
	"action_item_verifications": "actionItemVerifications",
	"system_settings":           "systemSettings",
	"component_permissions":     "permissions",
}

// Row is one opaque backed-up record.
type Row = map[string]interface{}

// Metadata describes who produced a backup and how much it holds.
type Metadata struct {
	BackupBy      string `json:"backup_by"`
	BackupByEmail string `json:"backup_by_email"`
	TotalTables   int    `json:"total_tables"`
	TotalRows     int    `json:"total_rows"`
}

// Document is the full backup wire format. It round-trips through at least
// one backup-restore cycle without row loss for every table present at
// backup time.
type Document struct {
	Version   string           `json:"version"`
	Timestamp string           `json:"timestamp"`
	Tables    map[string][]Row `json:"tables"`
	Metadata  Metadata         `json:"metadata"`
}

// TableResult reports the outcome for one table during a restore.
type TableResult struct {
	Success           bool   `json:"success"`
	RowsRestored      *int   `json:"rows_restored,omitempty"`
	DocumentsRestored *int   `json:"documents_restored,omitempty"`
	Error             string `json:"error,omitempty"`
	Collection        string `json:"collection,omitempty"`
}

// Report is the full restore response.
type Report struct {
	Success    bool                   `json:"success"`
	Platform   string                 `json:"platform"`
	Message    string                 `json:"message"`
	Results    map[string]TableResult `json:"results"`
	RestoredBy string                 `json:"restored_by"`
	RestoredAt string                 `json:"restored_at"`
}
