package settings

import (
	"errors"
	"strconv"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrForbidden        = errors.New("insufficient role")
	ErrInvalidInput     = errors.New("invalid input")
	ErrPermNotFound     = errors.New("component permission not found")
	ErrInvalidComponent = errors.New("component name must not be empty")
)

// Setting is one key/value row of the system_settings table. The table keeps
// the historical key/value shape so it round-trips through backups; the typed
// view lives in SystemSettings.
type Setting struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Key       string    `json:"key" gorm:"uniqueIndex;not null"`
	Value     string    `json:"value" gorm:"not null"`
	UpdatedBy uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name compatible with exported backups
func (Setting) TableName() string {
	return "system_settings"
}

// BeforeCreate is called before inserting a setting row
func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Setting keys
const (
	keyUpdatesEnabled        = "updates_enabled"
	keyMaintenanceMode       = "maintenance_mode"
	keyDeadlineGraceDays     = "deadline_grace_days"
	keyAllowSelfRegistration = "allow_self_registration"
)

// SystemSettings is the typed view over the system_settings rows with
// explicit defaults. Call sites read named fields, never raw keys.
type SystemSettings struct {
	UpdatesEnabled        bool `json:"updates_enabled"`
	MaintenanceMode       bool `json:"maintenance_mode"`
	DeadlineGraceDays     int  `json:"deadline_grace_days"`
	AllowSelfRegistration bool `json:"allow_self_registration"`
}

// DefaultSettings returns the settings applied to a fresh install
func DefaultSettings() SystemSettings {
	return SystemSettings{
		UpdatesEnabled:        true,
		MaintenanceMode:       false,
		DeadlineGraceDays:     0,
		AllowSelfRegistration: true,
	}
}

// fromRows folds key/value rows over the defaults; unknown keys are ignored
// and unparsable values keep their default.
func fromRows(rows []Setting) SystemSettings {
	s := DefaultSettings()
	for _, row := range rows {
		switch row.Key {
		case keyUpdatesEnabled:
			if b, err := strconv.ParseBool(row.Value); err == nil {
				s.UpdatesEnabled = b
			}
		case keyMaintenanceMode:
			if b, err := strconv.ParseBool(row.Value); err == nil {
				s.MaintenanceMode = b
			}
		case keyDeadlineGraceDays:
			if n, err := strconv.Atoi(row.Value); err == nil && n >= 0 {
				s.DeadlineGraceDays = n
			}
		case keyAllowSelfRegistration:
			if b, err := strconv.ParseBool(row.Value); err == nil {
				s.AllowSelfRegistration = b
			}
		}
	}
	return s
}

// toRows flattens the typed settings back into key/value pairs
func (s SystemSettings) toRows() map[string]string {
	return map[string]string{
		keyUpdatesEnabled:        strconv.FormatBool(s.UpdatesEnabled),
		keyMaintenanceMode:       strconv.FormatBool(s.MaintenanceMode),
		keyDeadlineGraceDays:     strconv.Itoa(s.DeadlineGraceDays),
		keyAllowSelfRegistration: strconv.FormatBool(s.AllowSelfRegistration),
	}
}

// ComponentPermission gates a named UI component behind a minimum role.
type ComponentPermission struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Component string    `json:"component" gorm:"uniqueIndex;not null"`
	MinRole   user.Role `json:"min_role" gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name compatible with exported backups
func (ComponentPermission) TableName() string {
	return "component_permissions"
}

// BeforeCreate is called before inserting a component permission
func (c *ComponentPermission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.MinRole == "" {
		c.MinRole = user.RoleUser
	}
	if !c.MinRole.IsValid() {
		return errors.New("invalid minimum role")
	}
	return nil
}
