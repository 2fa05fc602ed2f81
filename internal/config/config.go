// Package config provides configuration management for tasksync with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (TASKSYNC_* prefix)
//  2. Global config (~/.tasksync/config.yaml)
//  3. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

// Config is the root configuration structure for tasksync.
// It contains all configuration sections for the application.
type Config struct {
	// DevOps contains settings for the Azure DevOps work item tracker.
	DevOps DevOpsConfig `yaml:"devops" json:"devops" mapstructure:"devops"`

	// Calendar contains settings for the calendar backend.
	Calendar CalendarConfig `yaml:"calendar" json:"calendar" mapstructure:"calendar"`

	// WorkHours defines the daily window focus blocks may be placed in.
	WorkHours WorkHoursConfig `yaml:"work_hours" json:"work_hours" mapstructure:"work_hours"`

	// FocusBlocks contains settings for scheduled focus blocks.
	FocusBlocks FocusBlocksConfig `yaml:"focus_blocks" json:"focus_blocks" mapstructure:"focus_blocks"`

	// State contains settings for the local session state document.
	State StateConfig `yaml:"state" json:"state" mapstructure:"state"`
}

// DevOpsConfig contains settings for the work item tracker and the 7pace
// timer API, which authenticates with the same personal access token.
type DevOpsConfig struct {
	// Organization is the Azure DevOps organization name.
	Organization string `yaml:"organization" json:"organization" mapstructure:"organization"`

	// Project is the project the work items live in.
	Project string `yaml:"project" json:"project" mapstructure:"project"`

	// PAT is the personal access token. Prefer setting it via the
	// TASKSYNC_DEVOPS_PAT environment variable over the config file.
	PAT string `yaml:"pat" json:"pat" mapstructure:"pat"`

	// APIURL overrides the tracker base URL. Empty means the public
	// dev.azure.com endpoint. Used by tests.
	APIURL string `yaml:"api_url" json:"api_url" mapstructure:"api_url"`

	// PaceAPIURL overrides the timer API base URL. Empty means the public
	// 7pace endpoint. Used by tests.
	PaceAPIURL string `yaml:"pace_api_url" json:"pace_api_url" mapstructure:"pace_api_url"`
}

// CalendarConfig contains settings for the calendar backend.
type CalendarConfig struct {
	// Enabled toggles calendar integration. When false, focus block
	// scheduling is skipped even if requested.
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`

	// APIURL overrides the calendar base URL. Used by tests.
	APIURL string `yaml:"api_url" json:"api_url" mapstructure:"api_url"`
}

// WorkHoursConfig defines the daily wall-clock window for slot placement.
type WorkHoursConfig struct {
	// Start is the beginning of the work day in 24-hour HH:MM form.
	// Default: "08:30"
	Start string `yaml:"start" json:"start" mapstructure:"start"`

	// End is the end of the work day in 24-hour HH:MM form.
	// Default: "17:00"
	End string `yaml:"end" json:"end" mapstructure:"end"`

	// Timezone is the IANA zone name the window is interpreted in.
	// Empty means UTC.
	Timezone string `yaml:"timezone" json:"timezone" mapstructure:"timezone"`
}

// FocusBlocksConfig contains settings for scheduled focus blocks.
type FocusBlocksConfig struct {
	// DurationMinutes is the length of a scheduled focus block.
	// Default: 45
	DurationMinutes int `yaml:"duration_minutes" json:"duration_minutes" mapstructure:"duration_minutes"`
}

// StateConfig contains settings for the local session state document.
type StateConfig struct {
	// TaskExpiryHours is how long a started task stays current.
	// Default: 24
	TaskExpiryHours int `yaml:"task_expiry_hours" json:"task_expiry_hours" mapstructure:"task_expiry_hours"`

	// DirOverride relocates the state directory, mainly for tests.
	// Empty means ~/.tasksync.
	DirOverride string `yaml:"dir_override" json:"dir_override" mapstructure:"dir_override"`
}
