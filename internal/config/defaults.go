package config

import (
	"time"

	"github.com/tasksync/tasksync/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// the config file and environment variables.
func DefaultConfig() *Config {
	return &Config{
		WorkHours: WorkHoursConfig{
			// A standard office day. Users in other rhythms override
			// these in ~/.tasksync/config.yaml.
			Start: constants.DefaultWorkDayStart,
			End:   constants.DefaultWorkDayEnd,

			// Timezone: empty means UTC. Most users will want their
			// local IANA zone here.
			Timezone: "",
		},
		FocusBlocks: FocusBlocksConfig{
			// 45 minutes balances a useful deep-work block against the
			// odds of finding a free gap on a busy calendar.
			DurationMinutes: int(constants.DefaultFocusDuration / time.Minute),
		},
		State: StateConfig{
			// A task started and forgotten stops being "current" after a day.
			TaskExpiryHours: int(constants.DefaultTaskExpiry / time.Hour),
		},
		Calendar: CalendarConfig{
			Enabled: true,
		},
	}
}

// setDefaults registers default values on a viper instance so they
// participate in the precedence chain.
func setDefaults(v viperDefaulter) {
	v.SetDefault("work_hours.start", constants.DefaultWorkDayStart)
	v.SetDefault("work_hours.end", constants.DefaultWorkDayEnd)
	v.SetDefault("work_hours.timezone", "")
	v.SetDefault("focus_blocks.duration_minutes", int(constants.DefaultFocusDuration/time.Minute))
	v.SetDefault("state.task_expiry_hours", int(constants.DefaultTaskExpiry/time.Hour))
	v.SetDefault("calendar.enabled", true)
}

// viperDefaulter is the subset of viper used by setDefaults.
type viperDefaulter interface {
	SetDefault(key string, value any)
}
