package config

import (
	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/schedule"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Work hours must be well-formed HH:MM values with end after start
//   - The work-hours timezone must be a known IANA zone
//   - Focus block duration must be positive
//   - Task expiry must be positive
//
// Tracker organization/project/PAT are intentionally not required here:
// commands that never touch the tracker (schedule, current) must work
// without them, so each client checks its own prerequisites.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateWorkHours(&cfg.WorkHours); err != nil {
		return err
	}

	if err := validateFocusBlocks(&cfg.FocusBlocks); err != nil {
		return err
	}

	if err := validateState(&cfg.State); err != nil {
		return err
	}

	return nil
}

// validateWorkHours checks the work-hours window definition.
func validateWorkHours(cfg *WorkHoursConfig) error {
	if _, err := schedule.ParseWorkHours(cfg.Start, cfg.End, cfg.Timezone); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidWorkHours,
			"work_hours %s-%s (%s): %v", cfg.Start, cfg.End, cfg.Timezone, err)
	}
	return nil
}

// validateFocusBlocks checks focus-block settings.
func validateFocusBlocks(cfg *FocusBlocksConfig) error {
	if cfg.DurationMinutes <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidFocus,
			"focus_blocks.duration_minutes must be positive, got %d", cfg.DurationMinutes)
	}
	return nil
}

// validateState checks state settings.
func validateState(cfg *StateConfig) error {
	if cfg.TaskExpiryHours <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidState,
			"state.task_expiry_hours must be positive, got %d", cfg.TaskExpiryHours)
	}
	return nil
}

// ParsedWorkHours parses the configured work-hours window into its schedule
// form. Call Validate first; this assumes well-formed values and returns the
// parse error otherwise.
func (c *Config) ParsedWorkHours() (schedule.WorkHours, error) {
	return schedule.ParseWorkHours(c.WorkHours.Start, c.WorkHours.End, c.WorkHours.Timezone)
}
