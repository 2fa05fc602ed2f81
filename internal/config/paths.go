package config

import (
	"os"
	"path/filepath"

	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/errors"
)

// HomeDir returns the path to the tasksync data directory.
// This is typically ~/.tasksync on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.TasksyncHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
// This is typically ~/.tasksync/config.yaml on Unix systems.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// StatePaths returns the lock file and state file paths for the given
// configuration, honoring state.dir_override.
func StatePaths(cfg *Config) (lockPath, statePath string, err error) {
	dir := cfg.State.DirOverride
	if dir == "" {
		dir, err = HomeDir()
		if err != nil {
			return "", "", err
		}
	}
	return filepath.Join(dir, constants.StateLockFileName),
		filepath.Join(dir, constants.StateFileName), nil
}
