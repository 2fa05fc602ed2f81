package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tasksync/tasksync/internal/config"
	"github.com/tasksync/tasksync/internal/logging"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags, deps *Deps) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect tasksync configuration",
	}

	cmd.AddCommand(newConfigShowCmd(flags, deps))

	root.AddCommand(cmd)
}

// newConfigShowCmd creates the 'config show' subcommand.
func newConfigShowCmd(flags *GlobalFlags, deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration after merging built-in defaults, the
global config file and TASKSYNC_* environment variables.

Sensitive values such as the personal access token are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := deps.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}

			redacted := redactConfig(*cfg)
			out := cmd.OutOrStdout()

			if flags.Output == OutputJSON {
				return printJSON(out, redacted)
			}

			data, err := yaml.Marshal(redacted)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, string(data))
			return err
		},
	}
}

// redactConfig returns a copy of cfg with credentials masked.
func redactConfig(cfg config.Config) config.Config {
	if cfg.DevOps.PAT != "" {
		cfg.DevOps.PAT = logging.RedactedValue
	}
	return cfg
}
