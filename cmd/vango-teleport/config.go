package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/teleport/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect teleport configuration",
	}
	cmd.AddCommand(configShowCmd(), configValidateCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration: the config file merged over
the defaults, or the defaults alone when there is no file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "Output format: yaml, json or toml")

	return cmd
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			source := cfg.Path()
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", source)
			return nil
		},
	}
}

// loadConfig loads the file named by --config, or the one found in the
// working directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.LoadOrDefault(path)
}
