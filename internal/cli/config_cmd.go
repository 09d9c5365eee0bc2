package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/spf13/cobra"
)

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration sysmon would run with, after the config file
and any flags are applied, as YAML.

Examples:
  sysmon config
  sysmon config --theme dark --host gpu-box`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configCommand(cmd, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func configCommand(cmd *cobra.Command, out io.Writer) error {
	cfg, path, err := loadRuntimeConfig(cmd.Flags())
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	origin := path
	if origin == "" {
		origin = "built-in defaults"
	}
	if _, err := fmt.Fprintf(out, "# source: %s\n", origin); err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
