package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/growbuf/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage growbuf configuration.

Configuration is stored in ~/.growbuf/growbuf/config.yaml.

Keys:
  log_level                debug, info, warn or error
  buffer.initial_capacity  first allocation of every buffer (e.g. 4KB)
  buffer.max_capacity      growth ceiling, 0 for unlimited (e.g. 64MB)
  frame.max_size           largest accepted frame payload (e.g. 1MB)`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		format, err := getFormat(cli.FormatYAML)
		if err != nil {
			return err
		}
		if format == cli.FormatTable {
			rows := make(cli.Rows, 0, len(cfg.Keys()))
			for _, k := range cfg.Keys() {
				v, _ := cfg.Get(k)
				rows = append(rows, cli.Row{Key: k, Value: v})
			}
			return outputResult(cmd, rows, format)
		}
		return outputResult(cmd, cfg, format)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), getConfig().Path())
		return err
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := getConfig().Get(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a config value and save the file.

Examples:
  growbuf config set buffer.max_capacity 64MB
  growbuf config set frame.max_size 1MB
  growbuf config set log_level debug`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		printVerbose("saved %s", cfg.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
