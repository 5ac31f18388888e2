package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/haivivi/growbuf/pkg/buffer"
	"github.com/haivivi/growbuf/pkg/cli"
	"github.com/haivivi/growbuf/pkg/frame"
)

const appName = "growbuf"

var (
	// Global flags
	cfgFile      string
	outputFile   string
	outputFormat string
	logLevel     string
	verbose      bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "growbuf",
	Short: "Growable byte buffer toolkit",
	Long: `growbuf - assemble and parse byte streams with a growable buffer.

The tool drives the growbuf buffer from the command line:
  - Render printf-style text into a buffer
  - Encode and decode length-prefixed msgpack frames
  - Split streamed text into lines

Configuration is stored in ~/.growbuf/growbuf/config.yaml and sets the
buffer capacity limits, the maximum frame size and the log level.

Examples:
  # Render a formatted string
  growbuf printf 'id=%d name=%s' 42 gopher

  # Encode messages from a YAML request into frames
  growbuf frame encode -f messages.yaml -o messages.bin

  # Decode them again as JSON
  growbuf frame decode messages.bin --format json
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.growbuf/growbuf/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format: yaml, json, table, raw, hex")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(printfCmd)
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(linesCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	level := slog.LevelWarn
	name := logLevel
	if name == "" {
		name = globalConfig.LogLevel
	}
	if verbose {
		name = "debug"
	}
	if name != "" {
		if level, err = cli.ParseLogLevel(name); err != nil {
			return err
		}
	}
	slog.SetDefault(cli.NewLogger(cmd.ErrOrStderr(), level))
	return nil
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// newBuffer creates a buffer with the configured limits
func newBuffer() *buffer.GrowBuffer {
	cfg := getConfig()
	return buffer.GrowN(cfg.Buffer.InitialCapacity, bufferOptions()...)
}

func bufferOptions() []buffer.Option {
	cfg := getConfig()
	return []buffer.Option{
		buffer.WithMaxCapacity(cfg.Buffer.MaxCapacity),
		buffer.WithLogger(slog.Default()),
	}
}

func frameOptions() []frame.Option {
	return []frame.Option{
		frame.WithMaxFrameSize(getConfig().Frame.MaxSize),
		frame.WithBufferOptions(bufferOptions()...),
	}
}

// getFormat returns the output format, or def when none was given
func getFormat(def cli.OutputFormat) (cli.OutputFormat, error) {
	if outputFormat == "" {
		return def, nil
	}
	return cli.ParseOutputFormat(outputFormat)
}

// outputResult outputs the result using cli package
func outputResult(cmd *cobra.Command, result any, format cli.OutputFormat) error {
	opts := cli.OutputOptions{
		Format: format,
		File:   outputFile,
	}
	if outputFile == "" {
		opts.Writer = cmd.OutOrStdout()
	}
	return cli.Output(result, opts)
}

// openInput opens a file argument, "-" or empty meaning stdin
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	return cli.OpenInput(path, cmd.InOrStdin())
}

// statsRows turns buffer stats into table rows
func statsRows(s buffer.Stats) cli.Rows {
	return cli.Rows{
		{Key: "length", Value: cli.FormatBytesInt(s.Length)},
		{Key: "allocated", Value: cli.FormatBytesInt(s.Allocated)},
		{Key: "consumed", Value: cli.FormatBytesInt(s.Consumed)},
		{Key: "unused", Value: cli.FormatBytesInt(s.Unused)},
		{Key: "growths", Value: fmt.Sprint(s.Growths)},
		{Key: "compactions", Value: fmt.Sprint(s.Compactions)},
	}
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}

// printStats writes buffer stats to stderr as a table when requested
func printStats(cmd *cobra.Command, show bool, s buffer.Stats) error {
	slog.Debug("buffer stats", "buffer", s)
	if !show {
		return nil
	}
	return cli.Output(statsRows(s), cli.OutputOptions{
		Format: cli.FormatTable,
		Writer: cmd.ErrOrStderr(),
	})
}
