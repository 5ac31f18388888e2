package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/haivivi/growbuf/pkg/cli"
)

var printfCmd = &cobra.Command{
	Use:   "printf <format> [args...]",
	Short: "Render a format string into a buffer",
	Long: `Render a printf-style format string into a buffer and print it.

Arguments that parse as integers or floats are passed as numbers, so
%d and %f verbs work; everything else is passed as a string.

Examples:
  growbuf printf 'id=%d name=%s' 42 gopher
  growbuf printf '%s' hello --append ', world' --stats
  growbuf printf 'seq=%08x' 255 --format hex`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrintf,
}

func init() {
	printfCmd.Flags().StringArray("append", nil, "text appended after the formatted output (repeatable)")
	printfCmd.Flags().Bool("stats", false, "print buffer statistics to stderr")
}

func runPrintf(cmd *cobra.Command, args []string) error {
	appends, err := cmd.Flags().GetStringArray("append")
	if err != nil {
		return fmt.Errorf("failed to read 'append' flag: %w", err)
	}
	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to read 'stats' flag: %w", err)
	}
	format, err := getFormat(cli.FormatRaw)
	if err != nil {
		return err
	}

	buf := newBuffer()
	defer buf.Close()

	if _, err := buf.Printf(args[0], convertArgs(args[1:])...); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	for _, s := range appends {
		if _, err := buf.AppendString(s); err != nil {
			return fmt.Errorf("append: %w", err)
		}
	}
	if format == cli.FormatRaw {
		if err := buf.WriteByte('\n'); err != nil {
			return err
		}
	}

	if err := outputResult(cmd, buf.Bytes(), format); err != nil {
		return err
	}
	return printStats(cmd, showStats, buf.Stats())
}

// convertArgs turns numeric-looking arguments into numbers
func convertArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if n, err := strconv.ParseInt(a, 0, 64); err == nil {
			out[i] = n
		} else if f, err := strconv.ParseFloat(a, 64); err == nil {
			out[i] = f
		} else {
			out[i] = a
		}
	}
	return out
}
