package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/haivivi/growbuf/pkg/cli"
)

var linesCmd = &cobra.Command{
	Use:   "lines [file]",
	Short: "Split a stream into numbered lines",
	Long: `Read a file (or stdin) in chunks and print every line with its number.

Partial lines are held in a buffer until their newline arrives, so lines of
any length survive arbitrary chunk boundaries.

Examples:
  growbuf lines access.log
  tail -f app.log | growbuf lines --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLines,
}

func init() {
	linesCmd.Flags().Int("chunk", 4096, "read size in bytes")
	linesCmd.Flags().Bool("stats", false, "print buffer statistics to stderr")
}

func runLines(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	chunk, err := cmd.Flags().GetInt("chunk")
	if err != nil {
		return fmt.Errorf("failed to read 'chunk' flag: %w", err)
	}
	if chunk <= 0 {
		return fmt.Errorf("--chunk must be positive")
	}
	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to read 'stats' flag: %w", err)
	}

	in, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()

	out := cmd.OutOrStdout()
	n := 0
	lw := cli.NewLineWriter(func(line []byte) error {
		n++
		_, err := fmt.Fprintf(out, "%6d  %s\n", n, line)
		return err
	}, bufferOptions()...)
	defer lw.Close()

	// Hide WriterTo on the input so reads honor --chunk.
	if _, err := io.CopyBuffer(lw, struct{ io.Reader }{in}, make([]byte, chunk)); err != nil {
		return err
	}
	if err := lw.Flush(); err != nil {
		return err
	}
	return printStats(cmd, showStats, lw.Stats())
}
