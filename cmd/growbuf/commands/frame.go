package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/haivivi/growbuf/pkg/cli"
	"github.com/haivivi/growbuf/pkg/frame"
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Encode and decode length-prefixed msgpack frames",
	Long: `Encode and decode frames of the form

  uint32 length (big-endian) | msgpack payload

The maximum payload size comes from frame.max_size in the config.`,
}

// encodeRequest is the request file format for frame encode
type encodeRequest struct {
	Messages []any `json:"messages" yaml:"messages"`
}

var frameEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode messages from a request file into frames",
	Long: `Encode every entry of the request's messages list as one frame.

Request file example (messages.yaml):
  messages:
    - op: ping
      seq: 1
    - hello

Examples:
  growbuf frame encode -f messages.yaml -o messages.bin
  growbuf frame encode -f messages.yaml --format hex
  cat messages.json | growbuf frame encode -f -`,
	Args: cobra.NoArgs,
	RunE: runFrameEncode,
}

var frameDecodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode frames from a file or stdin",
	Long: `Decode all frames from a file (or stdin when omitted or "-") and print
the messages.

Examples:
  growbuf frame decode messages.bin
  growbuf frame decode messages.bin --format json
  growbuf frame decode messages.bin -q 'select(.op == "ping") | .seq'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFrameDecode,
}

func init() {
	frameEncodeCmd.Flags().StringP("file", "f", "", "request file (YAML or JSON, \"-\" for stdin)")
	frameEncodeCmd.Flags().Bool("stats", false, "print buffer statistics to stderr")
	frameDecodeCmd.Flags().Bool("stats", false, "print buffer statistics to stderr")
	frameDecodeCmd.Flags().StringP("query", "q", "", "jq expression applied to every message")

	frameCmd.AddCommand(frameEncodeCmd)
	frameCmd.AddCommand(frameDecodeCmd)
}

func runFrameEncode(cmd *cobra.Command, args []string) error {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to read 'file' flag: %w", err)
	}
	if file == "" {
		return fmt.Errorf("input file is required, use -f flag")
	}
	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to read 'stats' flag: %w", err)
	}
	format, err := getFormat(cli.FormatRaw)
	if err != nil {
		return err
	}

	var req encodeRequest
	if file == "-" {
		in, err := openInput(cmd, file)
		if err != nil {
			return err
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		if err := cli.ParseRequest(data, file, &req); err != nil {
			return err
		}
	} else if err := cli.LoadRequest(file, &req); err != nil {
		return err
	}

	out := newBuffer()
	defer out.Close()
	enc := frame.NewEncoder(out, frameOptions()...)
	for i, msg := range req.Messages {
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	encStats := enc.Stats()
	if err := enc.Close(); err != nil {
		return err
	}
	printVerbose("encoded %d messages into %s", len(req.Messages), cli.FormatBytesInt(out.Len()))

	if outputFile != "" && format == cli.FormatRaw {
		err = cli.OutputBytes(out.Bytes(), outputFile)
	} else {
		err = outputResult(cmd, out.Bytes(), format)
	}
	if err != nil {
		return err
	}
	return printStats(cmd, showStats, encStats)
}

func runFrameDecode(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to read 'stats' flag: %w", err)
	}
	expr, err := cmd.Flags().GetString("query")
	if err != nil {
		return fmt.Errorf("failed to read 'query' flag: %w", err)
	}
	var query *cli.Query
	if expr != "" {
		if query, err = cli.ParseQuery(expr); err != nil {
			return err
		}
	}
	format, err := getFormat(cli.FormatYAML)
	if err != nil {
		return err
	}

	in, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()

	dec := frame.NewDecoder(in, frameOptions()...)
	defer dec.Close()

	messages := []any{}
	frames := 0
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", frames, err)
		}
		frames++
		if query == nil {
			messages = append(messages, v)
			continue
		}
		results, err := query.Run(v)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frames-1, err)
		}
		messages = append(messages, results...)
	}
	printVerbose("decoded %d frames", frames)

	var result any = messages
	if format == cli.FormatTable {
		rows := make(cli.Rows, len(messages))
		for i, m := range messages {
			rows[i] = cli.Row{Key: fmt.Sprint(i), Value: fmt.Sprint(m)}
		}
		result = rows
	}
	if err := outputResult(cmd, result, format); err != nil {
		return err
	}
	return printStats(cmd, showStats, dec.Stats())
}
