// Package cli provides common CLI utilities for growbuf command-line tools.
//
// This package includes:
//   - Configuration management (buffer and frame limits, log level)
//   - Output formatting (YAML, JSON, table, raw, hex)
//   - Request file loading (YAML/JSON)
//   - Line splitting for streamed text input
//   - jq queries over decoded messages
//
// Configuration is stored in ~/.growbuf/<app>/config.yaml, or under
// $GROWBUF_HOME when it is set.
//
// Example usage:
//
//	cfg, err := cli.LoadConfigWithPath("growbuf", "")
//
//	buf := buffer.GrowN(cfg.Buffer.InitialCapacity,
//	    buffer.WithMaxCapacity(cfg.Buffer.MaxCapacity))
//
//	cli.Output(buf.Stats(), cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli
