// Package main provides the growbuf CLI tool.
//
// Usage:
//
//	growbuf [flags] <command> [args]
//
// Commands:
//
//	printf   - Render a format string into a buffer
//	frame    - Encode and decode length-prefixed msgpack frames
//	lines    - Split a stream into lines
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.growbuf/growbuf/
//	Use 'growbuf config' commands to inspect and change it.
package main

import (
	"os"

	"github.com/haivivi/growbuf/cmd/growbuf/commands"
	"github.com/haivivi/growbuf/pkg/cli"
)

func main() {
	if err := commands.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
