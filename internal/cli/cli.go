// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdExport
	CmdHistory
	CmdFormats
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// export flags
	In          string // input text file ("-" = stdin)
	Instruction string
	Name        string // optional artifact base name

	// history flags
	Limit int

	// Raw holds everything after the subcommand
	Raw []string
}

// Parse inspects os.Args and returns the command with its arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs is Parse over an explicit argument list.
func ParseArgs(argv []string) (Command, Args) {
	var args Args
	if len(argv) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(argv[0])
	rest := argv[1:]
	args.Raw = rest

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.StringVar(&args.In, "in", "-", "input text file (- for stdin)")
		fs.StringVar(&args.Instruction, "instruction", "", "natural-language export instruction")
		fs.StringVar(&args.Name, "name", "", "artifact base name (default: derived timestamped name)")
		if err := fs.Parse(rest); err != nil {
			return CmdHelp, args
		}
		// Bare positional instruction is accepted too:
		//   quill export --in notes.txt "Export as PDF"
		if args.Instruction == "" && fs.NArg() > 0 {
			args.Instruction = strings.Join(fs.Args(), " ")
		}
		return CmdExport, args

	case "history":
		args.Limit = 20
		if len(rest) > 0 {
			if n, err := strconv.Atoi(rest[0]); err == nil && n > 0 {
				args.Limit = n
			}
		}
		return CmdHistory, args

	case "formats":
		return CmdFormats, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
	return CmdHelp, args
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("quill %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(`quill - instruction-driven document export

Usage:
  quill                      Launch the chat TUI
  quill export [flags] [instruction]
                             Run one export over a text file
  quill history [n]          List the n most recent exports (default 20)
  quill formats              Show supported formats and attributes
  quill version              Print version information

Export flags:
  --in file                  Input text file, or - for stdin (default -)
  --instruction "..."        Export instruction, e.g. "Export as Word in Arial 14"
  --name n                   Base name for the artifact file

Examples:
  quill export --in report.txt --instruction "Export as PDF with wide margins"
  cat notes.txt | quill export "Export this as a Word document, bold title"
`)
}
