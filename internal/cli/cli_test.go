// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParseArgsDefault(t *testing.T) {
	cmd, _ := ParseArgs(nil)
	if cmd != CmdTUI {
		t.Errorf("cmd = %d, want TUI", cmd)
	}
}

func TestParseArgsExport(t *testing.T) {
	cmd, args := ParseArgs([]string{"export", "--in", "notes.txt", "--instruction", "Export as PDF", "--name", "Q3"})
	if cmd != CmdExport {
		t.Fatalf("cmd = %d", cmd)
	}
	if args.In != "notes.txt" || args.Instruction != "Export as PDF" || args.Name != "Q3" {
		t.Errorf("args = %+v", args)
	}
}

func TestParseArgsExportPositionalInstruction(t *testing.T) {
	cmd, args := ParseArgs([]string{"export", "Export", "this", "as", "word"})
	if cmd != CmdExport {
		t.Fatalf("cmd = %d", cmd)
	}
	if args.Instruction != "Export this as word" {
		t.Errorf("instruction = %q", args.Instruction)
	}
	if args.In != "-" {
		t.Errorf("in = %q, want stdin default", args.In)
	}
}

func TestParseArgsHistory(t *testing.T) {
	cmd, args := ParseArgs([]string{"history", "5"})
	if cmd != CmdHistory || args.Limit != 5 {
		t.Errorf("cmd = %d, limit = %d", cmd, args.Limit)
	}

	cmd, args = ParseArgs([]string{"history"})
	if cmd != CmdHistory || args.Limit != 20 {
		t.Errorf("default limit = %d", args.Limit)
	}
}

func TestParseArgsMisc(t *testing.T) {
	cases := map[string]Command{
		"formats":   CmdFormats,
		"version":   CmdVersion,
		"--version": CmdVersion,
		"help":      CmdHelp,
		"-h":        CmdHelp,
		"bogus":     CmdHelp,
		"tui":       CmdTUI,
	}
	for arg, want := range cases {
		if cmd, _ := ParseArgs([]string{arg}); cmd != want {
			t.Errorf("ParseArgs(%q) = %d, want %d", arg, cmd, want)
		}
	}
}

func TestHandleExportRequiresInstruction(t *testing.T) {
	err := HandleExport(&App{}, Args{In: "-"})
	if err == nil {
		t.Fatal("no error for missing instruction")
	}
}
