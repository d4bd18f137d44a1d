// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"reflect"
	"testing"
)

func TestParsePlainInput(t *testing.T) {
	p := NewParser(NewRegistry())
	result := p.Parse("export this as a PDF please")
	if result.IsCommand {
		t.Error("plain chat input treated as command")
	}
}

func TestParseKnownCommand(t *testing.T) {
	p := NewParser(NewRegistry())
	result := p.Parse("/export as PDF with wide margins")
	if !result.IsCommand {
		t.Fatal("not recognized as command")
	}
	if result.Command == nil || result.Command.Name != "/export" {
		t.Fatalf("command = %+v", result.Command)
	}
	if result.RawArgs != "as PDF with wide margins" {
		t.Errorf("RawArgs = %q", result.RawArgs)
	}
}

func TestParseAlias(t *testing.T) {
	p := NewParser(NewRegistry())
	for alias, want := range map[string]string{
		"/e":    "/export",
		"/h":    "/help",
		"/q":    "/quit",
		"/new":  "/clear",
		"/exit": "/quit",
	} {
		result := p.Parse(alias)
		if result.Command == nil || result.Command.Name != want {
			t.Errorf("%s: resolved to %+v, want %s", alias, result.Command, want)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	p := NewParser(NewRegistry())
	result := p.Parse("/frobnicate")
	if !result.IsCommand {
		t.Error("unknown command not flagged as command")
	}
	if result.Command != nil {
		t.Errorf("unknown command resolved: %+v", result.Command)
	}
}

func TestExportHandlerMessages(t *testing.T) {
	reg := NewRegistry()

	cmd := reg.Get("/export")
	msg := cmd.Handler(nil, "as word in Arial")()
	export, ok := msg.(ExportRequestMsg)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if export.Instruction != "as word in Arial" {
		t.Errorf("instruction = %q", export.Instruction)
	}

	// Bare /export still exports, with a neutral instruction.
	msg = cmd.Handler(nil, "")()
	export = msg.(ExportRequestMsg)
	if export.Instruction != "Export this" {
		t.Errorf("bare instruction = %q", export.Instruction)
	}
}

func TestHistoryHandlerLimit(t *testing.T) {
	reg := NewRegistry()
	cmd := reg.Get("/history")

	msg := cmd.Handler([]string{"5"}, "5")()
	if got := msg.(ShowHistoryMsg).Limit; got != 5 {
		t.Errorf("limit = %d", got)
	}

	msg = cmd.Handler(nil, "")()
	if got := msg.(ShowHistoryMsg).Limit; got != 0 {
		t.Errorf("default limit = %d", got)
	}

	msg = cmd.Handler([]string{"nope"}, "nope")()
	if got := msg.(ShowHistoryMsg).Limit; got != 0 {
		t.Errorf("bad limit = %d", got)
	}
}

func TestSplitCommandLineQuotes(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`/export "Q3 Report" pdf`, []string{"/export", "Q3 Report", "pdf"}},
		{`/export 'single quoted name'`, []string{"/export", "single quoted name"}},
		{`/history 10`, []string{"/history", "10"}},
		{`/export "escaped \" quote"`, []string{"/export", `escaped " quote`}},
	}
	for _, tc := range cases {
		if got := splitCommandLine(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitCommandLine(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAllSorted(t *testing.T) {
	cmds := NewRegistry().All()
	if len(cmds) == 0 {
		t.Fatal("no builtins")
	}
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1].Name >= cmds[i].Name {
			t.Errorf("not sorted: %s before %s", cmds[i-1].Name, cmds[i].Name)
		}
	}
}
