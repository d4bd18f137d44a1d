// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

// These messages are emitted by command handlers; the chat model reacts
// to them in its Update loop.

// ExportRequestMsg asks the application to run the export pipeline over
// the last assistant message with the given instruction.
type ExportRequestMsg struct {
	Instruction string
}

// ShowHelpMsg triggers the help display.
type ShowHelpMsg struct{}

// ShowHistoryMsg asks for the recent export list. Limit 0 means default.
type ShowHistoryMsg struct {
	Limit int
}

// ShowFormatsMsg asks for the format and attribute listing.
type ShowFormatsMsg struct{}

// ClearConversationMsg resets the chat transcript.
type ClearConversationMsg struct{}
