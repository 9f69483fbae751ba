// Package chat holds the chat widget: input parsing, the optimistic wall
// update and the poll lifecycle.
package chat

import (
	"regexp"
	"strings"

	"github.com/diogo/wallchat/internal/models"
)

// ActionKind says what a line of input asks for
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMessage
	ActionRename
)

func (k ActionKind) String() string {
	switch k {
	case ActionMessage:
		return "message"
	case ActionRename:
		return "rename"
	default:
		return "none"
	}
}

// Action is parsed user input
type Action struct {
	Kind ActionKind
	// Text is the trimmed input as typed
	Text string
	// Name is set for renames, with every whitespace character removed
	Name string
}

var (
	renamePattern = regexp.MustCompile(`^` + regexp.QuoteMeta(models.RenamePrefix) + `\s+\S`)
	whitespace    = regexp.MustCompile(`\s`)
)

// ParseInput classifies raw input. Whitespace-only input yields ActionNone.
func ParseInput(raw string) Action {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Action{Kind: ActionNone}
	}

	if renamePattern.MatchString(text) {
		rest := strings.TrimPrefix(text, models.RenamePrefix)
		return Action{
			Kind: ActionRename,
			Text: text,
			Name: whitespace.ReplaceAllString(rest, ""),
		}
	}

	return Action{Kind: ActionMessage, Text: text}
}
