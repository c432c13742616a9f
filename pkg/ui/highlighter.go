package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Operation words of the command language. These match
	// case-insensitively, the way the interpreter reads them.
	opWords = []string{
		"create", "search", "delete", "type", "record",
	}

	// Field kinds match exactly; INT or Str would be rejected by the
	// interpreter, so they stay unhighlighted here too.
	fieldKinds = []string{
		"int", "str",
	}
)

// CommandHighlighter provides syntax highlighting for archive commands
type CommandHighlighter struct {
	opWords      map[string]bool
	kinds        map[string]bool
	keywordStyle lipgloss.Style
	kindStyle    lipgloss.Style
	numberStyle  lipgloss.Style
}

func NewCommandHighlighter() *CommandHighlighter {
	h := &CommandHighlighter{
		opWords: make(map[string]bool),
		kinds:   make(map[string]bool),
	}

	for _, w := range opWords {
		h.opWords[w] = true
	}

	for _, k := range fieldKinds {
		h.kinds[k] = true
	}

	h.keywordStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF79C6")).
		Bold(true)

	h.kindStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8BE9FD")).
		Bold(true)

	h.numberStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#BD93F9"))

	return h
}

func (h *CommandHighlighter) Highlight(command string) string {
	words := strings.Fields(command)
	highlighted := make([]string, 0, len(words))

	for _, word := range words {
		switch {
		case h.opWords[strings.ToLower(word)]:
			highlighted = append(highlighted, h.keywordStyle.Render(word))
		case h.kinds[word]:
			highlighted = append(highlighted, h.kindStyle.Render(word))
		case isNumeric(word):
			highlighted = append(highlighted, h.numberStyle.Render(word))
		default:
			highlighted = append(highlighted, word)
		}
	}

	return strings.Join(highlighted, " ")
}

// isNumeric checks if a string represents a number
func isNumeric(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("0123456789-", c) {
			return false
		}
	}
	return s != ""
}
