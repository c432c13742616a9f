// Package parser turns command-language lines into typed statements.
//
// The language has four operations, all on a single line of
// whitespace-separated words:
//
//	create type <name> <numFields> <pkIndex> <fieldName fieldKind>...
//	create record <name> <value>...
//	search record <name> <key>
//	delete record <name> <key>
//
// Operation words are case-insensitive; names, values and the field
// kinds (exactly "int" or "str") are not.
package parser

import (
	"errors"
	"fmt"

	"github.com/ByRock010/CMPE321-Project4/pkg/parser/statements"
)

// ParseCommand parses one command line and returns the corresponding
// Statement. This is the entry point of the package: the session layer
// feeds it every input line, batch or interactive.
//
// Parameters:
//   - line: one command, without a trailing newline
//
// Returns:
//   - statements.Statement: the parsed statement
//   - error: an error if the line is empty, the operation is unknown,
//     or the operation's arguments are malformed
func ParseCommand(line string) (statements.Statement, error) {
	l := NewLexer(line)
	token := l.NextToken()
	if token.Type == EOF {
		return nil, errors.New("empty command")
	}

	switch token.Type {
	case CREATE:
		secondToken := l.NextToken()
		l.SetPos(0)
		switch secondToken.Type {
		case TYPE:
			return (&CreateTypeParser{}).Parse(l)
		case RECORD:
			return (&CreateRecordParser{}).Parse(l)
		default:
			return nil, fmt.Errorf("expected 'type' or 'record' after create, got '%s'", secondToken.Value)
		}
	case SEARCH:
		l.SetPos(0)
		return (&SearchRecordParser{}).Parse(l)
	case DELETE:
		l.SetPos(0)
		return (&DeleteRecordParser{}).Parse(l)
	default:
		return nil, fmt.Errorf("unsupported command: %s", token.Value)
	}
}

// expectToken validates that the given token matches the expected token type.
func expectToken(t Token, expected TokenType) error {
	if t.Type != expected {
		return fmt.Errorf("expected %s, got '%s'", expected.String(), t.Value)
	}
	return nil
}

// expectWord reads the next token and returns its value. Keywords are
// accepted too: the language does not reserve its operation words, so a
// type can legally be named "record".
func expectWord(l *Lexer, what string) (string, error) {
	token := l.NextToken()
	if token.Type == EOF {
		return "", fmt.Errorf("expected %s, got end of command", what)
	}
	return token.Value, nil
}

// expectEOF validates that the command has no trailing words.
func expectEOF(l *Lexer) error {
	if token := l.NextToken(); token.Type != EOF {
		return fmt.Errorf("unexpected trailing input: '%s'", token.Value)
	}
	return nil
}
