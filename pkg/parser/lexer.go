package parser

import (
	"strings"
	"unicode"
)

// keywords maps lowercased operation words to their token types. Only
// the operation words are matched case-insensitively; everything else
// in a command (names, values, field kinds) is case-sensitive and
// passes through as a WORD with its original spelling.
var keywords = map[string]TokenType{
	"create": CREATE,
	"search": SEARCH,
	"delete": DELETE,
	"type":   TYPE,
	"record": RECORD,
}

// Lexer splits one command line into whitespace-delimited word tokens.
// The command language has no quoting or escaping, so lexing never
// fails: any run of non-space bytes is a token.
type Lexer struct {
	input  string
	pos    int
	length int
}

// NewLexer creates a new Lexer for the given command line.
func NewLexer(input string) *Lexer {
	trimmed := strings.TrimSpace(input)
	return &Lexer{
		input:  trimmed,
		pos:    0,
		length: len(trimmed),
	}
}

// SetPos sets the lexer's current position to the given value.
// The position is only updated if it falls within valid bounds [0, length).
func (l *Lexer) SetPos(pos int) {
	if pos >= 0 && pos < l.length {
		l.pos = pos
	}
}

// NextToken scans and returns the next word from the input.
// It skips leading whitespace and returns an EOF token when the input
// is exhausted.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= l.length {
		return Token{Type: EOF, Value: "", Position: l.pos}
	}

	start := l.pos
	for l.pos < l.length && !unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
	value := l.input[start:l.pos]

	if tt, ok := keywords[strings.ToLower(value)]; ok {
		return Token{Type: tt, Value: value, Position: start}
	}
	return Token{Type: WORD, Value: value, Position: start}
}

// skipWhitespace advances the position past any whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.pos < l.length && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}
