package parser

import (
	"testing"
)

func TestNewLexer(t *testing.T) {
	input := "  create type house  "
	lexer := NewLexer(input)

	if lexer.input != "create type house" {
		t.Errorf("Expected input to be trimmed, got %q", lexer.input)
	}
	if lexer.pos != 0 {
		t.Errorf("Expected pos to be 0, got %d", lexer.pos)
	}
	if lexer.length != len("create type house") {
		t.Errorf("Expected length to be %d, got %d", len("create type house"), lexer.length)
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected []Token
	}{
		{
			input: "create type",
			expected: []Token{
				{Type: CREATE, Value: "create", Position: 0},
				{Type: TYPE, Value: "type", Position: 7},
				{Type: EOF, Value: "", Position: 11},
			},
		},
		{
			input: "SEARCH Record house",
			expected: []Token{
				{Type: SEARCH, Value: "SEARCH", Position: 0},
				{Type: RECORD, Value: "Record", Position: 7},
				{Type: WORD, Value: "house", Position: 14},
				{Type: EOF, Value: "", Position: 19},
			},
		},
		{
			input: "delete record house 42",
			expected: []Token{
				{Type: DELETE, Value: "delete", Position: 0},
				{Type: RECORD, Value: "record", Position: 7},
				{Type: WORD, Value: "house", Position: 14},
				{Type: WORD, Value: "42", Position: 20},
				{Type: EOF, Value: "", Position: 22},
			},
		},
	}

	for _, tt := range tests {
		lexer := NewLexer(tt.input)
		for i, want := range tt.expected {
			got := lexer.NextToken()
			if got != want {
				t.Errorf("Input %q token %d: expected %+v, got %+v", tt.input, i, want, got)
			}
		}
	}
}

func TestLexerPreservesWordCase(t *testing.T) {
	lexer := NewLexer("create record House Atreides")

	lexer.NextToken()
	lexer.NextToken()
	name := lexer.NextToken()
	value := lexer.NextToken()

	if name.Value != "House" {
		t.Errorf("Expected type name case to survive, got %q", name.Value)
	}
	if value.Value != "Atreides" {
		t.Errorf("Expected value case to survive, got %q", value.Value)
	}
}

func TestLexerKeywordAsValue(t *testing.T) {
	// Operation words are not reserved: they still lex as keywords in
	// value position, and parsers read their Value instead.
	lexer := NewLexer("create record notes delete")

	var tokens []Token
	for {
		token := lexer.NextToken()
		if token.Type == EOF {
			break
		}
		tokens = append(tokens, token)
	}

	if len(tokens) != 4 {
		t.Fatalf("Expected 4 tokens, got %d", len(tokens))
	}
	if tokens[3].Type != DELETE || tokens[3].Value != "delete" {
		t.Errorf("Expected trailing 'delete' keyword token, got %+v", tokens[3])
	}
}

func TestLexerEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		lexer := NewLexer(input)
		if token := lexer.NextToken(); token.Type != EOF {
			t.Errorf("Input %q: expected EOF, got %+v", input, token)
		}
	}
}

func TestLexerSetPos(t *testing.T) {
	lexer := NewLexer("create type house")

	lexer.NextToken()
	lexer.NextToken()
	lexer.SetPos(0)

	if token := lexer.NextToken(); token.Type != CREATE {
		t.Errorf("Expected rewind to re-read CREATE, got %+v", token)
	}

	lexer.SetPos(-1)
	lexer.SetPos(1000)
	if token := lexer.NextToken(); token.Type != TYPE {
		t.Errorf("Expected out-of-bounds SetPos to be ignored, got %+v", token)
	}
}
