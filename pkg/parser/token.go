package parser

// TokenType classifies one whitespace-delimited word of command input.
type TokenType int

const (
	// WORD is any bare word: type names, field names, values, keys and
	// field kinds. The command language has no quoting, so a word can
	// never contain whitespace.
	WORD TokenType = iota
	CREATE
	SEARCH
	DELETE
	TYPE
	RECORD
	EOF
)

func (tt TokenType) String() string {
	switch tt {
	case WORD:
		return "WORD"
	case CREATE:
		return "CREATE"
	case SEARCH:
		return "SEARCH"
	case DELETE:
		return "DELETE"
	case TYPE:
		return "TYPE"
	case RECORD:
		return "RECORD"
	case EOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token is one word of input together with its classification and byte
// position in the command line.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}
