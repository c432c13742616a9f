package parser

import (
	"github.com/ByRock010/CMPE321-Project4/pkg/parser/statements"
)

// SearchRecordParser parses key lookups:
//
//	search record <typeName> <key>
type SearchRecordParser struct{}

func (p *SearchRecordParser) Parse(l *Lexer) (*statements.SearchRecordStatement, error) {
	if err := expectToken(l.NextToken(), SEARCH); err != nil {
		return nil, err
	}
	if err := expectToken(l.NextToken(), RECORD); err != nil {
		return nil, err
	}

	typeName, err := expectWord(l, "type name")
	if err != nil {
		return nil, err
	}
	key, err := expectWord(l, "key")
	if err != nil {
		return nil, err
	}
	if err := expectEOF(l); err != nil {
		return nil, err
	}

	return statements.NewSearchRecordStatement(typeName, key), nil
}
