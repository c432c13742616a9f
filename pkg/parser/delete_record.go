package parser

import (
	"github.com/ByRock010/CMPE321-Project4/pkg/parser/statements"
)

// DeleteRecordParser parses key deletions:
//
//	delete record <typeName> <key>
type DeleteRecordParser struct{}

func (p *DeleteRecordParser) Parse(l *Lexer) (*statements.DeleteRecordStatement, error) {
	if err := expectToken(l.NextToken(), DELETE); err != nil {
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

	return statements.NewDeleteRecordStatement(typeName, key), nil
}
