package parser

import (
	"github.com/ByRock010/CMPE321-Project4/pkg/parser/statements"
)

// CreateRecordParser parses record inserts:
//
//	create record <typeName> <value>...
//
// Every word after the type name is a value, keywords included; the
// language has no quoting, so values can never contain whitespace.
type CreateRecordParser struct{}

func (p *CreateRecordParser) Parse(l *Lexer) (*statements.CreateRecordStatement, error) {
	if err := expectToken(l.NextToken(), CREATE); err != nil {
		return nil, err
	}
	if err := expectToken(l.NextToken(), RECORD); err != nil {
		return nil, err
	}

	typeName, err := expectWord(l, "type name")
	if err != nil {
		return nil, err
	}

	var values []string
	for {
		token := l.NextToken()
		if token.Type == EOF {
			break
		}
		values = append(values, token.Value)
	}

	return statements.NewCreateRecordStatement(typeName, values), nil
}
