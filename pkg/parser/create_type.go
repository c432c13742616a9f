package parser

import (
	"fmt"
	"strconv"

	"github.com/ByRock010/CMPE321-Project4/pkg/parser/statements"
	"github.com/ByRock010/CMPE321-Project4/pkg/types"
)

// CreateTypeParser parses type declarations:
//
//	create type <name> <numFields> <pkIndex> <fieldName fieldKind>...
type CreateTypeParser struct{}

func (p *CreateTypeParser) Parse(l *Lexer) (*statements.CreateTypeStatement, error) {
	if err := expectToken(l.NextToken(), CREATE); err != nil {
		return nil, err
	}
	if err := expectToken(l.NextToken(), TYPE); err != nil {
		return nil, err
	}

	typeName, err := expectWord(l, "type name")
	if err != nil {
		return nil, err
	}

	numFieldsWord, err := expectWord(l, "field count")
	if err != nil {
		return nil, err
	}
	numFields, err := strconv.Atoi(numFieldsWord)
	if err != nil {
		return nil, fmt.Errorf("field count '%s' is not a number", numFieldsWord)
	}

	pkWord, err := expectWord(l, "primary key index")
	if err != nil {
		return nil, err
	}
	pkIndex, err := strconv.Atoi(pkWord)
	if err != nil {
		return nil, fmt.Errorf("primary key index '%s' is not a number", pkWord)
	}

	stmt := statements.NewCreateTypeStatement(typeName, numFields, pkIndex)
	for {
		nameToken := l.NextToken()
		if nameToken.Type == EOF {
			break
		}

		kindWord, err := expectWord(l, fmt.Sprintf("kind of field '%s'", nameToken.Value))
		if err != nil {
			return nil, err
		}
		fieldType, err := types.ParseType(kindWord)
		if err != nil {
			return nil, err
		}
		stmt.AddField(nameToken.Value, fieldType)
	}

	return stmt, nil
}
