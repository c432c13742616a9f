package statements

// StatementType identifies one of the four command-language operations.
type StatementType int

const (
	CreateType StatementType = iota
	CreateRecord
	SearchRecord
	DeleteRecord
)

func (st StatementType) String() string {
	switch st {
	case CreateType:
		return "CREATE TYPE"
	case CreateRecord:
		return "CREATE RECORD"
	case SearchRecord:
		return "SEARCH RECORD"
	case DeleteRecord:
		return "DELETE RECORD"
	default:
		return "UNKNOWN"
	}
}

// IsMutation reports whether statements of this type change the data
// directory. Searches only read; everything else writes.
func (st StatementType) IsMutation() bool {
	return st != SearchRecord
}

// Statement is the interface every parsed command implements.
type Statement interface {
	// GetType returns the type of the statement
	GetType() StatementType
	// String returns a canonical textual form of the statement
	String() string
	// Validate checks if the statement is well-formed and returns an error if not
	Validate() error
}
