package types

import "io"

// Field is a single typed value inside a record. Implementations are
// fixed-width: Serialize always emits exactly Length() bytes so that
// slot offsets stay computable from the schema alone.
type Field interface {
	Serialize(w io.Writer) error

	Type() Type

	String() string

	Equals(other Field) bool

	Length() uint32
}
