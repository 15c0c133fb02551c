package interp

import "strconv"

// ValueType identifies the runtime type of a Value.
type ValueType string

const (
	IntegerType ValueType = "INTEGER"
	StringType  ValueType = "STRING"
	BooleanType ValueType = "BOOLEAN"
)

// Value is a runtime value produced by expression evaluation. Every
// evaluation yields a fresh value; values are never shared mutable state.
type Value interface {
	Type() ValueType
	// Inspect renders the value the way print emits it: integers in
	// decimal, strings verbatim, booleans as true/false.
	Inspect() string
}

// Integer is a signed 64-bit integer value.
type Integer struct {
	Value int64
}

func (i *Integer) Type() ValueType { return IntegerType }
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// String is a text value.
type String struct {
	Value string
}

func (s *String) Type() ValueType { return StringType }
func (s *String) Inspect() string { return s.Value }

// Boolean is a truth value.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ValueType { return BooleanType }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}
