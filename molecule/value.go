package molecule

import "strconv"

//ValueKind tells which field of a Value is set
type ValueKind int

const (
	Null ValueKind = iota
	Number
	String
)

// Value is a single per-atom property value read from a data field
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

func NullValue() Value { return Value{Kind: Null} }

func NumberValue(f float64) Value { return Value{Kind: Number, Num: f} }

func StringValue(s string) Value { return Value{Kind: String, Str: s} }

func (v Value) IsNull() bool { return v.Kind == Null }

func (v Value) IsString() bool { return v.Kind == String }

func (v Value) String() string {
	switch v.Kind {
	case Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case String:
		return v.Str
	}
	return ""
}

// Property is a value together with the categorical label derived from it
type Property struct {
	Value Value
	Label string
}
