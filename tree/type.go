package tree

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	MapType
	ListType
	SetType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		MapType:    "Map",
		ListType:   "List",
		SetType:    "Set",
		StringType: "String",
		NumberType: "Number",
		BoolType:   "Bool",
		NullType:   "Null",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for _, tt := range Types() {
		if tt.String() == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		MapType,
		ListType,
		SetType,
	}
}

// IsLeaf reports whether values of type t have no children.
func (t Type) IsLeaf() bool {
	switch t {
	case MapType, ListType, SetType:
		return false
	default:
		return true
	}
}
