package tree

import (
	"cmp"
	"fmt"
	"strconv"
)

type keyKind uint8

const (
	fieldKey keyKind = iota
	indexKey
)

// Key is a single path segment: either a map field or a list index.
// Keys are comparable and compare by value.
type Key struct {
	kind  keyKind
	field string
	index int
}

// Field returns a key addressing the map entry name.
func Field(name string) Key {
	return Key{kind: fieldKey, field: name}
}

// Index returns a key addressing the list element i.
func Index(i int) Key {
	return Key{kind: indexKey, index: i}
}

func (k Key) IsIndex() bool {
	return k.kind == indexKey
}

// AsField returns the key as a map field. Index keys are rendered in decimal.
func (k Key) AsField() string {
	if k.kind == indexKey {
		return strconv.Itoa(k.index)
	}
	return k.field
}

// AsIndex returns the key as a list index. Field keys are parsed as
// decimal; ok is false when that fails or when the field is not the
// canonical spelling of its number, such as "01" or "+1".
func (k Key) AsIndex() (int, bool) {
	if k.kind == indexKey {
		return k.index, true
	}
	i, err := strconv.Atoi(k.field)
	if err != nil || strconv.Itoa(i) != k.field {
		return 0, false
	}
	return i, true
}

// Same reports whether k and o address the same location in any tree:
// Index(3) and Field("3") do.
func (k Key) Same(o Key) bool {
	if k.kind == o.kind {
		return k == o
	}
	return k.AsField() == o.AsField()
}

// Canonical returns the field key addressing the same location as k.
func (k Key) Canonical() Key {
	if k.kind == fieldKey {
		return k
	}
	return Field(k.AsField())
}

// Plain returns the key as a string or an int.
func (k Key) Plain() any {
	if k.kind == indexKey {
		return k.index
	}
	return k.field
}

// String returns the kinded path segment for k, e.g. `a`, `"a b"` or `[3]`.
func (k Key) String() string {
	if k.kind == indexKey {
		return "[" + strconv.Itoa(k.index) + "]"
	}
	if needsQuote(k.field) {
		return strconv.Quote(k.field)
	}
	return k.field
}

// Compare orders field keys before index keys, then by value.
func (k Key) Compare(o Key) int {
	if k.kind != o.kind {
		return cmp.Compare(k.kind, o.kind)
	}
	if k.kind == indexKey {
		return cmp.Compare(k.index, o.index)
	}
	return cmp.Compare(k.field, o.field)
}

// KeyComparer orders keys for use in persistent sorted maps.
type KeyComparer struct{}

func (KeyComparer) Compare(a, b Key) int {
	return a.Compare(b)
}

// Pather is implemented by values which denote a location in a tree, such
// as cursors.
type Pather interface {
	KeyPath() Path
}

// ToPath normalizes its arguments into a single Path. Each part may be nil
// (ignored), a string (field), any integer kind (index), a Key, a Path, a
// slice of keys, strings, ints or such values, or a Pather.
func ToPath(parts ...any) (Path, error) {
	var res Path
	for _, part := range parts {
		var err error
		res, err = appendPart(res, part)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// MustPath is like ToPath but panics if the parts cannot be normalized.
func MustPath(parts ...any) Path {
	p, err := ToPath(parts...)
	if err != nil {
		panic(err)
	}
	return p
}

func appendPart(res Path, part any) (Path, error) {
	switch x := part.(type) {
	case nil:
		return res, nil
	case Key:
		return append(res, x), nil
	case Path:
		return append(res, x...), nil
	case []Key:
		return append(res, x...), nil
	case string:
		return append(res, Field(x)), nil
	case int:
		return append(res, Index(x)), nil
	case int8:
		return append(res, Index(int(x))), nil
	case int16:
		return append(res, Index(int(x))), nil
	case int32:
		return append(res, Index(int(x))), nil
	case int64:
		return append(res, Index(int(x))), nil
	case uint:
		return append(res, Index(int(x))), nil
	case uint8:
		return append(res, Index(int(x))), nil
	case uint16:
		return append(res, Index(int(x))), nil
	case uint32:
		return append(res, Index(int(x))), nil
	case []string:
		for _, s := range x {
			res = append(res, Field(s))
		}
		return res, nil
	case []int:
		for _, i := range x {
			res = append(res, Index(i))
		}
		return res, nil
	case []any:
		for _, y := range x {
			var err error
			res, err = appendPart(res, y)
			if err != nil {
				return nil, err
			}
		}
		return res, nil
	case Pather:
		return append(res, x.KeyPath()...), nil
	default:
		return nil, fmt.Errorf("%w: cannot use %T as a path", ErrBadKey, part)
	}
}
