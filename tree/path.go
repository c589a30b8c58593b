package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is an ordered sequence of keys locating a value within a tree.
// The empty path denotes the root. Paths compare by value.
type Path []Key

// Equal reports whether p and o address the same location: they have the
// same length and their keys are pairwise Same.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Same(o[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a (not necessarily proper) prefix of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// Append returns a new path of p followed by ks. p is never modified.
func (p Path) Append(ks ...Key) Path {
	res := make(Path, 0, len(p)+len(ks))
	res = append(res, p...)
	return append(res, ks...)
}

// Concat returns a new path of p followed by o.
func (p Path) Concat(o Path) Path {
	return p.Append(o...)
}

// TrimPrefix returns the part of p after prefix. If prefix is not a prefix
// of p, or is longer than p, the empty path is returned.
func (p Path) TrimPrefix(prefix Path) Path {
	if len(prefix) >= len(p) || !p.HasPrefix(prefix) {
		return Path{}
	}
	return p[len(prefix):].Append()
}

// Parent returns p without its last key. The root's parent is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p[:len(p)-1].Append()
}

func (p Path) Last() (Key, bool) {
	if len(p) == 0 {
		return Key{}, false
	}
	return p[len(p)-1], true
}

// Plain returns the keys of p as strings and ints.
func (p Path) Plain() []any {
	res := make([]any, len(p))
	for i, k := range p {
		res[i] = k.Plain()
	}
	return res
}

// KeyPath makes Path a Pather.
func (p Path) KeyPath() Path {
	return p
}

// String returns the kinded path representation of p:
//
//	Path{Field("a"), Field("b")}          → "a.b"
//	Path{Field("a"), Index(0)}            → "a[0]"
//	Path{Index(0), Field("b")}            → "[0].b"
//	Path{Field("a b")}                    → "\"a b\""
//	Path{}                                → ""
func (p Path) String() string {
	var buf strings.Builder
	for i, k := range p {
		if !k.IsIndex() && i > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(k.String())
	}
	return buf.String()
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	res, err := ParsePath(string(d))
	if err != nil {
		return err
	}
	*p = res
	return nil
}

func needsQuote(field string) bool {
	if field == "" {
		return true
	}
	for _, r := range field {
		switch r {
		case '.', '[', ']', '{', '}', '"', '\'', ' ', '\t', '\n', '\r', '\\':
			return true
		}
		if r < 0x20 {
			return true
		}
	}
	return false
}

// ParsePath parses a kinded path.
//
// Kinded path syntax:
//   - "a.b" → field a, then field b
//   - "a[0]" → field a, then list index 0
//   - "[0].b" → list index 0, then field b
//   - "\"a.b\".c" → quoted field "a.b", then field c
//   - "" → root path
//
// Returns an error wrapping ErrParsePath if the syntax is invalid.
func ParsePath(s string) (Path, error) {
	res := Path{}
	if s == "" {
		return res, nil
	}
	frag := s
	first := true
	for len(frag) > 0 {
		switch frag[0] {
		case '[':
			i := strings.IndexByte(frag, ']')
			if i == -1 {
				return nil, fmt.Errorf("%w: expected '[' <index> ']' in %q", ErrParsePath, s)
			}
			u64, err := strconv.ParseUint(frag[1:i], 10, 31)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid list index %q: %v", ErrParsePath, frag[1:i], err)
			}
			res = append(res, Index(int(u64)))
			frag = frag[i+1:]
		case '.':
			if first {
				return nil, fmt.Errorf("%w: unexpected leading '.' in %q", ErrParsePath, s)
			}
			field, rest, err := parseField(frag[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: %v in %q", ErrParsePath, err, s)
			}
			res = append(res, Field(field))
			frag = rest
		default:
			if !first {
				return nil, fmt.Errorf("%w: expected '.' or '[' at %q in %q", ErrParsePath, frag, s)
			}
			field, rest, err := parseField(frag)
			if err != nil {
				return nil, fmt.Errorf("%w: %v in %q", ErrParsePath, err, s)
			}
			res = append(res, Field(field))
			frag = rest
		}
		first = false
	}
	return res, nil
}

// parseField parses a field name from the start of frag, stopping at '.'
// or '['. Double quoted fields use Go string literal escapes.
func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] == '"' {
		end := quotedEnd(frag)
		if end == -1 {
			return "", "", fmt.Errorf("unterminated quoted field")
		}
		field, err = strconv.Unquote(frag[:end])
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		return field, frag[end:], nil
	}
	i := strings.IndexAny(frag, ".[")
	if i == 0 {
		return "", "", fmt.Errorf("empty field")
	}
	if i == -1 {
		return frag, "", nil
	}
	return frag[:i], frag[i:], nil
}

// quotedEnd returns the length of the double quoted string at the start of
// d including both quotes, or -1.
func quotedEnd(d string) int {
	escaped := false
	for i := 1; i < len(d); i++ {
		switch d[i] {
		case '\\':
			escaped = !escaped
		case '"':
			if !escaped {
				return i + 1
			}
			escaped = false
		default:
			escaped = false
		}
	}
	return -1
}
