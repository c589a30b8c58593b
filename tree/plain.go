package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
)

// FromPlain converts nested Go data into a tree. Maps with string keys
// become map nodes, slices become lists, maps to struct{} (Go's sets)
// become sets, and scalars become leaves. Values which are already nodes
// are used as is. Any other value is converted through its JSON encoding.
func FromPlain(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return null, nil
	case *Node:
		return orNull(x), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q: %w", ErrUnsupported, x, err)
		}
		return FromFloat(f), nil
	case map[string]any:
		res := emptyMap.m
		for k, e := range x {
			n, err := FromPlain(e)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			res = res.Set(k, n)
		}
		return &Node{typ: MapType, m: res}, nil
	case map[string]*Node:
		return FromMap(x), nil
	case map[any]any:
		res := emptyMap.m
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: map key %v of type %T", ErrUnsupported, k, k)
			}
			n, err := FromPlain(e)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", ks, err)
			}
			res = res.Set(ks, n)
		}
		return &Node{typ: MapType, m: res}, nil
	case []any:
		vs := make([]*Node, len(x))
		for i, e := range x {
			n, err := FromPlain(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case []*Node:
		return FromSlice(x), nil
	case map[string]struct{}:
		return plainSet(x)
	case map[int]struct{}:
		return plainSet(x)
	case map[int64]struct{}:
		return plainSet(x)
	case map[any]struct{}:
		return plainSet(x)
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %T: %w", ErrUnsupported, v, err)
	}
	return FromJSON(d)
}

func plainSet[K comparable](m map[K]struct{}) (*Node, error) {
	vs := make([]*Node, 0, len(m))
	for k := range m {
		n, err := FromPlain(k)
		if err != nil {
			return nil, fmt.Errorf("set member %v: %w", k, err)
		}
		vs = append(vs, n)
	}
	return FromSet(vs...), nil
}

// MustPlain is like FromPlain but panics on error.
func MustPlain(v any) *Node {
	n, err := FromPlain(v)
	if err != nil {
		panic(err)
	}
	return n
}

func fromUint(u uint64) *Node {
	if u > math.MaxInt64 {
		return FromFloat(float64(u))
	}
	return FromInt(int64(u))
}

// Plain converts n into nested Go data: map[string]any, []any, bool,
// int64, float64, string or nil. Sets become []any in Compare order, so
// their JSON and YAML forms are arrays.
func (n *Node) Plain() any {
	if n == nil {
		return nil
	}
	switch n.typ {
	case BoolType:
		return n.b
	case NumberType:
		if n.isFloat {
			return n.f64
		}
		return n.i64
	case StringType:
		return n.str
	case MapType:
		res := make(map[string]any, n.m.Len())
		for k, v := range n.All() {
			res[k.field] = v.Plain()
		}
		return res
	case ListType, SetType:
		res := make([]any, 0, n.Len())
		for _, v := range n.All() {
			res = append(res, v.Plain())
		}
		return res
	}
	return nil
}

// FromJSON decodes a JSON document into a tree. Integral numbers become
// integers.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return FromPlain(v)
}

func ToJSON(n *Node) ([]byte, error) {
	return json.Marshal(n.Plain())
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return ToJSON(n)
}

func (n *Node) UnmarshalJSON(d []byte) error {
	res, err := FromJSON(d)
	if err != nil {
		return err
	}
	*n = *res
	return nil
}

// FromYAML decodes a YAML document into a tree.
func FromYAML(d []byte) (*Node, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return FromPlain(v)
}

func ToYAML(n *Node) ([]byte, error) {
	return yaml.Marshal(n.Plain())
}
