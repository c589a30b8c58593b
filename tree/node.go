package tree

import (
	"iter"
	"math"
	"strings"

	"github.com/benbjohnson/immutable"
)

// Node is an immutable tree value. Every operation which would modify a
// node instead returns a new node sharing unchanged structure with the old
// one. Operations which change nothing return the receiver itself, so
// pointer equality of two nodes implies structural equality.
//
// The zero Node is a null value. A nil *Node denotes absence and never
// appears inside a collection.
type Node struct {
	typ     Type
	b       bool
	isFloat bool
	i64     int64
	f64     float64
	str     string
	m       *immutable.SortedMap[string, *Node]
	l       *immutable.List[*Node]
	s       *immutable.SortedMap[*Node, *Node]
}

type stringComparer struct{}

func (stringComparer) Compare(a, b string) int {
	return strings.Compare(a, b)
}

var (
	null      = &Node{typ: NullType}
	emptyMap  = &Node{typ: MapType, m: immutable.NewSortedMap[string, *Node](stringComparer{})}
	emptyList = &Node{typ: ListType, l: immutable.NewList[*Node]()}
)

func Null() *Node {
	return null
}

func EmptyMap() *Node {
	return emptyMap
}

func EmptyList() *Node {
	return emptyList
}

func FromBool(v bool) *Node {
	return &Node{typ: BoolType, b: v}
}

func FromInt(v int64) *Node {
	return &Node{typ: NumberType, i64: v}
}

func FromFloat(f float64) *Node {
	return &Node{typ: NumberType, isFloat: true, f64: f}
}

func FromString(v string) *Node {
	return &Node{typ: StringType, str: v}
}

// FromMap creates a map node. Nil values are stored as null.
func FromMap(m map[string]*Node) *Node {
	res := emptyMap.m
	for k, v := range m {
		res = res.Set(k, orNull(v))
	}
	return &Node{typ: MapType, m: res}
}

// FromSlice creates a list node. Nil values are stored as null.
func FromSlice(vs []*Node) *Node {
	b := immutable.NewListBuilder[*Node]()
	for _, v := range vs {
		b.Append(orNull(v))
	}
	return &Node{typ: ListType, l: b.List()}
}

// IsNode reports whether v is already a tree value rather than plain data.
func IsNode(v any) bool {
	_, ok := v.(*Node)
	return ok
}

func orNull(n *Node) *Node {
	if n == nil {
		return null
	}
	return n
}

// Type returns the type of n. A nil node has NullType.
func (n *Node) Type() Type {
	if n == nil {
		return NullType
	}
	return n.typ
}

func (n *Node) IsNull() bool {
	return n == nil || n.typ == NullType
}

// IsCollection reports whether n is a map, a list or a set.
func (n *Node) IsCollection() bool {
	return n != nil && !n.typ.IsLeaf()
}

func (n *Node) Bool() bool {
	return n != nil && n.typ == BoolType && n.b
}

// IsInt reports whether n is an integral number.
func (n *Node) IsInt() bool {
	return n != nil && n.typ == NumberType && !n.isFloat
}

// Int returns the integer value of a number node, truncating floats.
func (n *Node) Int() int64 {
	if n == nil || n.typ != NumberType {
		return 0
	}
	if n.isFloat {
		return int64(n.f64)
	}
	return n.i64
}

// Float returns the value of a number node as a float64.
func (n *Node) Float() float64 {
	if n == nil || n.typ != NumberType {
		return math.NaN()
	}
	if n.isFloat {
		return n.f64
	}
	return float64(n.i64)
}

// Str returns the value of a string node.
func (n *Node) Str() string {
	if n == nil || n.typ != StringType {
		return ""
	}
	return n.str
}

// Len returns the number of entries of a collection, or 0.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.typ {
	case MapType:
		return n.m.Len()
	case ListType:
		return n.l.Len()
	case SetType:
		return n.s.Len()
	}
	return 0
}

// All returns an iterator over the entries of a collection in key order
// (maps), index order (lists) or Compare order (sets). Set members are
// keyed as Get addresses them: strings by field, integers by index and
// other members by their JSON text. Scalars have no entries. The iterator
// may be restarted.
func (n *Node) All() iter.Seq2[Key, *Node] {
	return func(yield func(Key, *Node) bool) {
		if n == nil {
			return
		}
		switch n.typ {
		case MapType:
			itr := n.m.Iterator()
			for !itr.Done() {
				k, v, _ := itr.Next()
				if !yield(Field(k), v) {
					return
				}
			}
		case ListType:
			itr := n.l.Iterator()
			for !itr.Done() {
				i, v := itr.Next()
				if !yield(Index(i), v) {
					return
				}
			}
		case SetType:
			itr := n.s.Iterator()
			for !itr.Done() {
				m, _, _ := itr.Next()
				if !yield(memberKey(m), m) {
					return
				}
			}
		}
	}
}

// Keys returns the keys of a collection in iteration order.
func (n *Node) Keys() []Key {
	res := make([]Key, 0, n.Len())
	for k := range n.All() {
		res = append(res, k)
	}
	return res
}

// String returns the compact JSON representation of n.
func (n *Node) String() string {
	if n == nil {
		return "<absent>"
	}
	d, err := ToJSON(n)
	if err != nil {
		return "<" + n.typ.String() + ">"
	}
	return string(d)
}
