package tree

import (
	"cmp"
	"fmt"

	"github.com/benbjohnson/immutable"
)

type nodeComparer struct{}

func (nodeComparer) Compare(a, b *Node) int {
	return Compare(a, b)
}

var emptySet = &Node{typ: SetType, s: immutable.NewSortedMap[*Node, *Node](nodeComparer{})}

func EmptySet() *Node {
	return emptySet
}

// FromSet creates a set node of the distinct values of vs, in Compare
// order. Nil values are stored as null.
func FromSet(vs ...*Node) *Node {
	res, _ := emptySet.Add(vs...)
	return res
}

// memberKey returns the key addressing m within a set: the field of a
// string, the index of an integer, and the JSON text of anything else.
func memberKey(m *Node) Key {
	switch {
	case m.typ == StringType:
		return Field(m.str)
	case m.IsInt():
		return Index(int(m.i64))
	}
	return Field(m.String())
}

// member looks up the member of the set n addressed by key. Index keys
// prefer integer members and field keys string members.
func (n *Node) member(key Key) (*Node, bool) {
	candidates := []*Node{FromString(key.AsField())}
	if i, ok := key.AsIndex(); ok {
		candidates = append(candidates, FromInt(int64(i)))
		if key.IsIndex() {
			candidates[0], candidates[1] = candidates[1], candidates[0]
		}
	}
	for _, p := range candidates {
		if m, ok := n.s.Get(p); ok {
			return m, true
		}
	}
	itr := n.s.Iterator()
	for !itr.Done() {
		m, _, _ := itr.Next()
		if m.typ != StringType && !m.IsInt() && m.String() == key.AsField() {
			return m, true
		}
	}
	return nil, false
}

// Add returns the set n with vs added. Members already present are
// skipped; if all are, n itself is returned.
func (n *Node) Add(vs ...*Node) (*Node, error) {
	if n.Type() != SetType {
		return nil, fmt.Errorf("%w: cannot add to %s", ErrNotCollection, n.Type())
	}
	s, changed := n.s, false
	for _, v := range vs {
		v = orNull(v)
		if _, ok := s.Get(v); ok {
			continue
		}
		s, changed = s.Set(v, v), true
	}
	if !changed {
		return n, nil
	}
	return &Node{typ: SetType, s: s}, nil
}

// Contains reports whether v is a member of the set n.
func (n *Node) Contains(v *Node) bool {
	if n.Type() != SetType {
		return false
	}
	_, ok := n.s.Get(orNull(v))
	return ok
}

// Drop returns the set n without vs. Absent members are ignored; if none
// is present, n itself is returned.
func (n *Node) Drop(vs ...*Node) (*Node, error) {
	if n.Type() != SetType {
		return nil, fmt.Errorf("%w: cannot drop from %s", ErrNotCollection, n.Type())
	}
	s, changed := n.s, false
	for _, v := range vs {
		v = orNull(v)
		if _, ok := s.Get(v); !ok {
			continue
		}
		s, changed = s.Delete(v), true
	}
	if !changed {
		return n, nil
	}
	return &Node{typ: SetType, s: s}, nil
}

// members returns the values of n: the members of a set, the elements of
// a list or the values of a map.
func (n *Node) members() []*Node {
	res := make([]*Node, 0, n.Len())
	for _, v := range n.All() {
		res = append(res, v)
	}
	return res
}

func compareSets(a, b *Node) int {
	itA, itB := a.s.Iterator(), b.s.Iterator()
	for !itA.Done() && !itB.Done() {
		ma, _, _ := itA.Next()
		mb, _, _ := itB.Next()
		if c := Compare(ma, mb); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.s.Len(), b.s.Len())
}

// diffSets reports members of to missing from from as added and members
// of from missing from to as removed.
func diffSets(res []Change, path Path, from, to *Node) []Change {
	itr := from.s.Iterator()
	for !itr.Done() {
		m, _, _ := itr.Next()
		if !to.Contains(m) {
			res = append(res, Change{Kind: Removed, Path: path.Append(memberKey(m)), Old: m})
		}
	}
	itr = to.s.Iterator()
	for !itr.Done() {
		m, _, _ := itr.Next()
		if !from.Contains(m) {
			res = append(res, Change{Kind: Added, Path: path.Append(memberKey(m)), New: m})
		}
	}
	return res
}
