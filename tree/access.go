package tree

import (
	"fmt"

	"github.com/benbjohnson/immutable"
)

// Get returns the child of n at key, if present. Index keys address maps
// by their decimal field; numeric field keys address lists. Sets are
// addressed by member, see All.
func (n *Node) Get(key Key) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	switch n.typ {
	case MapType:
		return n.m.Get(key.AsField())
	case ListType:
		i, ok := key.AsIndex()
		if !ok || i < 0 || i >= n.l.Len() {
			return nil, false
		}
		return n.l.Get(i), true
	case SetType:
		return n.member(key)
	}
	return nil, false
}

// GetIn returns the descendant of n at path. The empty path yields n.
func (n *Node) GetIn(path Path) (*Node, bool) {
	x := n
	for _, k := range path {
		var ok bool
		x, ok = x.Get(k)
		if !ok {
			return nil, false
		}
	}
	return x, x != nil
}

// Has reports whether key exists in n, whatever its value.
func (n *Node) Has(key Key) bool {
	_, ok := n.Get(key)
	return ok
}

// HasIn reports whether a value exists at path, whatever its value. A path
// holding null or false is present.
func (n *Node) HasIn(path Path) bool {
	_, ok := n.GetIn(path)
	return ok
}

// MaxListPad bounds how many nulls Set pads a list with before an index
// past its end.
const MaxListPad = 1 << 16

// Set returns n with key set to v. If the existing value at key is Equal to
// v, n itself is returned. Setting an index equal to a list's length
// appends; larger indices pad the list with nulls, up to MaxListPad of
// them, beyond which ErrBadIndex is returned.
func (n *Node) Set(key Key, v *Node) (*Node, error) {
	v = orNull(v)
	if old, ok := n.Get(key); ok && Equal(old, v) {
		return n, nil
	}
	return n.set(key, v)
}

// set is Set without the structural equality check.
func (n *Node) set(key Key, v *Node) (*Node, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: cannot set %s on absent value", ErrNotCollection, key)
	}
	switch n.typ {
	case MapType:
		return &Node{typ: MapType, m: n.m.Set(key.AsField(), v)}, nil
	case ListType:
		i, ok := key.AsIndex()
		if !ok || i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrBadIndex, key)
		}
		l := n.l
		if i < l.Len() {
			return &Node{typ: ListType, l: l.Set(i, v)}, nil
		}
		if i-l.Len() > MaxListPad {
			return nil, fmt.Errorf("%w: %s is %d past the end", ErrBadIndex, key, i-l.Len())
		}
		for l.Len() < i {
			l = l.Append(null)
		}
		return &Node{typ: ListType, l: l.Append(v)}, nil
	case SetType:
		return nil, fmt.Errorf("%w: cannot set %s on a set, use Add", ErrUnsupported, key)
	}
	return nil, fmt.Errorf("%w: cannot set %s on %s", ErrNotCollection, key, n.typ)
}

// SetIn returns n with the value at path set to v, creating intermediate
// maps as needed. The empty path replaces n by v.
func (n *Node) SetIn(path Path, v *Node) (*Node, error) {
	v = orNull(v)
	if len(path) == 0 {
		if Equal(n, v) {
			return n, nil
		}
		return v, nil
	}
	key := path[0]
	if len(path) == 1 {
		return n.Set(key, v)
	}
	child, ok := n.Get(key)
	if !ok {
		if n.Type().IsLeaf() {
			return nil, fmt.Errorf("%w: cannot set %s on %s", ErrNotCollection, path, n.Type())
		}
		child = emptyMap
	}
	next, err := child.SetIn(path[1:], v)
	if err != nil {
		return nil, err
	}
	if ok && next == child {
		return n, nil
	}
	return n.set(key, next)
}

// Update returns fn(n). If fn returns n or a value Equal to it, n itself is
// returned. A nil result is stored as null.
func (n *Node) Update(fn func(*Node) *Node) (*Node, error) {
	return n.UpdateIn(nil, nil, fn)
}

// UpdateIn replaces the value at path by fn applied to it. If nothing is at
// path, fn receives def; when it then returns def unchanged, nothing is
// created and n is returned.
func (n *Node) UpdateIn(path Path, def *Node, fn func(*Node) *Node) (*Node, error) {
	res, changed, err := updateIn(n, n != nil, path, def, fn)
	if err != nil {
		return nil, err
	}
	if !changed {
		return n, nil
	}
	return res, nil
}

func updateIn(existing *Node, present bool, path Path, def *Node, fn func(*Node) *Node) (*Node, bool, error) {
	if len(path) == 0 {
		cur := def
		if present {
			cur = existing
		}
		next := fn(cur)
		if next == cur {
			return existing, false, nil
		}
		next = orNull(next)
		if present && Equal(next, existing) {
			return existing, false, nil
		}
		return next, true, nil
	}
	if present && existing.typ.IsLeaf() {
		return nil, false, fmt.Errorf("%w: cannot update %s within %s", ErrNotCollection, path, existing.typ)
	}
	key := path[0]
	var (
		child        *Node
		childPresent bool
	)
	if present {
		child, childPresent = existing.Get(key)
	}
	next, changed, err := updateIn(child, childPresent, path[1:], def, fn)
	if err != nil || !changed {
		return existing, false, err
	}
	base := existing
	if !present {
		base = emptyMap
	}
	res, err := base.set(key, next)
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

// Remove returns n without key. Removing a list element shifts the
// following elements down. Removing an absent key returns n.
func (n *Node) Remove(key Key) (*Node, error) {
	if !n.Has(key) {
		return n, nil
	}
	switch n.typ {
	case MapType:
		return &Node{typ: MapType, m: n.m.Delete(key.AsField())}, nil
	case ListType:
		i, _ := key.AsIndex()
		b := immutable.NewListBuilder[*Node]()
		itr := n.l.Iterator()
		for !itr.Done() {
			j, v := itr.Next()
			if j != i {
				b.Append(v)
			}
		}
		return &Node{typ: ListType, l: b.List()}, nil
	case SetType:
		m, _ := n.Get(key)
		return n.Drop(m)
	}
	return n, nil
}

// RemoveIn returns n without the value at path. The root cannot be removed.
func (n *Node) RemoveIn(path Path) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: cannot remove the root", ErrBadKey)
	}
	key := path[0]
	if len(path) == 1 {
		return n.Remove(key)
	}
	child, ok := n.Get(key)
	if !ok {
		return n, nil
	}
	next, err := child.RemoveIn(path[1:])
	if err != nil {
		return nil, err
	}
	if next == child {
		return n, nil
	}
	return n.set(key, next)
}

// Merge sets every entry of each of others into n, in order. Maps merge by
// field and lists by index; sets take the union of their members.
func (n *Node) Merge(others ...*Node) (*Node, error) {
	return n.merge(false, others)
}

// MergeDeep is like Merge but recursively merges collections of the same
// type found under the same key.
func (n *Node) MergeDeep(others ...*Node) (*Node, error) {
	return n.merge(true, others)
}

func (n *Node) merge(deep bool, others []*Node) (*Node, error) {
	if !n.IsCollection() {
		return nil, fmt.Errorf("%w: cannot merge into %s", ErrNotCollection, n.Type())
	}
	res := n
	for _, o := range others {
		if o == nil {
			continue
		}
		if o.Type() != n.typ {
			return nil, fmt.Errorf("%w: cannot merge %s into %s", ErrUnsupported, o.Type(), n.typ)
		}
		if n.typ == SetType {
			var err error
			if res, err = res.Add(o.members()...); err != nil {
				return nil, err
			}
			continue
		}
		for k, v := range o.All() {
			if deep {
				if old, ok := res.Get(k); ok && old.IsCollection() && old.typ == v.typ {
					var err error
					v, err = old.merge(true, []*Node{v})
					if err != nil {
						return nil, err
					}
				}
			}
			var err error
			res, err = res.Set(k, v)
			if err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// Clear returns an empty collection of the type of n.
func (n *Node) Clear() (*Node, error) {
	switch n.Type() {
	case MapType:
		if n.m.Len() == 0 {
			return n, nil
		}
		return emptyMap, nil
	case ListType:
		if n.l.Len() == 0 {
			return n, nil
		}
		return emptyList, nil
	case SetType:
		if n.s.Len() == 0 {
			return n, nil
		}
		return emptySet, nil
	}
	return nil, fmt.Errorf("%w: cannot clear %s", ErrNotCollection, n.Type())
}

// Push appends vs to the list n, or adds them to the set n.
func (n *Node) Push(vs ...*Node) (*Node, error) {
	if n.Type() == SetType {
		return n.Add(vs...)
	}
	if n.Type() != ListType {
		return nil, fmt.Errorf("%w: cannot push onto %s", ErrNotCollection, n.Type())
	}
	if len(vs) == 0 {
		return n, nil
	}
	l := n.l
	for _, v := range vs {
		l = l.Append(orNull(v))
	}
	return &Node{typ: ListType, l: l}, nil
}
