package tree

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type ChangeKind int

const (
	Added ChangeKind = iota
	Changed
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "add"
	case Changed:
		return "change"
	case Removed:
		return "delete"
	}
	return "<unknown change>"
}

// Change describes one difference between two trees. Old is nil for
// additions and New is nil for removals.
type Change struct {
	Kind ChangeKind
	Path Path
	Old  *Node
	New  *Node
}

// Diff returns the differences between from and to, as the deepest paths
// at which values were added, changed or removed. Shared substructure is
// skipped without being visited.
func Diff(from, to *Node) []Change {
	var res []Change
	return diffAt(res, Path{}, from, to)
}

func diffAt(res []Change, path Path, from, to *Node) []Change {
	switch {
	case from == to:
		return res
	case from == nil:
		return append(res, Change{Kind: Added, Path: path, New: to})
	case to == nil:
		return append(res, Change{Kind: Removed, Path: path, Old: from})
	case from.typ != to.typ || from.typ.IsLeaf():
		if Equal(from, to) {
			return res
		}
		return append(res, Change{Kind: Changed, Path: path, Old: from, New: to})
	case from.typ == MapType:
		return diffMaps(res, path, from, to)
	case from.typ == SetType:
		return diffSets(res, path, from, to)
	default:
		return diffLists(res, path, from, to)
	}
}

// for every different field name add a change,
// for every same field name recurse on the value.
func diffMaps(res []Change, path Path, from, to *Node) []Change {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes, ok := mapFieldsTo(fieldMap, runeMap, from)
	if !ok {
		return diffMapsSorted(res, path, from, to)
	}
	toRunes, ok := mapFieldsTo(fieldMap, runeMap, to)
	if !ok {
		return diffMapsSorted(res, path, from, to)
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMainRunes(fromRunes, toRunes, false)
	for i := range diffs {
		d := &diffs[i]
		for _, r := range []rune(d.Text) {
			k := Field(runeMap[r])
			switch d.Type {
			case diffpatch.DiffDelete:
				old, _ := from.Get(k)
				res = append(res, Change{Kind: Removed, Path: path.Append(k), Old: old})
			case diffpatch.DiffEqual:
				old, _ := from.Get(k)
				nu, _ := to.Get(k)
				res = diffAt(res, path.Append(k), old, nu)
			case diffpatch.DiffInsert:
				nu, _ := to.Get(k)
				res = append(res, Change{Kind: Added, Path: path.Append(k), New: nu})
			}
		}
	}
	return res
}

// mapFieldsTo encodes the fields of node as runes, allocating a rune for
// each field not yet in m. It fails once the private use planes are
// exhausted.
func mapFieldsTo(m map[string]rune, im map[rune]string, node *Node) ([]rune, bool) {
	rs := make([]rune, 0, node.Len())
	for k := range node.All() {
		f := k.field
		r, ok := m[f]
		if !ok {
			r, ok = privateRune(len(m))
			if !ok {
				return nil, false
			}
			m[f] = r
			im[r] = f
		}
		rs = append(rs, r)
	}
	return rs, true
}

const planeRunes = 0xFFFE

// privateRune returns the i'th rune of supplementary private use planes
// 15 and 16, skipping their two noncharacters, so every rune survives the
// round trip through diff text.
func privateRune(i int) (rune, bool) {
	switch {
	case i < 0:
		return 0, false
	case i < planeRunes:
		return rune(0xF0000 + i), true
	case i < 2*planeRunes:
		return rune(0x100000 + i - planeRunes), true
	}
	return 0, false
}

// diffMapsSorted walks the fields of from and to in order, reporting
// fields only in from as removed and fields only in to as added.
func diffMapsSorted(res []Change, path Path, from, to *Node) []Change {
	itA, itB := from.m.Iterator(), to.m.Iterator()
	ka, va, okA := itA.Next()
	kb, vb, okB := itB.Next()
	for okA || okB {
		switch {
		case okA && (!okB || ka < kb):
			res = append(res, Change{Kind: Removed, Path: path.Append(Field(ka)), Old: va})
			ka, va, okA = itA.Next()
		case okB && (!okA || kb < ka):
			res = append(res, Change{Kind: Added, Path: path.Append(Field(kb)), New: vb})
			kb, vb, okB = itB.Next()
		default:
			res = diffAt(res, path.Append(Field(ka)), va, vb)
			ka, va, okA = itA.Next()
			kb, vb, okB = itB.Next()
		}
	}
	return res
}

func diffLists(res []Change, path Path, from, to *Node) []Change {
	n := max(from.Len(), to.Len())
	for i := 0; i < n; i++ {
		k := Index(i)
		old, _ := from.Get(k)
		nu, _ := to.Get(k)
		res = diffAt(res, path.Append(k), old, nu)
	}
	return res
}
