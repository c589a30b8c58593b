package tree

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Absent (nil) nodes sort first.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.typ)
	rankB := rank(b.typ)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.typ {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.str, b.str)
	case BoolType:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	case ListType:
		return compareLists(a, b)
	case MapType:
		return compareMaps(a, b)
	case SetType:
		return compareSets(a, b)
	}
	return 0
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.typ != b.typ {
		return false
	}
	if a.typ.IsLeaf() {
		return Compare(a, b) == 0
	}
	if a.Len() != b.Len() {
		return false
	}
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < List < Set < Map
func rank(t Type) int {
	switch t {
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case ListType:
		return 5
	case SetType:
		return 6
	case MapType:
		return 7
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	// Sub-rank: Int64 < Float64
	if a.isFloat != b.isFloat {
		if a.isFloat {
			return 1
		}
		return -1
	}
	if a.isFloat {
		return cmp.Compare(a.f64, b.f64)
	}
	return cmp.Compare(a.i64, b.i64)
}

func compareLists(a, b *Node) int {
	itA, itB := a.l.Iterator(), b.l.Iterator()
	for !itA.Done() && !itB.Done() {
		_, va := itA.Next()
		_, vb := itB.Next()
		if c := Compare(va, vb); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.l.Len(), b.l.Len())
}

func compareMaps(a, b *Node) int {
	itA, itB := a.m.Iterator(), b.m.Iterator()
	for !itA.Done() && !itB.Done() {
		ka, va, _ := itA.Next()
		kb, vb, _ := itB.Next()
		if c := strings.Compare(ka, kb); c != 0 {
			return c
		}
		if c := Compare(va, vb); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.m.Len(), b.m.Len())
}
