package tree

// Share returns next with every subtree which is Equal to the subtree at
// the same path in prev replaced by prev's. Numbers of equal value count
// as equal whatever their kind, since a JSON round trip turns 2.0 into 2.
// The result shares as much structure with prev as possible, so values
// decoded from outside can be set without disturbing identity based
// change detection; if nothing differs, it is prev itself.
func Share(prev, next *Node) *Node {
	if prev == nil || next == nil || prev == next {
		return next
	}
	if Equal(prev, next) || sameNumber(prev, next) {
		return prev
	}
	if prev.typ == SetType && next.typ == ListType {
		// a set encoded as a JSON array and decoded back
		if Equal(prev, FromSet(next.members()...)) {
			return prev
		}
		return next
	}
	if prev.typ != next.typ {
		return next
	}
	switch next.typ {
	case MapType:
		m := next.m
		for k, v := range next.All() {
			old, ok := prev.m.Get(k.field)
			if !ok {
				continue
			}
			if s := Share(old, v); s != v {
				m = m.Set(k.field, s)
			}
		}
		return shared(prev, &Node{typ: MapType, m: m})
	case ListType:
		l := next.l
		for k, v := range next.All() {
			if k.index >= prev.l.Len() {
				break
			}
			if s := Share(prev.l.Get(k.index), v); s != v {
				l = l.Set(k.index, s)
			}
		}
		return shared(prev, &Node{typ: ListType, l: l})
	}
	return next
}

func shared(prev, res *Node) *Node {
	if Equal(prev, res) {
		return prev
	}
	return res
}

func sameNumber(a, b *Node) bool {
	if a.typ != NumberType || b.typ != NumberType || a.isFloat == b.isFloat {
		return false
	}
	if a.isFloat {
		a, b = b, a
	}
	return float64(a.i64) == b.f64 && int64(b.f64) == a.i64
}
