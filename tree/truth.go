package tree

// Truth reports the truthiness of a node. Absent (nil) nodes are false.
func Truth(node *Node) bool {
	if node == nil {
		return false
	}
	switch node.typ {
	case MapType:
		return node.m.Len() != 0
	case ListType:
		return node.l.Len() != 0
	case SetType:
		return node.s.Len() != 0
	case StringType:
		return node.str != ""
	case NumberType:
		if node.isFloat {
			return node.f64 != 0.0
		}
		return node.i64 != 0
	case BoolType:
		return node.b
	case NullType:
		return false
	default:
		panic("type")
	}
}
