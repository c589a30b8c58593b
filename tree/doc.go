// Package tree provides the persistent tree values managed by immstruct.
//
// # Overview
//
// A tree is a JSON-like value: null, boolean, number, string, map (string
// keys, iterated in key order), list (dense, indexed) or set (distinct
// members in Compare order, encoded as arrays in JSON and YAML). Trees are
// immutable. Every modifying operation returns a new *Node which shares all
// unchanged substructure with the original, so an update at depth d copies
// O(d) nodes.
//
// Operations that change nothing return their receiver. This is what lets
// callers detect changes cheaply by pointer comparison:
//
//	a := tree.MustPlain(map[string]any{"foo": map[string]any{}, "bar": 42})
//	b, _ := a.SetIn(tree.MustPath("foo"), tree.EmptyMap())
//	// b == a
//
// # Creating Nodes
//
//	s := tree.FromString("hello")
//	n := tree.FromInt(42)
//	m := tree.FromMap(map[string]*tree.Node{"key": s})
//	l := tree.FromSlice([]*tree.Node{n, s})
//	p, err := tree.FromPlain(map[string]any{"a": []any{1, "b"}})
//	j, err := tree.FromJSON([]byte(`{"a": 1}`))
//	y, err := tree.FromYAML([]byte("a: 1\n"))
//	t := tree.FromSet(s, n)
//
// # Paths
//
// A Path is a sequence of Keys, each either a Field or an Index. Index(3)
// and Field("3") address the same location, and paths compare that way.
// Set members are addressed by the member itself. ToPath
// normalizes loosely typed path arguments (strings, ints, slices, other
// paths and Pathers such as cursors). Paths also have a textual kinded
// form:
//
//	p, err := tree.ParsePath(`users[0].name`)
//	p.String() // "users[0].name"
//
// # Presence
//
// Has and HasIn report whether a key exists, regardless of its value: a
// key holding null or false is present. Absence is represented by a nil
// *Node and a false ok result.
//
// # Diff and Patch
//
// Diff lists the paths at which two trees differ. ApplyPatch and MergePatch
// apply RFC 6902 and RFC 7386 documents.
//
// # Thread Safety
//
// Nodes are immutable and may be shared freely between goroutines.
package tree
