// Package change classifies the difference at a path between two roots.
//
// Presence is decided by key existence, never by truthiness: a path
// holding null or false is present.
package change

import (
	"github.com/omniscientjs/immstruct/event"
	"github.com/omniscientjs/immstruct/tree"
)

// Classify compares the values at path in newRoot and oldRoot. It returns
// an event.Added, event.Changed or event.Removed, or false when the path
// is absent from both. Either root may be nil.
//
// A value present on both sides is reported as changed without comparing
// the values; callers only classify writes that replaced the root.
func Classify(newRoot, oldRoot *tree.Node, path tree.Path) (event.Event, bool) {
	nu, inNew := newRoot.GetIn(path)
	old, inOld := oldRoot.GetIn(path)
	switch {
	case inOld && !inNew:
		return event.Removed{Old: old, Path: path}, true
	case inOld && inNew:
		return event.Changed{New: nu, Old: old, Path: path}, true
	case inNew:
		return event.Added{Value: nu, Path: path}, true
	}
	return nil, false
}

// Any returns the unscoped values at path in both roots. Absent values are
// nil.
func Any(newRoot, oldRoot *tree.Node, path tree.Path) event.Any {
	nu, _ := newRoot.GetIn(path)
	old, _ := oldRoot.GetIn(path)
	return event.Any{New: nu, Old: old, Path: path}
}

// Matches reports whether ev is of kind k, treating event.AnyKind as
// matching every classified event.
func Matches(k event.Kind, ev event.Event) bool {
	if ev == nil {
		return false
	}
	return k == event.AnyKind || ev.Kind() == k
}
