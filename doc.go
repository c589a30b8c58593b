// Package immstruct tracks mutations of a persistent tree.
//
// A Structure owns the live root of a tree (see package tree) and hands
// out cursors over it. A cursor write produces a new root, which the
// structure adopts and announces through events:
//
//   - swap, with the whole new and old roots
//   - next-animation-frame, once per scheduled frame (see Scheduler)
//   - add, change or delete, with the values at the path of the write
//   - any, with the same values, after each add, change or delete
//
// Writes through a cursor over an outdated root are merged onto the live
// root at the path of the write, so stale cursors never undo the changes
// made by others:
//
//	s, _ := immstruct.New(immstruct.WithData(map[string]any{"foo": 42, "bar": 24}))
//	foo, bar := s.Cursor("foo"), s.Cursor("bar")
//	foo.Update(inc)
//	bar.Update(inc) // root is now {"foo": 43, "bar": 25}
//
// References are self refreshing cursors at a path, which can be observed
// for changes at or below the path:
//
//	ref := s.Reference("foo")
//	unobserve := ref.Observe(func(ev event.Swap) { ... })
//
// With WithHistory, every write is recorded in an undo log; Undo, Redo and
// UndoUntil move the live root through it without emitting events.
//
// Listeners run synchronously and may write to the structure. Their
// panics are not recovered.
package immstruct
