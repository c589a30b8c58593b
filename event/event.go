package event

import (
	"errors"

	"github.com/omniscientjs/immstruct/tree"
)

var ErrUnknownKind = errors.New("unknown event kind")

// Event is one of Swap, NextFrame, Added, Changed, Removed or Any.
type Event interface {
	Kind() Kind
	// KeyPath is the path of the change which caused the event.
	KeyPath() tree.Path
	isEvent()
}

// Swap reports that the root was replaced. New and Old are whole roots,
// except for swaps delivered to reference observers, where they are scoped
// to the reference path and Path is relative to it.
type Swap struct {
	New  *tree.Node
	Old  *tree.Node
	Path tree.Path
}

// NextFrame is a Swap delivered once per scheduled frame, carrying the
// payload of the latest swap in that frame.
type NextFrame struct {
	New  *tree.Node
	Old  *tree.Node
	Path tree.Path
}

// Added reports a value at Path which was absent before.
type Added struct {
	Value *tree.Node
	Path  tree.Path
}

// Changed reports a value at Path which was present both before and after.
type Changed struct {
	New  *tree.Node
	Old  *tree.Node
	Path tree.Path
}

// Removed reports a value at Path which is no longer present.
type Removed struct {
	Old  *tree.Node
	Path tree.Path
}

// Any accompanies every Added, Changed and Removed. New is nil for
// removals and Old is nil for additions.
type Any struct {
	New  *tree.Node
	Old  *tree.Node
	Path tree.Path
}

func (Swap) Kind() Kind      { return SwapKind }
func (NextFrame) Kind() Kind { return NextFrameKind }
func (Added) Kind() Kind     { return AddKind }
func (Changed) Kind() Kind   { return ChangeKind }
func (Removed) Kind() Kind   { return DeleteKind }
func (Any) Kind() Kind       { return AnyKind }

func (e Swap) KeyPath() tree.Path      { return e.Path }
func (e NextFrame) KeyPath() tree.Path { return e.Path }
func (e Added) KeyPath() tree.Path     { return e.Path }
func (e Changed) KeyPath() tree.Path   { return e.Path }
func (e Removed) KeyPath() tree.Path   { return e.Path }
func (e Any) KeyPath() tree.Path       { return e.Path }

func (Swap) isEvent()      {}
func (NextFrame) isEvent() {}
func (Added) isEvent()     {}
func (Changed) isEvent()   {}
func (Removed) isEvent()   {}
func (Any) isEvent()       {}

// Values returns the new and old values carried by ev. Either may be nil.
func Values(ev Event) (newValue, oldValue *tree.Node) {
	switch x := ev.(type) {
	case Swap:
		return x.New, x.Old
	case NextFrame:
		return x.New, x.Old
	case Added:
		return x.Value, nil
	case Changed:
		return x.New, x.Old
	case Removed:
		return nil, x.Old
	case Any:
		return x.New, x.Old
	}
	return nil, nil
}
