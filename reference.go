package immstruct

import (
	"github.com/omniscientjs/immstruct/change"
	"github.com/omniscientjs/immstruct/cond"
	"github.com/omniscientjs/immstruct/cursor"
	"github.com/omniscientjs/immstruct/event"
	"github.com/omniscientjs/immstruct/reftrie"
	"github.com/omniscientjs/immstruct/tree"
)

// Reference is a long lived handle on a path of a structure. Its cursor
// is refreshed whenever anything at or below the path changes, and
// observers can be registered for such changes.
//
// Once destroyed, a reference is inert: Cursor and Reference return nil,
// and observing or unobserving does nothing.
type Reference struct {
	s         *Structure
	path      tree.Path
	cur       *cursor.Cursor
	refresher reftrie.ID
	observers []reftrie.ID
	alive     bool
}

// Reference returns a reference to path, which is normalized as for
// Cursor and may thus be a cursor.
func (s *Structure) Reference(path ...any) *Reference {
	p := tree.MustPath(path...)
	r := &Reference{s: s, path: p, cur: s.Cursor(p), alive: true}
	r.refresher = s.subscribe(p, func(_, _ *tree.Node, _ tree.Path) {
		r.cur = s.Cursor(r.path)
	})
	return r
}

// Path returns the path of r.
func (r *Reference) Path() tree.Path {
	return r.path
}

// KeyPath makes a Reference usable wherever a path is expected.
func (r *Reference) KeyPath() tree.Path {
	return r.path
}

// Alive reports whether r has not been destroyed.
func (r *Reference) Alive() bool {
	return r.alive
}

// Cursor returns the latest cursor at the path of r, or at sub below it.
func (r *Reference) Cursor(sub ...any) *cursor.Cursor {
	if !r.alive {
		return nil
	}
	return r.cur.Cursor(sub...)
}

// Reference returns a new reference at sub below r.
func (r *Reference) Reference(sub ...any) *Reference {
	if !r.alive {
		return nil
	}
	return r.s.Reference(r.path, tree.MustPath(sub...))
}

// Observe calls fn whenever the value at or below the path of r changes.
// The event's New and Old are the values at the path of r and its Path is
// relative to it. The returned function removes the observer.
func (r *Reference) Observe(fn func(event.Swap)) (unobserve func()) {
	path := r.path
	return r.observe(func(newRoot, oldRoot *tree.Node, keyPath tree.Path) {
		nu, _ := newRoot.GetIn(path)
		old, _ := oldRoot.GetIn(path)
		fn(event.Swap{New: nu, Old: old, Path: keyPath.TrimPrefix(path)})
	})
}

// ObserveKind is like Observe for event kinds other than swap: the change
// below the path of r is classified and fn is called if it is of kind k,
// with values and path relative to the root. event.AnyKind receives an
// event.Any for every change. event.SwapKind behaves as Observe, and
// event.NextFrameKind is never delivered to references.
func (r *Reference) ObserveKind(k event.Kind, fn event.Listener) (unobserve func()) {
	switch k {
	case event.SwapKind:
		return r.Observe(func(ev event.Swap) { fn(ev) })
	case event.NextFrameKind:
		return func() {}
	case event.AnyKind:
		return r.observe(func(newRoot, oldRoot *tree.Node, keyPath tree.Path) {
			fn(change.Any(newRoot, oldRoot, keyPath))
		})
	}
	return r.observe(func(newRoot, oldRoot *tree.Node, keyPath tree.Path) {
		ev, ok := change.Classify(newRoot, oldRoot, keyPath)
		if ok && ev.Kind() == k {
			fn(ev)
		}
	})
}

// ObserveIf calls fn with the classified change below the path of r when
// c matches it. Conditions failing to evaluate are logged and treated as
// not matching.
func (r *Reference) ObserveIf(c *cond.Condition, fn event.Listener) (unobserve func()) {
	return r.observe(func(newRoot, oldRoot *tree.Node, keyPath tree.Path) {
		ev, ok := change.Classify(newRoot, oldRoot, keyPath)
		if !ok {
			return
		}
		match, err := c.Match(ev)
		if err != nil {
			r.s.log.Warn("condition failed", "condition", c.String(), "path", keyPath.String(), "error", err)
			return
		}
		if match {
			fn(ev)
		}
	})
}

func (r *Reference) observe(fn reftrie.Listener) func() {
	if !r.alive {
		return func() {}
	}
	id := r.s.subscribe(r.path, fn)
	r.observers = append(r.observers, id)
	return func() {
		if !r.alive {
			return
		}
		r.s.unsubscribe(r.path, id)
		r.dropObserver(id)
	}
}

func (r *Reference) dropObserver(id reftrie.ID) {
	for i, o := range r.observers {
		if o == id {
			r.observers = append(r.observers[:i:i], r.observers[i+1:]...)
			return
		}
	}
}

// UnobserveAll removes every observer of r. If destroyInternal is set, r
// also stops refreshing its cursor.
func (r *Reference) UnobserveAll(destroyInternal bool) {
	if !r.alive {
		return
	}
	for _, id := range r.observers {
		r.s.unsubscribe(r.path, id)
	}
	r.observers = nil
	if destroyInternal {
		r.s.unsubscribe(r.path, r.refresher)
	}
}

// Destroy removes every observer of r and makes it inert.
func (r *Reference) Destroy() {
	if !r.alive {
		return
	}
	r.UnobserveAll(true)
	r.cur = nil
	r.alive = false
	r.s.log.Debug("destroyed reference", "path", r.path.String())
}
