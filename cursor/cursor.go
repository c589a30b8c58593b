// Package cursor provides immutable, path scoped views of a tree.
//
// A Cursor holds a root (its frame), a path into it and a change callback.
// Reads navigate the frame. Writes compute a new frame, report it to the
// callback together with the old frame and the path of the change, and
// return a new Cursor over whatever frame the callback hands back. The
// receiver is never modified.
package cursor

import (
	"errors"
	"fmt"
	"iter"

	"github.com/omniscientjs/immstruct/tree"
)

var ErrNilCursor = errors.New("write through nil cursor")

// ChangeFunc is told about every write: newRoot is the frame after the
// write, oldRoot the frame before it and path the full path of the change.
// A write which changes nothing is reported with newRoot == oldRoot. A
// non-nil result becomes the frame of the cursor returned by the write; an
// error fails the write.
type ChangeFunc func(newRoot, oldRoot *tree.Node, path tree.Path) (*tree.Node, error)

type Cursor struct {
	root     *tree.Node
	path     tree.Path
	onChange ChangeFunc
}

// New returns a cursor at path within root. onChange may be nil.
func New(root *tree.Node, path tree.Path, onChange ChangeFunc) *Cursor {
	return &Cursor{root: root, path: path.Append(), onChange: onChange}
}

// Root returns the frame of c.
func (c *Cursor) Root() *tree.Node {
	if c == nil {
		return nil
	}
	return c.root
}

// KeyPath returns the path of c. It makes a Cursor usable wherever a path
// is expected.
func (c *Cursor) KeyPath() tree.Path {
	if c == nil {
		return nil
	}
	return c.path
}

// Deref returns the value of c, or nil if nothing is at its path.
func (c *Cursor) Deref() *tree.Node {
	if c == nil {
		return nil
	}
	n, _ := c.root.GetIn(c.path)
	return n
}

// DerefOr is like Deref but returns def when nothing is at the path.
func (c *Cursor) DerefOr(def *tree.Node) *tree.Node {
	if n := c.Deref(); n != nil {
		return n
	}
	return def
}

// Exists reports whether a value, possibly null, is at the path of c.
func (c *Cursor) Exists() bool {
	return c.Deref() != nil
}

// Value returns the plain Go form of the value of c.
func (c *Cursor) Value() any {
	return c.Deref().Plain()
}

func (c *Cursor) Len() int {
	return c.Deref().Len()
}

// Cursor returns a cursor at sub below c over the same frame. With no
// arguments it returns c. It panics if sub is not a valid path.
func (c *Cursor) Cursor(sub ...any) *Cursor {
	p := tree.MustPath(sub...)
	if len(p) == 0 || c == nil {
		return c
	}
	return &Cursor{root: c.root, path: c.path.Concat(p), onChange: c.onChange}
}

func (c *Cursor) wrap(sub tree.Path, n *tree.Node) any {
	if n.IsCollection() {
		return &Cursor{root: c.root, path: c.path.Concat(sub), onChange: c.onChange}
	}
	return n.Plain()
}

// GetIn returns the value at path below c: a *Cursor if it is a map, a
// list or a set, or else its plain Go form. ok is false if nothing is there.
func (c *Cursor) GetIn(path any) (v any, ok bool) {
	if c == nil {
		return nil, false
	}
	p := tree.MustPath(path)
	n, ok := c.root.GetIn(c.path.Concat(p))
	if !ok {
		return nil, false
	}
	return c.wrap(p, n), true
}

// GetInOr is like GetIn but returns def if nothing is at path.
func (c *Cursor) GetInOr(path, def any) any {
	if v, ok := c.GetIn(path); ok {
		return v
	}
	return def
}

// Get is GetIn for a single key.
func (c *Cursor) Get(key any) (v any, ok bool) {
	return c.GetIn(mustKey(key))
}

// GetOr is like Get but returns def if nothing is at key.
func (c *Cursor) GetOr(key, def any) any {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// Contains reports whether the value of c is a set holding v.
func (c *Cursor) Contains(v any) bool {
	n, err := tree.FromPlain(v)
	if err != nil {
		return false
	}
	return c.Deref().Contains(n)
}

// All iterates over the entries of the value of c, wrapping collections
// as with GetIn.
func (c *Cursor) All() iter.Seq2[tree.Key, any] {
	return func(yield func(tree.Key, any) bool) {
		for k, v := range c.Deref().All() {
			if !yield(k, c.wrap(tree.Path{k}, v)) {
				return
			}
		}
	}
}

func mustKey(key any) tree.Path {
	p := tree.MustPath(key)
	if len(p) != 1 {
		panic(fmt.Sprintf("%v is not a single key", key))
	}
	return p
}

func (c *Cursor) String() string {
	if c == nil {
		return "<nil cursor>"
	}
	return fmt.Sprintf("cursor(/%s: %s)", c.path, c.Deref())
}
