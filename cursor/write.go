package cursor

import (
	"fmt"

	"github.com/omniscientjs/immstruct/tree"
)

// write replaces the value of c by fn applied to it, or to def if nothing
// is at the path of c. sub is the path of the change below c.
func (c *Cursor) write(sub tree.Path, def *tree.Node, fn func(*tree.Node) (*tree.Node, error)) (*Cursor, error) {
	if c == nil {
		return nil, ErrNilCursor
	}
	cur, ok := c.root.GetIn(c.path)
	if !ok {
		cur = def
	}
	next, err := fn(cur)
	if err != nil {
		return nil, fmt.Errorf("at %q: %w", c.path.String(), err)
	}
	newRoot := c.root
	if next != cur {
		newRoot, err = c.root.SetIn(c.path, next)
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", c.path.String(), err)
		}
	}
	frame := newRoot
	if c.onChange != nil {
		r, err := c.onChange(newRoot, c.root, c.path.Concat(sub))
		if err != nil {
			return nil, err
		}
		if r != nil {
			frame = r
		}
	}
	return &Cursor{root: frame, path: c.path, onChange: c.onChange}, nil
}

func nodes(vs []any) ([]*tree.Node, error) {
	res := make([]*tree.Node, len(vs))
	for i, v := range vs {
		n, err := tree.FromPlain(v)
		if err != nil {
			return nil, err
		}
		res[i] = n
	}
	return res, nil
}

// Set sets key below c to v, which may be a *tree.Node or plain data.
func (c *Cursor) Set(key, v any) (*Cursor, error) {
	return c.SetIn(mustKey(key), v)
}

// SetIn sets path below c to v, creating intermediate maps as needed.
// An empty path replaces the value of c.
func (c *Cursor) SetIn(path, v any) (*Cursor, error) {
	p := tree.MustPath(path)
	n, err := tree.FromPlain(v)
	if err != nil {
		return nil, err
	}
	return c.write(p, tree.EmptyMap(), func(cur *tree.Node) (*tree.Node, error) {
		return cur.SetIn(p, n)
	})
}

// Update replaces the value of c by fn applied to it. fn receives nil if
// nothing is at the path; returning its argument changes nothing.
func (c *Cursor) Update(fn func(*tree.Node) *tree.Node) (*Cursor, error) {
	return c.write(nil, nil, func(cur *tree.Node) (*tree.Node, error) {
		return fn(cur), nil
	})
}

// UpdateIn replaces the value at path below c by fn applied to it, or to
// def if nothing is there.
func (c *Cursor) UpdateIn(path, def any, fn func(*tree.Node) *tree.Node) (*Cursor, error) {
	p := tree.MustPath(path)
	var d *tree.Node
	if def != nil {
		var err error
		d, err = tree.FromPlain(def)
		if err != nil {
			return nil, err
		}
	}
	return c.write(p, tree.EmptyMap(), func(cur *tree.Node) (*tree.Node, error) {
		return cur.UpdateIn(p, d, fn)
	})
}

// Remove removes key below c.
func (c *Cursor) Remove(key any) (*Cursor, error) {
	return c.RemoveIn(mustKey(key))
}

// RemoveIn removes path below c. The path must not be empty.
func (c *Cursor) RemoveIn(path any) (*Cursor, error) {
	p := tree.MustPath(path)
	return c.write(p, tree.EmptyMap(), func(cur *tree.Node) (*tree.Node, error) {
		return cur.RemoveIn(p)
	})
}

// Merge merges each of vs into the value of c.
func (c *Cursor) Merge(vs ...any) (*Cursor, error) {
	ns, err := nodes(vs)
	if err != nil {
		return nil, err
	}
	return c.write(nil, tree.EmptyMap(), func(cur *tree.Node) (*tree.Node, error) {
		return cur.Merge(ns...)
	})
}

// MergeDeep deeply merges each of vs into the value of c.
func (c *Cursor) MergeDeep(vs ...any) (*Cursor, error) {
	ns, err := nodes(vs)
	if err != nil {
		return nil, err
	}
	return c.write(nil, tree.EmptyMap(), func(cur *tree.Node) (*tree.Node, error) {
		return cur.MergeDeep(ns...)
	})
}

// Clear empties the collection at c.
func (c *Cursor) Clear() (*Cursor, error) {
	return c.write(nil, tree.EmptyMap(), func(cur *tree.Node) (*tree.Node, error) {
		return cur.Clear()
	})
}

// Push appends vs to the list at c, or adds them to the set at c.
func (c *Cursor) Push(vs ...any) (*Cursor, error) {
	ns, err := nodes(vs)
	if err != nil {
		return nil, err
	}
	return c.write(nil, tree.EmptyList(), func(cur *tree.Node) (*tree.Node, error) {
		return cur.Push(ns...)
	})
}

// Patch applies an RFC 6902 JSON Patch to the value of c. Parts of the
// value the patch leaves equal keep their identity.
func (c *Cursor) Patch(patch []byte) (*Cursor, error) {
	return c.write(nil, tree.EmptyMap(), func(cur *tree.Node) (*tree.Node, error) {
		next, err := tree.ApplyPatch(cur, patch)
		if err != nil {
			return nil, err
		}
		return tree.Share(cur, next), nil
	})
}

// MergePatch applies an RFC 7386 JSON Merge Patch to the value of c.
func (c *Cursor) MergePatch(patch []byte) (*Cursor, error) {
	return c.write(nil, tree.EmptyMap(), func(cur *tree.Node) (*tree.Node, error) {
		next, err := tree.MergePatch(cur, patch)
		if err != nil {
			return nil, err
		}
		return tree.Share(cur, next), nil
	})
}

// Add adds vs to the set at c, creating an empty set if nothing is there.
func (c *Cursor) Add(vs ...any) (*Cursor, error) {
	ns, err := nodes(vs)
	if err != nil {
		return nil, err
	}
	return c.write(nil, tree.EmptySet(), func(cur *tree.Node) (*tree.Node, error) {
		return cur.Add(ns...)
	})
}

// Drop removes vs from the set at c.
func (c *Cursor) Drop(vs ...any) (*Cursor, error) {
	ns, err := nodes(vs)
	if err != nil {
		return nil, err
	}
	return c.write(nil, tree.EmptySet(), func(cur *tree.Node) (*tree.Node, error) {
		return cur.Drop(ns...)
	})
}
