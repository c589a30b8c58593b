// Package reftrie implements a persistent trie of listeners keyed by path.
//
// A Trie is an immutable value: Subscribe and Unsubscribe return new
// tries, and a dispatch in progress keeps working on the trie it started
// with. Listeners may therefore (un)subscribe while being called.
package reftrie

import (
	"cmp"

	"github.com/benbjohnson/immutable"
	"github.com/omniscientjs/immstruct/debug"
	"github.com/omniscientjs/immstruct/tree"
)

// ID identifies a listener within a trie.
type ID uint64

// Listener is called with the root-scoped new and old roots and the full
// path of the change.
type Listener func(newRoot, oldRoot *tree.Node, path tree.Path)

type idComparer struct{}

func (idComparer) Compare(a, b ID) int {
	return cmp.Compare(a, b)
}

// Trie holds the listeners registered exactly at its path and a child
// trie per next key. Children are keyed by the canonical (field) form of
// their key, so Index(0) and Field("0") share a node. The nil *Trie is
// the empty trie.
type Trie struct {
	listeners *immutable.SortedMap[ID, Listener]
	children  *immutable.SortedMap[tree.Key, *Trie]
}

func New() *Trie {
	return nil
}

func (t *Trie) clone() *Trie {
	if t == nil {
		return &Trie{
			listeners: immutable.NewSortedMap[ID, Listener](idComparer{}),
			children:  immutable.NewSortedMap[tree.Key, *Trie](tree.KeyComparer{}),
		}
	}
	res := *t
	return &res
}

func (t *Trie) empty() bool {
	return t == nil || (t.listeners.Len() == 0 && t.children.Len() == 0)
}

func (t *Trie) child(k tree.Key) *Trie {
	if t == nil {
		return nil
	}
	c, _ := t.children.Get(k.Canonical())
	return c
}

// Subscribe returns t with fn registered at path under id. Registering an
// id again replaces its listener.
func (t *Trie) Subscribe(path tree.Path, id ID, fn Listener) *Trie {
	res := t.clone()
	if len(path) == 0 {
		res.listeners = res.listeners.Set(id, fn)
		return res
	}
	res.children = res.children.Set(path[0].Canonical(), t.child(path[0]).Subscribe(path[1:], id, fn))
	return res
}

// Unsubscribe returns t without the listener id at path. Nodes left with
// no listeners and no children are pruned. Unsubscribing an absent id
// returns t.
func (t *Trie) Unsubscribe(path tree.Path, id ID) *Trie {
	if t == nil {
		return nil
	}
	res := t.clone()
	if len(path) == 0 {
		if _, ok := t.listeners.Get(id); !ok {
			return t
		}
		res.listeners = t.listeners.Delete(id)
	} else {
		c := t.child(path[0])
		if c == nil {
			return t
		}
		nc := c.Unsubscribe(path[1:], id)
		if nc == c {
			return t
		}
		if nc == nil {
			res.children = t.children.Delete(path[0].Canonical())
		} else {
			res.children = t.children.Set(path[0].Canonical(), nc)
		}
	}
	if res.empty() {
		return nil
	}
	return res
}

// Has reports whether id is registered at path.
func (t *Trie) Has(path tree.Path, id ID) bool {
	for _, k := range path {
		t = t.child(k)
	}
	if t == nil {
		return false
	}
	_, ok := t.listeners.Get(id)
	return ok
}

// Len returns the number of listeners in t.
func (t *Trie) Len() int {
	if t == nil {
		return 0
	}
	n := t.listeners.Len()
	itr := t.children.Iterator()
	for !itr.Done() {
		_, c, _ := itr.Next()
		n += c.Len()
	}
	return n
}

// Dispatch notifies the listeners concerned by a change at path from
// oldRoot to newRoot. Starting at the root, the listeners of every node
// along path are called; below path, every node whose value differs is
// visited too. Each listener receives newRoot, oldRoot and path
// unchanged.
//
// The root is always visited; below it, a node whose new and old values
// are identical is skipped along with its subtree.
func (t *Trie) Dispatch(newRoot, oldRoot *tree.Node, path tree.Path) {
	t.dispatch(newRoot, oldRoot, path, args{newRoot, oldRoot, path}, true)
}

type args struct {
	newRoot, oldRoot *tree.Node
	path             tree.Path
}

func (t *Trie) dispatch(nu, old *tree.Node, rest tree.Path, a args, root bool) {
	if t == nil || (!root && nu == old) {
		return
	}
	if t.listeners.Len() != 0 {
		if debug.Dispatch() {
			debug.Logf("dispatch %s: %d listeners at %s remaining\n", a.path, t.listeners.Len(), rest)
		}
		itr := t.listeners.Iterator()
		for !itr.Done() {
			_, fn, _ := itr.Next()
			fn(a.newRoot, a.oldRoot, a.path)
		}
	}
	if len(rest) > 0 {
		k := rest[0]
		n, _ := nu.Get(k)
		o, _ := old.Get(k)
		t.child(k).dispatch(n, o, rest[1:], a, false)
		return
	}
	itr := t.children.Iterator()
	for !itr.Done() {
		k, c, _ := itr.Next()
		n, _ := nu.Get(k)
		o, _ := old.Get(k)
		c.dispatch(n, o, nil, a, false)
	}
}
