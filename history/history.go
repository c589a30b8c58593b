// Package history implements a bounded linear undo log of root snapshots.
package history

import (
	"errors"

	"github.com/benbjohnson/immutable"
	"github.com/omniscientjs/immstruct/debug"
	"github.com/omniscientjs/immstruct/tree"
)

// Unlimited is the limit of a log which never evicts entries.
const Unlimited = -1

var ErrNotInHistory = errors.New("snapshot not in history")

// Log is a sequence of root snapshots with a current revision. The entry
// at the current revision is the live root. Recording after an undo
// discards the entries after the current revision.
//
// Invariant: 0 <= Revision() < Len().
type Log struct {
	entries *immutable.List[*tree.Node]
	rev     int
	limit   int
}

// New returns a log holding only initial. A limit below 1 means Unlimited.
func New(initial *tree.Node, limit int) *Log {
	if limit < 1 {
		limit = Unlimited
	}
	return &Log{
		entries: immutable.NewList(initial),
		limit:   limit,
	}
}

// Record appends root after the current revision and makes it current.
// Once the log exceeds its limit the oldest entries are evicted; Record
// returns how many.
func (l *Log) Record(root *tree.Node) int {
	entries := l.entries
	if l.rev+1 < entries.Len() {
		entries = entries.Slice(0, l.rev+1)
	}
	entries = entries.Append(root)
	l.rev++
	evicted := 0
	if l.limit != Unlimited && entries.Len() > l.limit {
		evicted = entries.Len() - l.limit
		entries = entries.Slice(evicted, entries.Len())
		l.rev -= evicted
	}
	l.entries = entries
	if debug.History() {
		debug.Logf("history: recorded revision %d of %d, evicted %d\n", l.rev, entries.Len(), evicted)
	}
	return evicted
}

// Undo moves the current revision back by steps, stopping at the oldest
// entry, and returns the new current entry. Steps below 1 count as 1.
func (l *Log) Undo(steps int) *tree.Node {
	return l.move(-max(steps, 1))
}

// Redo moves the current revision forward by steps, stopping at the
// newest entry, and returns the new current entry. Steps below 1 count
// as 1.
func (l *Log) Redo(steps int) *tree.Node {
	return l.move(max(steps, 1))
}

func (l *Log) move(delta int) *tree.Node {
	l.rev = min(max(l.rev+delta, 0), l.entries.Len()-1)
	if debug.History() {
		debug.Logf("history: moved %d to revision %d of %d\n", delta, l.rev, l.entries.Len())
	}
	return l.entries.Get(l.rev)
}

// UndoUntil makes the first entry holding root current, preferring an
// identical snapshot over a structurally equal one. If no entry matches,
// the log is left unchanged and ErrNotInHistory is returned.
func (l *Log) UndoUntil(root *tree.Node) (*tree.Node, error) {
	i := l.index(root)
	if i == -1 {
		return nil, ErrNotInHistory
	}
	l.rev = i
	return l.entries.Get(i), nil
}

func (l *Log) index(root *tree.Node) int {
	equal := -1
	itr := l.entries.Iterator()
	for !itr.Done() {
		i, n := itr.Next()
		if n == root {
			return i
		}
		if equal == -1 && tree.Equal(n, root) {
			equal = i
		}
	}
	return equal
}

func (l *Log) Len() int {
	return l.entries.Len()
}

func (l *Log) Revision() int {
	return l.rev
}

func (l *Log) Limit() int {
	return l.limit
}

// At returns the entry at index i.
func (l *Log) At(i int) (*tree.Node, bool) {
	if i < 0 || i >= l.entries.Len() {
		return nil, false
	}
	return l.entries.Get(i), true
}

// Current returns the entry at the current revision.
func (l *Log) Current() *tree.Node {
	return l.entries.Get(l.rev)
}

// Entries returns a copy of every entry, oldest first.
func (l *Log) Entries() []*tree.Node {
	res := make([]*tree.Node, 0, l.entries.Len())
	itr := l.entries.Iterator()
	for !itr.Done() {
		_, n := itr.Next()
		res = append(res, n)
	}
	return res
}
