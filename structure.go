package immstruct

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/omniscientjs/immstruct/cursor"
	"github.com/omniscientjs/immstruct/event"
	"github.com/omniscientjs/immstruct/history"
	"github.com/omniscientjs/immstruct/metrics"
	"github.com/omniscientjs/immstruct/reftrie"
	"github.com/omniscientjs/immstruct/tree"
)

// Structure owns a root tree and notifies listeners of every write made
// through its cursors. It is an event.Emitter: see the event package for
// the events it emits.
//
// A Structure is not safe for concurrent use. Listeners run synchronously
// within the write which triggered them and may themselves write; such
// nested writes complete, events included, before the outer write resumes.
// Listener panics are not recovered.
type Structure struct {
	*event.Emitter

	key     string
	current *tree.Node
	refs    *reftrie.Trie
	lastRef reftrie.ID
	history *history.Log

	scheduler Scheduler
	frame     event.NextFrame
	queued    bool

	log     *slog.Logger
	metrics *metrics.Metrics
}

// New creates a structure. Without WithData its root is an empty map.
func New(opts ...Option) (*Structure, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	root := tree.EmptyMap()
	if o.data != nil {
		var err error
		root, err = tree.FromPlain(o.data)
		if err != nil {
			return nil, fmt.Errorf("error converting data: %w", err)
		}
	}
	key := o.key
	if key == "" {
		key = uuid.NewString()
	}
	log := o.logger
	if log == nil {
		log = slog.Default()
	}
	s := &Structure{
		Emitter:   event.NewEmitter(),
		key:       key,
		current:   root,
		scheduler: o.scheduler,
		log:       log.With("structure", key),
		metrics:   o.metrics,
	}
	if o.history {
		s.history = history.New(root, o.historyLimit)
		s.metrics.History(key, s.history.Len(), 0)
	}
	return s, nil
}

// Key returns the name of s.
func (s *Structure) Key() string {
	return s.key
}

// Current returns the live root.
func (s *Structure) Current() *tree.Node {
	return s.current
}

// History returns the undo log, or nil if history is disabled.
func (s *Structure) History() *history.Log {
	return s.history
}

// Cursor returns a cursor at path over the live root. Writes through it
// update the structure. path is normalized with tree.ToPath; an invalid
// path panics, as does a structure without a root (ErrNoData).
func (s *Structure) Cursor(path ...any) *cursor.Cursor {
	if s.current == nil {
		panic(ErrNoData)
	}
	return cursor.New(s.current, tree.MustPath(path...), s.onChange)
}

// ForceSwap emits swap (and schedules next-animation-frame) as if the root
// had changed from oldData to newData at path, without writing anything.
// A nil newData stands for the live root. History is not touched and no
// add, change or delete events are emitted.
func (s *Structure) ForceSwap(newData, oldData *tree.Node, path ...any) {
	if newData == nil {
		newData = s.current
	}
	s.emitSwap(newData, oldData, tree.MustPath(path...))
}

// Undo moves the history back by steps (at least 1), stopping at the
// oldest snapshot, and makes that snapshot the live root. No events are
// emitted; use ForceSwap to notify listeners.
func (s *Structure) Undo(steps int) (*tree.Node, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	s.current = s.history.Undo(steps)
	s.log.Debug("undo", "steps", steps, "revision", s.history.Revision())
	return s.current, nil
}

// Redo moves the history forward by steps (at least 1), stopping at the
// newest snapshot, and makes that snapshot the live root. No events are
// emitted.
func (s *Structure) Redo(steps int) (*tree.Node, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	s.current = s.history.Redo(steps)
	s.log.Debug("redo", "steps", steps, "revision", s.history.Revision())
	return s.current, nil
}

// UndoUntil makes the history snapshot holding root current. If there is
// none, it returns an error wrapping history.ErrNotInHistory and nothing
// changes. No events are emitted.
func (s *Structure) UndoUntil(root *tree.Node) (*tree.Node, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	res, err := s.history.UndoUntil(root)
	if err != nil {
		return nil, fmt.Errorf("undo until: %w", err)
	}
	s.current = res
	s.log.Debug("undo until", "revision", s.history.Revision())
	return s.current, nil
}

// Diff lists the differences between two roots, typically history
// snapshots.
func (s *Structure) Diff(from, to *tree.Node) []tree.Change {
	return tree.Diff(from, to)
}

func (s *Structure) subscribe(path tree.Path, fn reftrie.Listener) reftrie.ID {
	s.lastRef++
	s.refs = s.refs.Subscribe(path, s.lastRef, fn)
	s.metrics.SetReferences(s.key, s.refs.Len())
	return s.lastRef
}

func (s *Structure) unsubscribe(path tree.Path, id reftrie.ID) {
	s.refs = s.refs.Unsubscribe(path, id)
	s.metrics.SetReferences(s.key, s.refs.Len())
}
