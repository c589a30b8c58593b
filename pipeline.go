package immstruct

import (
	"fmt"

	"github.com/omniscientjs/immstruct/change"
	"github.com/omniscientjs/immstruct/debug"
	"github.com/omniscientjs/immstruct/event"
	"github.com/omniscientjs/immstruct/tree"
)

// onChange runs every cursor write through the pipeline
//
//	reconcile → record history → emit swap → emit add/change/delete and any
//
// Each stage after reconcile only runs if the live root changed. History
// is recorded before any listener runs so that nested writes append after
// the write which triggered them.
func (s *Structure) onChange(newRoot, oldRoot *tree.Node, path tree.Path) (*tree.Node, error) {
	if newRoot == oldRoot {
		return s.current, nil
	}
	prev := s.current
	next, err := s.reconcile(newRoot, oldRoot, path)
	if err != nil {
		return nil, err
	}
	if next == prev {
		return next, nil
	}
	s.current = next
	s.metrics.Swap(s.key)
	s.recordHistory(next)
	s.emitSwap(next, prev, path)
	s.emitClassified(next, prev, path)
	return s.current, nil
}

// reconcile returns the live root after a write at path which turned the
// frame oldRoot into newRoot. A write through a stale frame only carries
// over the value at path, so changes made to the live root since the
// frame was taken survive.
func (s *Structure) reconcile(newRoot, oldRoot *tree.Node, path tree.Path) (*tree.Node, error) {
	if s.current == oldRoot {
		return newRoot, nil
	}
	s.metrics.Reconcile(s.key)
	if debug.Reconcile() {
		debug.Logf("reconcile %s: stale frame %s onto %s\n", path, oldRoot, s.current)
	}
	var (
		res *tree.Node
		err error
	)
	if v, ok := newRoot.GetIn(path); ok {
		res, err = s.current.SetIn(path, v)
	} else {
		res, err = s.current.RemoveIn(path)
	}
	if err != nil {
		s.log.Warn("dropping stale cursor write", "path", path.String(), "error", err)
		return nil, fmt.Errorf("%w at %q: %w", ErrConflict, path.String(), err)
	}
	s.log.Debug("reconciled stale cursor write", "path", path.String())
	return res, nil
}

func (s *Structure) recordHistory(root *tree.Node) {
	if s.history == nil {
		return
	}
	evicted := s.history.Record(root)
	if evicted > 0 {
		s.log.Debug("evicted history", "count", evicted, "limit", s.history.Limit())
	}
	s.metrics.History(s.key, s.history.Len(), evicted)
}

// emitSwap notifies references, then swap listeners, then schedules the
// next frame.
func (s *Structure) emitSwap(next, prev *tree.Node, path tree.Path) {
	s.refs.Dispatch(next, prev, path)
	s.emit(event.Swap{New: next, Old: prev, Path: path})
	s.scheduleFrame(next, prev, path)
}

// scheduleFrame asks the scheduler for one next-animation-frame event per
// frame, carrying the payload of the latest swap.
func (s *Structure) scheduleFrame(next, prev *tree.Node, path tree.Path) {
	if s.scheduler == nil {
		return
	}
	s.frame = event.NextFrame{New: next, Old: prev, Path: path}
	if s.queued {
		if debug.Frames() {
			debug.Logf("frame already queued, coalescing swap at %s\n", path)
		}
		return
	}
	s.queued = true
	s.scheduler.Schedule(func() {
		ev := s.frame
		s.frame = event.NextFrame{}
		s.queued = false
		s.emit(ev)
	})
}

func (s *Structure) emitClassified(next, prev *tree.Node, path tree.Path) {
	ev, ok := change.Classify(next, prev, path)
	if !ok {
		return
	}
	s.emit(ev)
	s.emit(change.Any(next, prev, path))
}

func (s *Structure) emit(ev event.Event) bool {
	s.metrics.Event(s.key, ev.Kind().String())
	return s.Emit(ev)
}
