package immstruct

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/omniscientjs/immstruct/event"
	"github.com/omniscientjs/immstruct/history"
	"github.com/omniscientjs/immstruct/tree"
)

func newStructure(t *testing.T, data any, opts ...Option) *Structure {
	t.Helper()
	s, err := New(append([]Option{WithData(data)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type logged struct {
	Kind string
	Path string
	New  any
	Old  any
}

// record logs every event s emits.
func record(s *Structure) *[]logged {
	var res []logged
	for _, k := range event.Kinds() {
		s.On(k, func(ev event.Event) {
			nu, old := event.Values(ev)
			res = append(res, logged{Kind: ev.Kind().String(), Path: ev.KeyPath().String(), New: nu.Plain(), Old: old.Plain()})
		})
	}
	return &res
}

func inc(n *tree.Node) *tree.Node {
	return tree.FromInt(n.Int() + 1)
}

func TestNoOpWritesEmitNothing(t *testing.T) {
	s := newStructure(t, map[string]any{"foo": map[string]any{}, "bar": 42}, WithHistory(0))
	events := record(s)
	if _, err := s.Cursor().Set("foo", tree.EmptyMap()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Cursor("bar").Update(func(n *tree.Node) *tree.Node { return n }); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Cursor("bar").Update(func(*tree.Node) *tree.Node { return tree.FromInt(42) }); err != nil {
		t.Fatal(err)
	}
	if len(*events) != 0 {
		t.Errorf("events = %v", *events)
	}
	if n := s.History().Len(); n != 1 {
		t.Errorf("history length = %d", n)
	}
}

func TestNoOpPatchEmitsNothing(t *testing.T) {
	s := newStructure(t, map[string]any{"price": 2.0, "name": "x"}, WithHistory(0))
	events := record(s)
	if _, err := s.Cursor().Patch([]byte(`[{"op": "test", "path": "/name", "value": "x"}]`)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Cursor().MergePatch([]byte(`{"price": 2}`)); err != nil {
		t.Fatal(err)
	}
	if len(*events) != 0 {
		t.Errorf("events = %v", *events)
	}
	if n := s.History().Len(); n != 1 {
		t.Errorf("history length = %d", n)
	}
}

func TestChangeEvent(t *testing.T) {
	s := newStructure(t, map[string]any{"foo": "hello"})
	events := record(s)
	if _, err := s.Cursor("foo").Update(func(*tree.Node) *tree.Node { return tree.FromString("bar") }); err != nil {
		t.Fatal(err)
	}
	want := []logged{
		{Kind: "swap", Path: "foo", New: map[string]any{"foo": "bar"}, Old: map[string]any{"foo": "hello"}},
		{Kind: "change", Path: "foo", New: "bar", Old: "hello"},
		{Kind: "any", Path: "foo", New: "bar", Old: "hello"},
	}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestAddAndDeleteEvents(t *testing.T) {
	s := newStructure(t, map[string]any{"a": 1})
	var kinds []string
	s.On(event.AddKind, func(ev event.Event) { kinds = append(kinds, "add "+ev.KeyPath().String()) })
	s.On(event.DeleteKind, func(ev event.Event) { kinds = append(kinds, "delete "+ev.KeyPath().String()) })
	if _, err := s.Cursor().Set("b", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Cursor().Remove("a"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"add b", "delete a"}, kinds); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFalsyValuesAreChanges(t *testing.T) {
	s := newStructure(t, map[string]any{"foo": true})
	var got []logged
	for _, k := range []event.Kind{event.AddKind, event.ChangeKind, event.DeleteKind} {
		s.On(k, func(ev event.Event) {
			nu, old := event.Values(ev)
			got = append(got, logged{Kind: ev.Kind().String(), Path: ev.KeyPath().String(), New: nu.Plain(), Old: old.Plain()})
		})
	}
	for _, v := range []*tree.Node{tree.Null(), tree.FromBool(false), tree.Null()} {
		if _, err := s.Cursor("foo").Update(func(*tree.Node) *tree.Node { return v }); err != nil {
			t.Fatal(err)
		}
	}
	want := []logged{
		{Kind: "change", Path: "foo", New: nil, Old: true},
		{Kind: "change", Path: "foo", New: false, Old: nil},
		{Kind: "change", Path: "foo", New: nil, Old: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestStaleCursorReconciles(t *testing.T) {
	s := newStructure(t, map[string]any{"foo": 42, "bar": 24})
	foo := s.Cursor("foo")
	bar := s.Cursor("bar")
	if _, err := foo.Update(inc); err != nil {
		t.Fatal(err)
	}
	next, err := bar.Update(inc)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"foo": int64(43), "bar": int64(25)}
	if diff := cmp.Diff(want, s.Current().Plain()); diff != "" {
		t.Errorf("current (-want +got):\n%s", diff)
	}
	if next.Root() != s.Current() {
		t.Error("the cursor returned by a write should be framed on the live root")
	}
}

func TestStaleRemoveReconciles(t *testing.T) {
	s := newStructure(t, map[string]any{"foo": 1, "bar": 2})
	stale := s.Cursor()
	if _, err := s.Cursor().Set("baz", 3); err != nil {
		t.Fatal(err)
	}
	var deleted []string
	s.On(event.DeleteKind, func(ev event.Event) { deleted = append(deleted, ev.KeyPath().String()) })
	if _, err := stale.Remove("foo"); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"bar": int64(2), "baz": int64(3)}
	if diff := cmp.Diff(want, s.Current().Plain()); diff != "" {
		t.Errorf("current (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"foo"}, deleted); diff != "" {
		t.Errorf("deleted (-want +got):\n%s", diff)
	}
}

func TestStaleWriteConflict(t *testing.T) {
	s := newStructure(t, map[string]any{"a": map[string]any{"b": 1}})
	stale := s.Cursor("a")
	if _, err := s.Cursor().Set("a", 5); err != nil {
		t.Fatal(err)
	}
	_, err := stale.Set("c", 2)
	if !errors.Is(err, ErrConflict) || !errors.Is(err, tree.ErrNotCollection) {
		t.Errorf("err = %v", err)
	}
	if got := s.Current().String(); got != `{"a":5}` {
		t.Errorf("current = %s", got)
	}
}

func TestHistoryLimit(t *testing.T) {
	s := newStructure(t, map[string]any{"foo": "bar"}, WithHistory(1))
	if _, err := s.Cursor("foo").Update(func(*tree.Node) *tree.Node { return tree.FromString("cat") }); err != nil {
		t.Fatal(err)
	}
	h := s.History()
	if h.Len() != 1 {
		t.Fatalf("history length = %d", h.Len())
	}
	first, _ := h.At(0)
	if diff := cmp.Diff(map[string]any{"foo": "cat"}, first.Plain()); diff != "" {
		t.Errorf("entry 0 (-want +got):\n%s", diff)
	}
}

func TestUndoRedo(t *testing.T) {
	s := newStructure(t, map[string]any{"n": 0}, WithHistory(history.Unlimited))
	initial := s.Current()
	for range 3 {
		if _, err := s.Cursor("n").Update(inc); err != nil {
			t.Fatal(err)
		}
	}
	events := record(s)
	got, err := s.Undo(2)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := got.Get(tree.Field("n")); v.Int() != 1 {
		t.Errorf("after undo 2: %s", got)
	}
	if _, err := s.Undo(10); err != nil {
		t.Fatal(err)
	}
	if s.Current() != initial {
		t.Error("undo past the start should return the initial root")
	}
	if _, err := s.Redo(10); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Current().Get(tree.Field("n")); v.Int() != 3 {
		t.Errorf("after redo: %s", s.Current())
	}
	if _, err := s.UndoUntil(initial); err != nil {
		t.Fatal(err)
	}
	if s.Current() != initial || s.History().Revision() != 0 {
		t.Error("undo until initial")
	}
	if _, err := s.UndoUntil(tree.FromInt(99)); !errors.Is(err, history.ErrNotInHistory) {
		t.Errorf("err = %v", err)
	}
	if s.Current() != initial {
		t.Error("failed undo until must leave the root unchanged")
	}
	if len(*events) != 0 {
		t.Errorf("undo and redo must not emit, got %v", *events)
	}

	if _, err := s.Cursor("n").Update(inc); err != nil {
		t.Fatal(err)
	}
	if s.History().Len() != 2 {
		t.Errorf("writing after undo must discard the redo tail, len = %d", s.History().Len())
	}
}

func TestHistoryDisabled(t *testing.T) {
	s := newStructure(t, nil)
	if _, err := s.Undo(1); !errors.Is(err, ErrHistoryDisabled) {
		t.Errorf("err = %v", err)
	}
	if s.History() != nil {
		t.Error("history should be nil")
	}
	if got := s.Current().String(); got != "{}" {
		t.Errorf("default data = %s", got)
	}
}

func TestNestedWriteFromSwap(t *testing.T) {
	s := newStructure(t, map[string]any{"a": 0, "b": 0}, WithHistory(0))
	var swaps []logged
	s.On(event.SwapKind, func(ev event.Event) {
		sw := ev.(event.Swap)
		swaps = append(swaps, logged{Path: sw.Path.String(), New: sw.New.Plain(), Old: sw.Old.Plain()})
		if sw.Path.String() == "a" {
			if _, err := s.Cursor("b").Update(inc); err != nil {
				t.Fatal(err)
			}
		}
	})
	if _, err := s.Cursor("a").Update(inc); err != nil {
		t.Fatal(err)
	}
	want := []logged{
		{Path: "a", New: map[string]any{"a": int64(1), "b": int64(0)}, Old: map[string]any{"a": int64(0), "b": int64(0)}},
		{Path: "b", New: map[string]any{"a": int64(1), "b": int64(1)}, Old: map[string]any{"a": int64(1), "b": int64(0)}},
	}
	if diff := cmp.Diff(want, swaps); diff != "" {
		t.Errorf("swaps (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"a": int64(1), "b": int64(1)}, s.Current().Plain()); diff != "" {
		t.Errorf("current (-want +got):\n%s", diff)
	}
	if s.History().Len() != 3 {
		t.Errorf("history length = %d", s.History().Len())
	}
	last, _ := s.History().At(2)
	if last != s.Current() {
		t.Error("the nested write must be the newest history entry")
	}
}

func TestForceSwap(t *testing.T) {
	s := newStructure(t, map[string]any{"a": 1}, WithHistory(0))
	events := record(s)
	old := tree.EmptyMap()
	s.ForceSwap(nil, old, "a")
	want := []logged{{Kind: "swap", Path: "a", New: map[string]any{"a": int64(1)}, Old: map[string]any{}}}
	if diff := cmp.Diff(want, *events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if s.History().Len() != 1 {
		t.Error("ForceSwap must not touch history")
	}
}

func TestNextFrameCoalesces(t *testing.T) {
	q := &FrameQueue{}
	s := newStructure(t, map[string]any{"n": 0}, WithScheduler(q))
	var frames []event.NextFrame
	s.On(event.NextFrameKind, event.Handle(func(f event.NextFrame) { frames = append(frames, f) }))
	for range 3 {
		if _, err := s.Cursor("n").Update(inc); err != nil {
			t.Fatal(err)
		}
	}
	if q.Len() != 1 {
		t.Fatalf("pending frames = %d", q.Len())
	}
	if len(frames) != 0 {
		t.Fatal("frames must wait for the scheduler")
	}
	q.Flush()
	if len(frames) != 1 {
		t.Fatalf("frames = %d", len(frames))
	}
	if v, _ := frames[0].New.Get(tree.Field("n")); v.Int() != 3 {
		t.Errorf("frame carries %s, want the latest root", frames[0].New)
	}
	if v, _ := frames[0].Old.Get(tree.Field("n")); v.Int() != 2 {
		t.Errorf("frame old = %s", frames[0].Old)
	}

	if _, err := s.Cursor("n").Update(inc); err != nil {
		t.Fatal(err)
	}
	if q.Flush() != 1 || len(frames) != 2 {
		t.Error("a new frame should be scheduled after a flush")
	}
}

func TestNoSchedulerNoFrames(t *testing.T) {
	s := newStructure(t, map[string]any{"n": 0})
	fired := false
	s.On(event.NextFrameKind, func(event.Event) { fired = true })
	if _, err := s.Cursor("n").Update(inc); err != nil {
		t.Fatal(err)
	}
	if fired {
		t.Error("next-animation-frame without a scheduler")
	}
}

func TestCursorPanicsWithoutData(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrNoData {
			t.Errorf("recovered %v", r)
		}
	}()
	(&Structure{}).Cursor()
}

func TestListenerPanicPropagates(t *testing.T) {
	s := newStructure(t, map[string]any{"n": 0})
	later := false
	s.On(event.SwapKind, func(event.Event) { panic("boom") })
	s.On(event.SwapKind, func(event.Event) { later = true })
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the listener panic")
			}
		}()
		s.Cursor("n").Update(inc)
	}()
	if later {
		t.Error("a panicking listener stops the dispatch")
	}
}

func TestDiff(t *testing.T) {
	s := newStructure(t, map[string]any{"a": 1})
	before := s.Current()
	if _, err := s.Cursor().Set("b", 2); err != nil {
		t.Fatal(err)
	}
	changes := s.Diff(before, s.Current())
	if len(changes) != 1 || changes[0].Kind != tree.Added || changes[0].Path.String() != "b" {
		t.Errorf("changes = %v", changes)
	}
}
