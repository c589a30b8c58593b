package immstruct

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/omniscientjs/immstruct/cond"
	"github.com/omniscientjs/immstruct/event"
	"github.com/omniscientjs/immstruct/tree"
)

func TestReferenceRefreshes(t *testing.T) {
	s := newStructure(t, map[string]any{"foo": map[string]any{"bar": "hello"}})
	ref := s.Reference("foo")
	if _, err := s.Cursor("foo", "bar").Update(func(*tree.Node) *tree.Node { return tree.FromString("bye") }); err != nil {
		t.Fatal(err)
	}
	if v, _ := ref.Cursor().Get("bar"); v != "bye" {
		t.Errorf("reference cursor sees %v", v)
	}
	if got := ref.Cursor("bar").Value(); got != "bye" {
		t.Errorf("sub cursor sees %v", got)
	}
}

func TestReferenceObserveScoped(t *testing.T) {
	s := newStructure(t, map[string]any{"foo": map[string]any{"bar": "hello"}})
	ref := s.Reference("foo")
	var got []logged
	ref.Observe(func(ev event.Swap) {
		got = append(got, logged{Path: ev.Path.String(), New: ev.New.Plain(), Old: ev.Old.Plain()})
	})
	if _, err := ref.Cursor().Set("bar", "updated"); err != nil {
		t.Fatal(err)
	}
	want := []logged{{Path: "bar", New: map[string]any{"bar": "updated"}, Old: map[string]any{"bar": "hello"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("observed (-want +got):\n%s", diff)
	}
}

func TestReferencePrefixDispatch(t *testing.T) {
	s := newStructure(t, map[string]any{"a": map[string]any{"b": 1, "c": 1}})
	var root, ab int
	s.Reference().Observe(func(event.Swap) { root++ })
	s.Reference("a", "b").Observe(func(event.Swap) { ab++ })

	if _, err := s.Cursor("a", "c").Update(inc); err != nil {
		t.Fatal(err)
	}
	if root != 1 || ab != 0 {
		t.Errorf("sibling change: root %d ab %d", root, ab)
	}
	if _, err := s.Cursor("a").Set("b", 5); err != nil {
		t.Fatal(err)
	}
	if root != 2 || ab != 1 {
		t.Errorf("change at b: root %d ab %d", root, ab)
	}
	if _, err := s.Cursor().Set("a", map[string]any{"b": 6}); err != nil {
		t.Fatal(err)
	}
	if root != 3 || ab != 2 {
		t.Errorf("change above b: root %d ab %d", root, ab)
	}
}

func TestReferenceObserveKind(t *testing.T) {
	s := newStructure(t, map[string]any{"foo": map[string]any{"bar": "hello"}})
	ref := s.Reference("foo")
	var got []logged
	for _, k := range []event.Kind{event.ChangeKind, event.DeleteKind, event.AnyKind, event.NextFrameKind} {
		ref.ObserveKind(k, func(ev event.Event) {
			nu, old := event.Values(ev)
			got = append(got, logged{Kind: ev.Kind().String(), Path: ev.KeyPath().String(), New: nu.Plain(), Old: old.Plain()})
		})
	}
	if _, err := ref.Cursor().Set("bar", "updated"); err != nil {
		t.Fatal(err)
	}
	want := []logged{
		{Kind: "change", Path: "foo.bar", New: "updated", Old: "hello"},
		{Kind: "any", Path: "foo.bar", New: "updated", Old: "hello"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("observed (-want +got):\n%s", diff)
	}
}

func TestReferenceObserveIf(t *testing.T) {
	s := newStructure(t, map[string]any{"n": 0})
	ref := s.Reference()
	var seen []any
	ref.ObserveIf(cond.MustCompile(`kind == "change" && value > 1`), func(ev event.Event) {
		seen = append(seen, ev.(event.Changed).New.Plain())
	})
	for range 3 {
		if _, err := s.Cursor("n").Update(inc); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]any{int64(2), int64(3)}, seen); diff != "" {
		t.Errorf("seen (-want +got):\n%s", diff)
	}
}

func TestUnobserve(t *testing.T) {
	s := newStructure(t, map[string]any{"n": 0})
	ref := s.Reference("n")
	calls := 0
	unobserve := ref.Observe(func(event.Swap) { calls++ })
	s.Cursor("n").Update(inc)
	unobserve()
	unobserve()
	s.Cursor("n").Update(inc)
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
	if v := ref.Cursor().Value(); v != int64(2) {
		t.Errorf("reference must keep refreshing, got %v", v)
	}
}

func TestUnobserveAll(t *testing.T) {
	s := newStructure(t, map[string]any{"n": 0})
	ref := s.Reference("n")
	calls := 0
	ref.Observe(func(event.Swap) { calls++ })
	ref.ObserveKind(event.ChangeKind, func(event.Event) { calls++ })
	ref.UnobserveAll(false)
	s.Cursor("n").Update(inc)
	if calls != 0 {
		t.Errorf("calls = %d", calls)
	}
	if v := ref.Cursor().Value(); v != int64(1) {
		t.Errorf("cursor = %v, want refreshed", v)
	}
	ref.UnobserveAll(true)
	s.Cursor("n").Update(inc)
	if v := ref.Cursor().Value(); v != int64(1) {
		t.Errorf("cursor = %v, want stale after destroying the refresher", v)
	}
}

func TestDestroy(t *testing.T) {
	s := newStructure(t, map[string]any{"n": 0})
	ref := s.Reference("n")
	calls := 0
	unobserve := ref.Observe(func(event.Swap) { calls++ })
	ref.Destroy()
	if ref.Alive() {
		t.Error("destroyed reference is alive")
	}
	s.Cursor("n").Update(inc)
	if calls != 0 {
		t.Errorf("calls = %d", calls)
	}
	if ref.Cursor() != nil || ref.Reference("x") != nil {
		t.Error("destroyed reference must be inert")
	}
	ref.Observe(func(event.Swap) { calls++ })()
	unobserve()
	ref.UnobserveAll(true)
	ref.Destroy()
	if s.refs.Len() != 0 {
		t.Errorf("%d listeners left", s.refs.Len())
	}
}

func TestReferenceFromCursorAndSubReference(t *testing.T) {
	s := newStructure(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}})
	ref := s.Reference(s.Cursor("a"))
	sub := ref.Reference("b")
	if diff := cmp.Diff([]any{"a", "b"}, sub.Path().Plain()); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
	if got := sub.Cursor("c").Value(); got != int64(1) {
		t.Errorf("value = %v", got)
	}
}

func TestReferenceKeySpellings(t *testing.T) {
	s := newStructure(t, map[string]any{
		"items": []any{"a", "b"},
		"m":     map[string]any{"1": "a"},
	})

	item := s.Reference("items", 0)
	var items int
	item.Observe(func(event.Swap) { items++ })
	if _, err := s.Cursor("items", "0").Update(func(*tree.Node) *tree.Node { return tree.FromString("z") }); err != nil {
		t.Fatal(err)
	}
	if items != 1 {
		t.Errorf("index reference saw %d swaps for a field keyed write", items)
	}
	if got := item.Cursor().Value(); got != "z" {
		t.Errorf("index reference cursor sees %v", got)
	}

	field := s.Reference("m", "1")
	var fields int
	field.Observe(func(event.Swap) { fields++ })
	if _, err := s.Cursor("m").Set(1, "b"); err != nil {
		t.Fatal(err)
	}
	if fields != 1 {
		t.Errorf("field reference saw %d swaps for an index keyed write", fields)
	}
	if got := field.Cursor().Value(); got != "b" {
		t.Errorf("field reference cursor sees %v", got)
	}
}
