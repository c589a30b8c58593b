package history

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/omniscientjs/immstruct/tree"
)

func plains(ns []*tree.Node) []any {
	res := make([]any, len(ns))
	for i, n := range ns {
		res[i] = n.Plain()
	}
	return res
}

func TestRecordUndoRedo(t *testing.T) {
	l := New(tree.FromInt(0), Unlimited)
	for i := int64(1); i <= 3; i++ {
		l.Record(tree.FromInt(i))
	}
	if l.Len() != 4 || l.Revision() != 3 {
		t.Fatalf("len %d rev %d", l.Len(), l.Revision())
	}
	if got := l.Undo(2).Int(); got != 1 {
		t.Errorf("undo 2 = %d", got)
	}
	if got := l.Undo(10).Int(); got != 0 {
		t.Errorf("undo past start = %d", got)
	}
	if got := l.Redo(0).Int(); got != 1 {
		t.Errorf("redo 0 counts as 1, got %d", got)
	}
	if got := l.Redo(10).Int(); got != 3 {
		t.Errorf("redo past end = %d", got)
	}
}

func TestRecordTruncatesRedo(t *testing.T) {
	l := New(tree.FromInt(0), Unlimited)
	l.Record(tree.FromInt(1))
	l.Record(tree.FromInt(2))
	l.Undo(1)
	l.Record(tree.FromInt(9))
	if diff := cmp.Diff([]any{int64(0), int64(1), int64(9)}, plains(l.Entries())); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	if l.Revision() != 2 || l.Current().Int() != 9 {
		t.Errorf("rev %d current %v", l.Revision(), l.Current())
	}
}

func TestLimit(t *testing.T) {
	l := New(tree.FromString("bar"), 1)
	if n := l.Record(tree.FromString("cat")); n != 1 {
		t.Errorf("evicted %d", n)
	}
	if l.Len() != 1 || l.Revision() != 0 {
		t.Fatalf("len %d rev %d", l.Len(), l.Revision())
	}
	if v, _ := l.At(0); v.Str() != "cat" {
		t.Errorf("entry 0 = %v", v)
	}

	l = New(tree.FromInt(0), 3)
	for i := int64(1); i <= 5; i++ {
		l.Record(tree.FromInt(i))
	}
	if diff := cmp.Diff([]any{int64(3), int64(4), int64(5)}, plains(l.Entries())); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	if l.Revision() != 2 {
		t.Errorf("rev = %d", l.Revision())
	}
	if l.Limit() != 3 {
		t.Errorf("limit = %d", l.Limit())
	}
}

func TestUndoUntil(t *testing.T) {
	first := tree.MustPlain(map[string]any{"a": 1})
	l := New(first, Unlimited)
	l.Record(tree.MustPlain(map[string]any{"a": 2}))
	l.Record(tree.MustPlain(map[string]any{"a": 3}))

	got, err := l.UndoUntil(first)
	if err != nil {
		t.Fatal(err)
	}
	if got != first || l.Revision() != 0 {
		t.Errorf("got %v at rev %d", got, l.Revision())
	}

	equal := tree.MustPlain(map[string]any{"a": 3})
	got, err = l.UndoUntil(equal)
	if err != nil {
		t.Fatal(err)
	}
	if l.Revision() != 2 || got == equal {
		t.Error("structurally equal snapshot should select the stored entry")
	}

	_, err = l.UndoUntil(tree.FromInt(42))
	if !errors.Is(err, ErrNotInHistory) {
		t.Errorf("err = %v", err)
	}
	if l.Revision() != 2 {
		t.Error("failed UndoUntil must leave the revision unchanged")
	}
}
