package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{in: "", want: Path{}},
		{in: "a", want: Path{Field("a")}},
		{in: "a.b", want: Path{Field("a"), Field("b")}},
		{in: "a[0]", want: Path{Field("a"), Index(0)}},
		{in: "[3].b", want: Path{Index(3), Field("b")}},
		{in: "a[0][12]", want: Path{Field("a"), Index(0), Index(12)}},
		{in: `"a.b".c`, want: Path{Field("a.b"), Field("c")}},
		{in: `a."x y"`, want: Path{Field("a"), Field("x y")}},
		{in: "0", want: Path{Field("0")}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParsePath(%q) = %v, want %v", tt.in, got.Plain(), tt.want.Plain())
			}
			if s := got.String(); s != tt.in {
				t.Errorf("round trip of %q gave %q", tt.in, s)
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{".a", "a[", "a[x]", "a..b", `"abc`, "a[-1]", "a]b[0]x"} {
		_, err := ParsePath(in)
		if !errors.Is(err, ErrParsePath) {
			t.Errorf("ParsePath(%q) error = %v, want ErrParsePath", in, err)
		}
	}
}

type fakePather Path

func (p fakePather) KeyPath() Path { return Path(p) }

func TestToPath(t *testing.T) {
	tests := []struct {
		name  string
		parts []any
		want  Path
	}{
		{name: "none", parts: nil, want: nil},
		{name: "nil", parts: []any{nil}, want: nil},
		{name: "scalar string", parts: []any{"foo"}, want: Path{Field("foo")}},
		{name: "scalar int", parts: []any{2}, want: Path{Index(2)}},
		{name: "variadic", parts: []any{"foo", 1, "bar"}, want: Path{Field("foo"), Index(1), Field("bar")}},
		{name: "strings", parts: []any{[]string{"a", "b"}}, want: Path{Field("a"), Field("b")}},
		{name: "anys", parts: []any{[]any{"a", 1}}, want: Path{Field("a"), Index(1)}},
		{name: "path", parts: []any{Path{Field("a")}, "b"}, want: Path{Field("a"), Field("b")}},
		{name: "pather", parts: []any{fakePather{Field("x")}, 0}, want: Path{Field("x"), Index(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToPath(tt.parts...)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v want %v", got.Plain(), tt.want.Plain())
			}
		})
	}
	if _, err := ToPath(3.5); !errors.Is(err, ErrBadKey) {
		t.Errorf("ToPath(3.5) error = %v, want ErrBadKey", err)
	}
}

func TestPathPrefix(t *testing.T) {
	ab := MustPath("a", "b")
	abc := MustPath("a", "b", "c")
	ac := MustPath("a", "c")
	if !abc.HasPrefix(ab) || !ab.HasPrefix(ab) || !ab.HasPrefix(Path{}) {
		t.Error("expected prefixes")
	}
	if ac.HasPrefix(ab) || ab.HasPrefix(abc) {
		t.Error("unexpected prefix")
	}
	if diff := cmp.Diff([]any{"c"}, abc.TrimPrefix(ab).Plain()); diff != "" {
		t.Errorf("TrimPrefix mismatch (-want +got):\n%s", diff)
	}
	if got := ab.TrimPrefix(abc); len(got) != 0 {
		t.Errorf("TrimPrefix of longer prefix = %v", got)
	}
	p := ab.Append(Field("x"))
	q := ab.Append(Field("y"))
	if p.Equal(q) || !ab.Equal(MustPath("a", "b")) {
		t.Error("Append must not share storage with its receiver")
	}
}

func TestPathKeySpellings(t *testing.T) {
	idx := MustPath("items", 0, "name")
	fld := MustPath("items", "0", "name")
	if !idx.Equal(fld) || !fld.Equal(idx) {
		t.Error("Index(0) and Field(\"0\") must address the same location")
	}
	if !idx.HasPrefix(MustPath("items", "0")) {
		t.Error("expected prefix across key spellings")
	}
	if diff := cmp.Diff([]any{"name"}, idx.TrimPrefix(MustPath("items", "0")).Plain()); diff != "" {
		t.Errorf("TrimPrefix mismatch (-want +got):\n%s", diff)
	}
	if MustPath("01").Equal(MustPath(1)) {
		t.Error("non canonical numeric field must not match an index")
	}
	if _, ok := Field("01").AsIndex(); ok {
		t.Error("AsIndex accepted \"01\"")
	}
	if k := Index(7).Canonical(); k != Field("7") {
		t.Errorf("Canonical = %v", k)
	}
}
