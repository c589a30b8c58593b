// Package cond compiles boolean expressions over change events.
//
// Expressions use the expr language (github.com/expr-lang/expr) and see
// the following variables:
//
//	kind      event kind name, e.g. "change"
//	value     plain new value, nil if absent
//	previous  plain old value, nil if absent
//	path      keys of the change path as strings and ints
//	where     kinded path of the change, e.g. "a.b[0]"
//	valueType type name of the new value, e.g. "Map", or "Null" if absent
//
// and the functions
//
//	under(p string) bool  whether the change path is at or below the kinded path p
//	is(t string) bool     whether the new value has the type named t
//	truthy(v any) bool    whether v is non-empty, non-zero and not false
package cond

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/omniscientjs/immstruct/event"
	"github.com/omniscientjs/immstruct/tree"
)

var ErrCondition = errors.New("condition error")

// Condition is a compiled expression. It is safe for concurrent use.
type Condition struct {
	src  string
	prog *vm.Program
}

// Env is the evaluation environment of a condition.
type Env struct {
	Kind     string            `expr:"kind"`
	Value    any               `expr:"value"`
	Previous any               `expr:"previous"`
	Path     []any             `expr:"path"`
	Where    string            `expr:"where"`
	Type     string            `expr:"valueType"`
	Under    func(string) bool `expr:"under"`
	Is       func(string) bool `expr:"is"`
	Truthy   func(any) bool    `expr:"truthy"`
}

// NewEnv returns the environment describing ev.
func NewEnv(ev event.Event) Env {
	nu, old := event.Values(ev)
	path := ev.KeyPath()
	typ, _ := nu.Type().MarshalText()
	return Env{
		Kind:     ev.Kind().String(),
		Value:    nu.Plain(),
		Previous: old.Plain(),
		Path:     path.Plain(),
		Where:    path.String(),
		Type:     string(typ),
		Under: func(p string) bool {
			prefix, err := tree.ParsePath(p)
			if err != nil {
				return false
			}
			return path.HasPrefix(prefix)
		},
		Is: func(name string) bool {
			var t tree.Type
			if err := t.UnmarshalText([]byte(name)); err != nil {
				return false
			}
			return nu.Type() == t
		},
		Truthy: truthy,
	}
}

func truthy(v any) bool {
	n, err := tree.FromPlain(v)
	if err != nil {
		return false
	}
	return tree.Truth(n)
}

// Compile compiles src, which must evaluate to a bool.
func Compile(src string) (*Condition, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %q: %w", ErrCondition, src, err)
	}
	return &Condition{src: src, prog: prog}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Condition {
	c, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return c
}

// Match evaluates c against ev.
func (c *Condition) Match(ev event.Event) (bool, error) {
	out, err := expr.Run(c.prog, NewEnv(ev))
	if err != nil {
		return false, fmt.Errorf("%w: evaluating %q: %w", ErrCondition, c.src, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %T", ErrCondition, c.src, out)
	}
	return b, nil
}

func (c *Condition) String() string {
	return c.src
}
