package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/omniscientjs/immstruct/event"
	"github.com/omniscientjs/immstruct/tree"
)

// printer writes one line per event.
type printer struct {
	w io.Writer

	swap, add, change, del, note *color.Color
}

func newPrinter(w io.Writer, colors bool) *printer {
	p := &printer{
		w:      w,
		swap:   color.New(color.FgCyan),
		add:    color.New(color.FgGreen),
		change: color.New(color.FgYellow),
		del:    color.New(color.FgRed),
		note:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.swap, p.add, p.change, p.del, p.note} {
		if colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func where(p tree.Path) string {
	if len(p) == 0 {
		return "."
	}
	return p.String()
}

func (p *printer) event(ev event.Event) {
	switch x := ev.(type) {
	case event.Swap:
		fmt.Fprintf(p.w, "%s %s\n", p.swap.Sprint("swap"), where(x.Path))
	case event.Added:
		fmt.Fprintf(p.w, "%s %s: %s\n", p.add.Sprint("add"), where(x.Path), x.Value)
	case event.Changed:
		fmt.Fprintf(p.w, "%s %s: %s -> %s\n", p.change.Sprint("change"), where(x.Path), x.Old, x.New)
	case event.Removed:
		fmt.Fprintf(p.w, "%s %s: %s\n", p.del.Sprint("delete"), where(x.Path), x.Old)
	default:
		fmt.Fprintf(p.w, "%s %s\n", ev.Kind(), where(ev.KeyPath()))
	}
}

func (p *printer) notef(format string, args ...any) {
	fmt.Fprintln(p.w, p.note.Sprintf(format, args...))
}

// fromChange converts a tree difference to the event a write producing it
// would emit.
func fromChange(c tree.Change) event.Event {
	switch c.Kind {
	case tree.Added:
		return event.Added{Value: c.New, Path: c.Path}
	case tree.Removed:
		return event.Removed{Old: c.Old, Path: c.Path}
	}
	return event.Changed{New: c.New, Old: c.Old, Path: c.Path}
}
