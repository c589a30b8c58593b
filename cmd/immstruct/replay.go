package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/omniscientjs/immstruct"
	"github.com/omniscientjs/immstruct/cond"
	"github.com/omniscientjs/immstruct/event"
	"github.com/omniscientjs/immstruct/tree"
	"github.com/scott-cotton/cli"
)

// Step is one entry of a replay script.
//
//	- op: set
//	  path: todos[0].done
//	  value: true
//	- op: undo
type Step struct {
	Op    string `yaml:"op"`
	Path  string `yaml:"path,omitempty"`
	Value any    `yaml:"value,omitempty"`
	Steps int    `yaml:"steps,omitempty"`
}

func loadScript(d []byte) ([]Step, error) {
	var res []Step
	if err := yaml.Unmarshal(d, &res); err != nil {
		return nil, fmt.Errorf("error parsing script: %w", err)
	}
	return res, nil
}

func replay(cfg *ReplayConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Replay.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: expected config and script", cli.ErrUsage)
	}
	sc, err := immstruct.LoadConfig(args[0])
	if err != nil {
		return err
	}
	d, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	steps, err := loadScript(d)
	if err != nil {
		return err
	}
	var where *cond.Condition
	if cfg.Where != "" {
		where, err = cond.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	log := theLog
	if cfg.Verbose {
		log = newLog(os.Stderr, slog.LevelDebug)
	}
	opts := append(sc.Options(), immstruct.WithLogger(log))
	if cfg.History != 0 {
		opts = append(opts, immstruct.WithHistory(cfg.History))
	}
	s, err := immstruct.New(opts...)
	if err != nil {
		return err
	}
	p := newPrinter(cc.Out, cfg.colors(cc))
	if err := watch(s, cfg.Ref, where, p); err != nil {
		return err
	}
	if err := runScript(s, steps, p); err != nil {
		return err
	}
	if !cfg.Final {
		return nil
	}
	out, err := tree.ToYAML(s.Current())
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(out)
	return err
}

// watch prints the events of s to p: all of them, or those seen by a
// reference at ref if it is not empty. A non-nil where filters them.
func watch(s *immstruct.Structure, ref string, where *cond.Condition, p *printer) error {
	show := func(ev event.Event) {
		if where != nil {
			ok, err := where.Match(ev)
			if err != nil {
				theLog.Warn("condition failed", "condition", where.String(), "error", err)
				return
			}
			if !ok {
				return
			}
		}
		p.event(ev)
	}
	kinds := []event.Kind{event.SwapKind, event.AddKind, event.ChangeKind, event.DeleteKind}
	if ref == "" {
		for _, k := range kinds {
			s.On(k, show)
		}
		return nil
	}
	path, err := tree.ParsePath(ref)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	r := s.Reference(path)
	for _, k := range kinds {
		r.ObserveKind(k, show)
	}
	return nil
}

func runScript(s *immstruct.Structure, steps []Step, p *printer) error {
	for i := range steps {
		if err := apply(s, &steps[i], p); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, steps[i].Op, err)
		}
	}
	return nil
}

func apply(s *immstruct.Structure, st *Step, p *printer) error {
	path, err := tree.ParsePath(st.Path)
	if err != nil {
		return err
	}
	switch st.Op {
	case "set":
		_, err = s.Cursor().SetIn(path, st.Value)
	case "remove", "delete":
		_, err = s.Cursor().RemoveIn(path)
	case "merge":
		_, err = s.Cursor(path).MergeDeep(st.Value)
	case "push":
		vs, ok := st.Value.([]any)
		if !ok {
			vs = []any{st.Value}
		}
		_, err = s.Cursor(path).Push(vs...)
	case "clear":
		_, err = s.Cursor(path).Clear()
	case "patch":
		var d []byte
		d, err = json.Marshal(st.Value)
		if err != nil {
			return err
		}
		_, err = s.Cursor(path).Patch(d)
	case "undo":
		if _, err = s.Undo(st.Steps); err == nil {
			p.notef("undo -> revision %d", s.History().Revision())
		}
	case "redo":
		if _, err = s.Redo(st.Steps); err == nil {
			p.notef("redo -> revision %d", s.History().Revision())
		}
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return err
}
