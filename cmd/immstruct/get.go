package main

import (
	"fmt"

	"github.com/omniscientjs/immstruct/cursor"
	"github.com/omniscientjs/immstruct/tree"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path", cli.ErrUsage)
	}
	path, err := tree.ParsePath(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, f := range files {
		doc, err := readDoc(f)
		if err != nil {
			return err
		}
		c := cursor.New(doc, path, nil)
		if !c.Exists() {
			return fmt.Errorf("%s: nothing at %q", f, args[0])
		}
		out, err := tree.ToYAML(c.Deref())
		if err != nil {
			return err
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	}
	return nil
}
