package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='print events with color'"`
	NoColor bool `cli:"name=nocolor desc='never print with color'"`
	Gops    bool `cli:"name=gops desc='start a gops agent'"`
	Verbose bool `cli:"name=v desc='log structure activity to stderr'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// colors reports whether output to cc.Out should be colored.
func (cfg *MainConfig) colors(cc *cli.Context) bool {
	if cfg.NoColor {
		return false
	}
	if cfg.Color {
		return true
	}
	f, ok := cc.Out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type ReplayConfig struct {
	*MainConfig
	History int    `cli:"name=history desc='keep an undo log of at most n entries (-1 for unlimited)'"`
	Where   string `cli:"name=where desc='only print events matching this expression'"`
	Ref     string `cli:"name=ref desc='only print events seen by a reference at this path'"`
	Final   bool   `cli:"name=final desc='print the final root'"`

	Replay *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}
