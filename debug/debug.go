package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Dispatch  bool
	Reconcile bool
	History   bool
	Frames    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Dispatch = boolEnv("IMMSTRUCT_DEBUG_DISPATCH")
	d.Reconcile = boolEnv("IMMSTRUCT_DEBUG_RECONCILE")
	d.History = boolEnv("IMMSTRUCT_DEBUG_HISTORY")
	d.Frames = boolEnv("IMMSTRUCT_DEBUG_FRAMES")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Dispatch reports whether reference trie dispatch is traced.
func Dispatch() bool {
	return d.Dispatch
}
func Reconcile() bool {
	return d.Reconcile
}
func History() bool {
	return d.History
}
func Frames() bool {
	return d.Frames
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
