package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/omniscientjs/immstruct/tree"
)

// Output is where Logf writes.
var Output io.Writer = os.Stderr

// Logf formats msg to Output, rendering trees and paths readably.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *tree.Node:
			args[i] = x.String()
		case tree.Path:
			args[i] = "/" + x.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(Output, msg, args...)
}
