package tree

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies an RFC 6902 JSON Patch document to n. The result
// shares no structure with n; callers wanting no-op stability should
// compare it with Equal.
func ApplyPatch(n *Node, patch []byte) (*Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("error decoding json patch: %w", err)
	}
	d, err := ToJSON(n)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("error applying json patch: %w", err)
	}
	return FromJSON(out)
}

// MergePatch applies an RFC 7386 JSON Merge Patch document to n.
func MergePatch(n *Node, patch []byte) (*Node, error) {
	d, err := ToJSON(n)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, fmt.Errorf("error applying merge patch: %w", err)
	}
	return FromJSON(out)
}
