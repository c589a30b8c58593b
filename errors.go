package immstruct

import "errors"

var (
	// ErrNoData is the panic value of Cursor on a structure without a root.
	ErrNoData = errors.New("no structure loaded")
	// ErrHistoryDisabled is returned by undo operations on a structure
	// created without history.
	ErrHistoryDisabled = errors.New("history is not enabled")
	// ErrConflict is returned by a write through a stale cursor which
	// cannot be merged onto the current root, e.g. because a map it wrote
	// into has since become a scalar.
	ErrConflict = errors.New("stale write conflicts with current root")

	ErrBadConfig = errors.New("invalid config")
)
