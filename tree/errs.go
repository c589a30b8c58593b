package tree

import "errors"

var (
	ErrNotCollection = errors.New("not a collection")
	ErrBadIndex      = errors.New("bad list index")
	ErrBadKey        = errors.New("bad key")
	ErrUnsupported   = errors.New("unsupported value")
	ErrParsePath     = errors.New("path parse error")
)
