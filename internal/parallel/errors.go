package parallel

import "errors"

// ErrClosed is returned by Map when the pool was closed before the work ran.
var ErrClosed = errors.New("parallel: worker pool closed")
