// Package process terminates browser process trees left behind by PDF rendering.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would address the caller's own
// process group (0) or a group instead of a process (negative).
var ErrInvalidPID = errors.New("invalid process id")
