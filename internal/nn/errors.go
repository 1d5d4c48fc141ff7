package nn

import "errors"

// ErrInvalidArgument is the sentinel for rejected layer configuration or
// input. Callers can match it with errors.Is; specific failures wrap it
// with context via fmt.Errorf("%w: ...").
var ErrInvalidArgument = errors.New("nn: invalid argument")
