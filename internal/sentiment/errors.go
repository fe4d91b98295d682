package sentiment

import "errors"

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrOutOfRange       = errors.New("index out of range")
	ErrFetchFailed      = errors.New("sentiment fetch failed")
	ErrEscalationFailed = errors.New("escalation failed")
)
