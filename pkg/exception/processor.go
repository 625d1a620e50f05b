package exception

import "errors"

var (
	ErrSourceFormat  = errors.New("processor: malformed record")
	ErrInvalidAmount = errors.New("processor: invalid amount")
	ErrSinkWrite     = errors.New("processor: sink write failed")
)
