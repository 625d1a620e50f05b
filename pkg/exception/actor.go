package exception

import "errors"

var (
	ErrMailboxClosed = errors.New("actor: mailbox closed")
	ErrReplyDropped  = errors.New("actor: reply dropped")

	// ErrFatal marks handler errors that must terminate the actor loop.
	ErrFatal = errors.New("actor: fatal")
)
