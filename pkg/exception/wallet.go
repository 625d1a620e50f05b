package exception

import "errors"

var (
	ErrAccountLocked        = errors.New("wallet: account locked")
	ErrInsufficientFunds    = errors.New("wallet: insufficient funds")
	ErrTransactionNotFound  = errors.New("wallet: transaction not found")
	ErrDuplicateTransaction = errors.New("wallet: duplicate transaction")
	ErrInvalidDisputeState  = errors.New("wallet: invalid dispute state")
)
