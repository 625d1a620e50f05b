package enum

import "strings"

// TransactionKind describes the meaning of one input record.
type TransactionKind uint8

const (
	_transactionKind_beg TransactionKind = iota
	TransactionKindDeposit
	TransactionKindWithdrawal
	TransactionKindDispute
	TransactionKindResolve
	TransactionKindChargeback
	_transactionKind_end
)

func (k TransactionKind) IsAvailable() bool {
	return k > _transactionKind_beg && k < _transactionKind_end
}

// IsMonetary reports whether the kind carries its own amount.
// Dispute, resolve and chargeback reference a prior record instead.
func (k TransactionKind) IsMonetary() bool {
	return k == TransactionKindDeposit || k == TransactionKindWithdrawal
}

func (k TransactionKind) String() string {
	switch k {
	case TransactionKindDeposit:
		return "deposit"
	case TransactionKindWithdrawal:
		return "withdrawal"
	case TransactionKindDispute:
		return "dispute"
	case TransactionKindResolve:
		return "resolve"
	case TransactionKindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// ParseTransactionKind maps an input field to its kind, case-insensitively.
func ParseTransactionKind(s string) (TransactionKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return TransactionKindDeposit, true
	case "withdrawal":
		return TransactionKindWithdrawal, true
	case "dispute":
		return TransactionKindDispute, true
	case "resolve":
		return TransactionKindResolve, true
	case "chargeback":
		return TransactionKindChargeback, true
	default:
		return 0, false
	}
}
