package model

import (
	"github.com/shopspring/decimal"

	"github.com/djpatra/krwallet/internal/model/enum"
)

// Transaction is one record of the input stream. Amount is meaningful
// only when HasAmount is set; dispute, resolve and chargeback rows
// carry no amount of their own.
//
// Disputed is the only mutable field: the owning wallet toggles it on
// the stored deposit/withdrawal record when disputes reference it.
type Transaction struct {
	Kind      enum.TransactionKind
	Client    uint16
	ID        uint32
	Amount    decimal.Decimal
	HasAmount bool
	Disputed  bool
}
