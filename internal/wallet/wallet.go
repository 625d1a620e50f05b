package wallet

import (
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"github.com/djpatra/krwallet/internal/model"
	"github.com/djpatra/krwallet/internal/model/enum"
	"github.com/djpatra/krwallet/pkg/exception"
)

// Wallet is one client's balances plus the deposit/withdrawal history
// used to validate disputes and detect duplicate ids. A wallet has two
// coarse states, active and locked; locked is reachable only through a
// chargeback and is never reversed.
type Wallet struct {
	available decimal.Decimal
	held      decimal.Decimal
	locked    bool
	history   map[uint32]*model.Transaction
}

// New creates an empty, unlocked wallet.
func New() *Wallet {
	return &Wallet{history: make(map[uint32]*model.Transaction)}
}

// Apply mutates the wallet with one transaction, enforcing ledger
// rules. The locked guard covers deposits and withdrawals only, so
// disputes remain processable on a locked account.
func (w *Wallet) Apply(tx *model.Transaction) error {
	if w.locked && tx.Kind.IsMonetary() {
		return errors.Wrap(exception.ErrAccountLocked, "apply").With("client", tx.Client)
	}

	switch tx.Kind {
	case enum.TransactionKindDeposit:
		return w.deposit(tx)
	case enum.TransactionKindWithdrawal:
		return w.withdraw(tx)
	case enum.TransactionKindDispute:
		return w.dispute(tx.ID)
	case enum.TransactionKindResolve:
		return w.resolve(tx.ID)
	case enum.TransactionKindChargeback:
		return w.chargeback(tx.ID)
	default:
		return errors.Errorf("unknown transaction kind %d", tx.Kind)
	}
}

func (w *Wallet) deposit(tx *model.Transaction) error {
	if _, ok := w.history[tx.ID]; ok {
		return errors.Wrap(exception.ErrDuplicateTransaction, "deposit").With("tx", tx.ID)
	}

	w.available = w.available.Add(tx.Amount)
	w.history[tx.ID] = tx
	return nil
}

func (w *Wallet) withdraw(tx *model.Transaction) error {
	if _, ok := w.history[tx.ID]; ok {
		return errors.Wrap(exception.ErrDuplicateTransaction, "withdrawal").With("tx", tx.ID)
	}
	if w.available.LessThan(tx.Amount) {
		return errors.Wrap(exception.ErrInsufficientFunds, "withdrawal").
			With("available", w.available).
			With("required", tx.Amount)
	}

	w.available = w.available.Sub(tx.Amount)
	w.history[tx.ID] = tx
	return nil
}

func (w *Wallet) dispute(txID uint32) error {
	tx, ok := w.history[txID]
	if !ok {
		return errors.Wrap(exception.ErrTransactionNotFound, "dispute").With("tx", txID)
	}
	if tx.Disputed {
		return errors.Wrap(exception.ErrInvalidDisputeState, "dispute: already disputed").With("tx", txID)
	}

	tx.Disputed = true
	switch tx.Kind {
	case enum.TransactionKindDeposit:
		// Available may go negative here; that is deliberate.
		w.available = w.available.Sub(tx.Amount)
		w.held = w.held.Add(tx.Amount)
	case enum.TransactionKindWithdrawal:
		// Available was already debited when the withdrawal applied.
		w.held = w.held.Add(tx.Amount)
	}
	return nil
}

func (w *Wallet) resolve(txID uint32) error {
	tx, ok := w.history[txID]
	if !ok {
		return errors.Wrap(exception.ErrTransactionNotFound, "resolve").With("tx", txID)
	}
	if !tx.Disputed {
		return errors.Wrap(exception.ErrInvalidDisputeState, "resolve: not disputed").With("tx", txID)
	}

	tx.Disputed = false
	switch tx.Kind {
	case enum.TransactionKindDeposit:
		w.held = w.held.Sub(tx.Amount)
		w.available = w.available.Add(tx.Amount)
	case enum.TransactionKindWithdrawal:
		w.held = w.held.Sub(tx.Amount)
	}
	return nil
}

func (w *Wallet) chargeback(txID uint32) error {
	tx, ok := w.history[txID]
	if !ok {
		return errors.Wrap(exception.ErrTransactionNotFound, "chargeback").With("tx", txID)
	}
	if !tx.Disputed {
		return errors.Wrap(exception.ErrInvalidDisputeState, "chargeback: not disputed").With("tx", txID)
	}

	tx.Disputed = false
	switch tx.Kind {
	case enum.TransactionKindDeposit:
		w.held = w.held.Sub(tx.Amount)
	case enum.TransactionKindWithdrawal:
		// Reverse the original debit before freezing the account.
		w.held = w.held.Sub(tx.Amount)
		w.available = w.available.Add(tx.Amount)
	}
	w.locked = true
	return nil
}

// Locked reports whether a chargeback has frozen this wallet.
func (w *Wallet) Locked() bool {
	return w.locked
}
