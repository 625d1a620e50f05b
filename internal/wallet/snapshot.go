package wallet

import "github.com/shopspring/decimal"

// Snapshot is the output view of one wallet.
type Snapshot struct {
	Client    uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Snapshot projects the wallet for output. Total is derived here,
// never stored incrementally.
func (w *Wallet) Snapshot(client uint16) Snapshot {
	return Snapshot{
		Client:    client,
		Available: w.available,
		Held:      w.held,
		Total:     w.available.Add(w.held),
		Locked:    w.locked,
	}
}
