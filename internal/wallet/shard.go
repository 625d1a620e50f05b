package wallet

import (
	"sort"

	"github.com/yanun0323/logs"

	"github.com/djpatra/krwallet/internal/model"
	"github.com/djpatra/krwallet/internal/obs"
)

// Message is the shard mailbox payload: either one transaction to
// apply or a drain request carrying the reply slot.
type Message struct {
	Tx    *model.Transaction
	Drain chan<- []Snapshot
}

// Shard owns a disjoint set of client wallets. It runs inside a single
// actor loop, so wallet mutation needs no locks or atomics.
type Shard struct {
	wallets map[uint16]*Wallet
	metrics *obs.Metrics
}

// NewShard creates an empty shard.
func NewShard(metrics *obs.Metrics) *Shard {
	return &Shard{
		wallets: make(map[uint16]*Wallet),
		metrics: metrics,
	}
}

// Handle applies one message. Business-rule violations stay local to
// the offending transaction: they are logged and counted, never
// returned, so the shard keeps processing.
func (s *Shard) Handle(msg Message) error {
	if msg.Drain != nil {
		msg.Drain <- s.drain()
		return nil
	}

	tx := msg.Tx
	if tx == nil {
		return nil
	}

	w, ok := s.wallets[tx.Client]
	if !ok {
		w = New()
		s.wallets[tx.Client] = w
	}

	if err := w.Apply(tx); err != nil {
		s.metrics.ObserveReject(tx.Kind)
		logs.Errorf("reject %s tx %d for client %d, err: %+v", tx.Kind, tx.ID, tx.Client, err)
		return nil
	}

	s.metrics.ObserveAccept(tx.Kind)
	return nil
}

// drain moves every wallet out as a snapshot, sorted by client id.
// The shard map is reset, so a second drain yields nothing.
func (s *Shard) drain() []Snapshot {
	snaps := make([]Snapshot, 0, len(s.wallets))
	for client, w := range s.wallets {
		snaps = append(snaps, w.Snapshot(client))
	}
	s.wallets = make(map[uint16]*Wallet)

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Client < snaps[j].Client })
	return snaps
}
