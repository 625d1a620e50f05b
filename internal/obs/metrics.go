package obs

import (
	"sync/atomic"

	"github.com/djpatra/krwallet/internal/model/enum"
)

const maxKind = int(enum.TransactionKindChargeback)

// Metrics collects lightweight counters for one processing run.
// A nil *Metrics is valid and counts nothing.
type Metrics struct {
	read     uint64
	skipped  uint64
	emitted  uint64
	accepted [maxKind + 1]uint64
	rejected [maxKind + 1]uint64
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	Read     uint64
	Skipped  uint64
	Emitted  uint64
	Accepted map[enum.TransactionKind]uint64
	Rejected map[enum.TransactionKind]uint64
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// ObserveRead counts one record handed over by the source.
func (m *Metrics) ObserveRead() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.read, 1)
}

// ObserveSkip counts one malformed source row that was dropped.
func (m *Metrics) ObserveSkip() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.skipped, 1)
}

// ObserveAccept counts one transaction applied to a wallet.
func (m *Metrics) ObserveAccept(kind enum.TransactionKind) {
	if m == nil || int(kind) > maxKind {
		return
	}
	atomic.AddUint64(&m.accepted[kind], 1)
}

// ObserveReject counts one transaction refused by its wallet.
func (m *Metrics) ObserveReject(kind enum.TransactionKind) {
	if m == nil || int(kind) > maxKind {
		return
	}
	atomic.AddUint64(&m.rejected[kind], 1)
}

// ObserveEmit counts one wallet snapshot written to the sink.
func (m *Metrics) ObserveEmit() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.emitted, 1)
}

// Snapshot captures the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Accepted: make(map[enum.TransactionKind]uint64),
		Rejected: make(map[enum.TransactionKind]uint64),
	}
	if m == nil {
		return snap
	}
	snap.Read = atomic.LoadUint64(&m.read)
	snap.Skipped = atomic.LoadUint64(&m.skipped)
	snap.Emitted = atomic.LoadUint64(&m.emitted)
	for i := 1; i <= maxKind; i++ {
		kind := enum.TransactionKind(i)
		if v := atomic.LoadUint64(&m.accepted[i]); v != 0 {
			snap.Accepted[kind] = v
		}
		if v := atomic.LoadUint64(&m.rejected[i]); v != 0 {
			snap.Rejected[kind] = v
		}
	}
	return snap
}

// Applied sums accepted transactions across kinds.
func (s Snapshot) Applied() uint64 {
	var total uint64
	for _, v := range s.Accepted {
		total += v
	}
	return total
}

// Refused sums rejected transactions across kinds.
func (s Snapshot) Refused() uint64 {
	var total uint64
	for _, v := range s.Rejected {
		total += v
	}
	return total
}
