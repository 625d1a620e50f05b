package processor

import (
	"context"
	"io"
	"time"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"github.com/djpatra/krwallet/internal/actor"
	"github.com/djpatra/krwallet/internal/model"
	"github.com/djpatra/krwallet/internal/obs"
	"github.com/djpatra/krwallet/internal/wallet"
	"github.com/djpatra/krwallet/pkg/exception"
)

const (
	DefaultShards     = 10
	DefaultMailbox    = 100
	DefaultAskTimeout = 5 * time.Second
)

// Source yields transaction records. Next returns io.EOF at the end
// of the stream. Rows that fail to parse come back wrapped in
// exception.ErrSourceFormat and are skippable; any other error is
// structural and aborts the run.
type Source interface {
	Next() (*model.Transaction, error)
}

// Sink accepts final wallet snapshot rows.
type Sink interface {
	Write(snap wallet.Snapshot) error
	Flush() error
}

// Config sizes the shard pool.
type Config struct {
	Shards     int
	Mailbox    int
	AskTimeout time.Duration
	Metrics    *obs.Metrics
}

// Processor owns the shard pool and routes every record for a client
// to the same shard, which is what serializes per-client mutation
// while shards run in parallel.
//
// Transaction-id duplicate detection is scoped to the owning shard's
// wallet history, not global across clients.
type Processor struct {
	shards     []actor.Ref[wallet.Message]
	askTimeout time.Duration
	metrics    *obs.Metrics
}

// New spawns the wallet shard actors.
func New(cfg Config) *Processor {
	if cfg.Shards <= 0 {
		cfg.Shards = DefaultShards
	}
	if cfg.Mailbox <= 0 {
		cfg.Mailbox = DefaultMailbox
	}
	if cfg.AskTimeout <= 0 {
		cfg.AskTimeout = DefaultAskTimeout
	}

	shards := make([]actor.Ref[wallet.Message], cfg.Shards)
	for i := range shards {
		shards[i] = actor.Start[wallet.Message](wallet.NewShard(cfg.Metrics), cfg.Mailbox)
	}

	return &Processor{
		shards:     shards,
		askTimeout: cfg.AskTimeout,
		metrics:    cfg.Metrics,
	}
}

// Process reads records until the source is exhausted. Malformed rows
// are skipped and logged; a deposit or withdrawal with a missing or
// negative amount aborts the whole run before dispatch.
func (p *Processor) Process(ctx context.Context, src Source) error {
	for {
		tx, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, exception.ErrSourceFormat) {
				p.metrics.ObserveSkip()
				logs.Errorf("skip record, err: %+v", err)
				continue
			}
			return errors.Wrap(err, "read record")
		}

		p.metrics.ObserveRead()

		if tx.Kind.IsMonetary() {
			if !tx.HasAmount {
				return errors.Wrap(exception.ErrInvalidAmount, "missing amount").With("tx", tx.ID)
			}
			if tx.Amount.IsNegative() {
				return errors.Wrap(exception.ErrInvalidAmount, "negative amount").With("tx", tx.ID)
			}
		}

		shard := p.shards[int(tx.Client)%len(p.shards)]
		if err := shard.Tell(ctx, wallet.Message{Tx: tx}); err != nil {
			return errors.Wrap(err, "dispatch").With("client", tx.Client).With("tx", tx.ID)
		}
	}
}

// Finalize drains every shard in index order and writes the projected
// snapshots to the sink. The drain is one-shot: wallets move out of
// their shard, so a second call emits no rows. Each shard ask carries
// its own deadline so a wedged shard cannot block forever.
func (p *Processor) Finalize(ctx context.Context, sink Sink) error {
	for i, shard := range p.shards {
		askCtx, cancel := context.WithTimeout(ctx, p.askTimeout)
		reply := make(chan []wallet.Snapshot, 1)
		snaps, err := actor.Ask(askCtx, shard, wallet.Message{Drain: reply}, reply)
		cancel()
		if err != nil {
			return errors.Wrap(err, "drain shard").With("shard", i)
		}

		for _, snap := range snaps {
			if err := sink.Write(snap); err != nil {
				return errors.Wrap(err, "write snapshot").With("client", snap.Client)
			}
			p.metrics.ObserveEmit()
		}
	}

	return sink.Flush()
}

// Close stops every shard mailbox. Buffered messages still drain.
func (p *Processor) Close() {
	for _, shard := range p.shards {
		shard.Close()
	}
}
