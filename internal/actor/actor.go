package actor

import (
	"context"
	"sync/atomic"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"github.com/djpatra/krwallet/pkg/exception"
)

// Handler processes exactly one message at a time. The loop never
// hands it two messages concurrently, so handler state needs no locks.
type Handler[M any] interface {
	Handle(msg M) error
}

// Ref is a cloneable handle to a running actor. The zero value is not
// usable; obtain one from Start.
type Ref[M any] struct {
	ch     chan M
	done   chan struct{}
	closed *uint32
}

// Start spawns a serial processing loop over a bounded FIFO mailbox.
func Start[M any](h Handler[M], capacity int) Ref[M] {
	if capacity <= 0 {
		capacity = 1
	}
	r := Ref[M]{
		ch:     make(chan M, capacity),
		done:   make(chan struct{}),
		closed: new(uint32),
	}
	go r.run(h)
	return r
}

func (r Ref[M]) run(h Handler[M]) {
	defer close(r.done)
	for msg := range r.ch {
		if err := h.Handle(msg); err != nil {
			if errors.Is(err, exception.ErrFatal) {
				logs.Errorf("actor terminated, err: %+v", err)
				return
			}
			// Contained: the message is dropped, the loop lives on.
			logs.Errorf("actor handler, err: %+v", err)
		}
	}
}

// Tell is a fire-and-forget send. It blocks while the mailbox is full;
// that wait is the system's sole backpressure mechanism.
//
// Tell must not race with Close: the closed check and the send are not
// atomic, so callers need a single dispatcher (as the processor has)
// or external ordering between senders and the closer.
func (r Ref[M]) Tell(ctx context.Context, msg M) error {
	if atomic.LoadUint32(r.closed) != 0 {
		return exception.ErrMailboxClosed
	}
	select {
	case r.ch <- msg:
		return nil
	case <-r.done:
		// Loop already exited; nothing will ever read this mailbox.
		return exception.ErrMailboxClosed
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "tell")
	}
}

// Close stops the mailbox from accepting new messages. Buffered
// messages are still drained before the loop exits.
func (r Ref[M]) Close() {
	if atomic.CompareAndSwapUint32(r.closed, 0, 1) {
		close(r.ch)
	}
}

// Ask sends msg and waits for a single reply. The message must carry
// the write end of reply. Callers attach a deadline through ctx; an
// actor that exits without answering fails the ask instead of wedging
// it forever.
func Ask[M any, R any](ctx context.Context, ref Ref[M], msg M, reply <-chan R) (R, error) {
	var zero R
	if err := ref.Tell(ctx, msg); err != nil {
		return zero, err
	}
	select {
	case v, ok := <-reply:
		if !ok {
			return zero, exception.ErrReplyDropped
		}
		return v, nil
	case <-ref.done:
		// The loop may have answered right before exiting.
		select {
		case v, ok := <-reply:
			if ok {
				return v, nil
			}
		default:
		}
		return zero, exception.ErrReplyDropped
	case <-ctx.Done():
		return zero, errors.Wrap(ctx.Err(), "ask")
	}
}
