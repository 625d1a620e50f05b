package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yanun0323/errors"

	"github.com/djpatra/krwallet/pkg/exception"
)

type counterMsg struct {
	add   int
	fatal bool
	get   chan<- int
}

type counter struct {
	sum   int
	delay time.Duration
}

func (c *counter) Handle(msg counterMsg) error {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if msg.fatal {
		return exception.ErrFatal
	}
	if msg.get != nil {
		msg.get <- c.sum
		return nil
	}
	c.sum += msg.add
	return nil
}

func TestTellThenAsk(t *testing.T) {
	ref := Start[counterMsg](&counter{}, 8)
	defer ref.Close()

	require.NoError(t, ref.Tell(context.Background(), counterMsg{add: 10}))
	require.NoError(t, ref.Tell(context.Background(), counterMsg{add: 20}))

	reply := make(chan int, 1)
	sum, err := Ask(context.Background(), ref, counterMsg{get: reply}, reply)
	require.NoError(t, err)
	assert.Equal(t, 30, sum, "mailbox is FIFO, both tells apply before the ask")
}

func TestTellAfterClose(t *testing.T) {
	ref := Start[counterMsg](&counter{}, 1)
	ref.Close()

	err := ref.Tell(context.Background(), counterMsg{add: 1})
	require.ErrorIs(t, err, exception.ErrMailboxClosed)
}

func TestFatalTerminatesLoop(t *testing.T) {
	ref := Start[counterMsg](&counter{}, 8)

	require.NoError(t, ref.Tell(context.Background(), counterMsg{fatal: true}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	reply := make(chan int, 1)
	_, err := Ask(ctx, ref, counterMsg{get: reply}, reply)
	require.Error(t, err)
	assert.True(t,
		errors.Is(err, exception.ErrMailboxClosed) || errors.Is(err, exception.ErrReplyDropped),
		"ask after fatal must fail, got: %v", err,
	)
}

func TestAskDeadline(t *testing.T) {
	ref := Start[counterMsg](&counter{delay: 200 * time.Millisecond}, 8)
	defer ref.Close()

	require.NoError(t, ref.Tell(context.Background(), counterMsg{add: 1}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	reply := make(chan int, 1)
	_, err := Ask(ctx, ref, counterMsg{get: reply}, reply)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTellBackpressure(t *testing.T) {
	ref := Start[counterMsg](&counter{delay: 100 * time.Millisecond}, 1)
	defer ref.Close()

	// First message occupies the loop, second fills the mailbox.
	require.NoError(t, ref.Tell(context.Background(), counterMsg{add: 1}))
	require.NoError(t, ref.Tell(context.Background(), counterMsg{add: 2}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := ref.Tell(ctx, counterMsg{add: 3})
	require.ErrorIs(t, err, context.DeadlineExceeded, "a full mailbox suspends the caller")
}

func TestCloseDrainsBufferedMessages(t *testing.T) {
	ref := Start[counterMsg](&counter{}, 8)

	reply := make(chan int, 1)
	require.NoError(t, ref.Tell(context.Background(), counterMsg{add: 5}))
	require.NoError(t, ref.Tell(context.Background(), counterMsg{get: reply}))
	ref.Close()

	select {
	case sum := <-reply:
		assert.Equal(t, 5, sum)
	case <-time.After(time.Second):
		t.Fatal("buffered messages were not drained after close")
	}
}
