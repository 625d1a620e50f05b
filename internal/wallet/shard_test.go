package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djpatra/krwallet/internal/model/enum"
	"github.com/djpatra/krwallet/internal/obs"
)

func TestShardCreatesWalletsLazily(t *testing.T) {
	s := NewShard(nil)

	tx := deposit(1, "2.5")
	tx.Client = 7
	require.NoError(t, s.Handle(Message{Tx: tx}))

	snaps := s.drain()
	require.Len(t, snaps, 1)
	assert.Equal(t, uint16(7), snaps[0].Client)
}

func TestShardContainsBusinessErrors(t *testing.T) {
	metrics := obs.NewMetrics()
	s := NewShard(metrics)

	// Dispute of an unknown tx is rejected but must not surface as a
	// handler error; the shard keeps processing.
	require.NoError(t, s.Handle(Message{Tx: refer(enum.TransactionKindDispute, 99)}))
	require.NoError(t, s.Handle(Message{Tx: deposit(1, "1.0")}))

	snap := metrics.Snapshot()
	assert.Equal(t, uint64(1), snap.Refused())
	assert.Equal(t, uint64(1), snap.Applied())
}

func TestShardDrainIsOneShot(t *testing.T) {
	s := NewShard(nil)

	a := deposit(1, "1.0")
	a.Client = 3
	b := deposit(2, "2.0")
	b.Client = 1
	require.NoError(t, s.Handle(Message{Tx: a}))
	require.NoError(t, s.Handle(Message{Tx: b}))

	reply := make(chan []Snapshot, 1)
	require.NoError(t, s.Handle(Message{Drain: reply}))
	snaps := <-reply
	require.Len(t, snaps, 2)
	assert.Equal(t, uint16(1), snaps[0].Client, "drain output is sorted by client id")
	assert.Equal(t, uint16(3), snaps[1].Client)

	reply = make(chan []Snapshot, 1)
	require.NoError(t, s.Handle(Message{Drain: reply}))
	assert.Empty(t, <-reply, "second drain must yield nothing")
}
