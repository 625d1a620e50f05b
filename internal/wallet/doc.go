/*
Wallet keeps per-client balances and the dispute ledger.

# Module
  - wallet: balance state machine for the five transaction kinds
  - shard: actor handler owning a disjoint set of client wallets
  - snapshot: output projection with derived total

# Source
  - transaction records routed by the processor

# Produce
  - wallet snapshots on drain

# Sharded
  - client id
*/
package wallet
