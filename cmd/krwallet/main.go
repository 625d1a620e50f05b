package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"

	"github.com/djpatra/krwallet/internal/csvio"
	"github.com/djpatra/krwallet/internal/obs"
	"github.com/djpatra/krwallet/internal/processor"
	"github.com/djpatra/krwallet/internal/store"
	"github.com/djpatra/krwallet/internal/wallet"
	"github.com/djpatra/krwallet/pkg/conn"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "krwallet: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	shards := flag.Int("shards", processor.DefaultShards, "wallet shard count")
	mailbox := flag.Int("mailbox", processor.DefaultMailbox, "shard mailbox capacity")
	askTimeout := flag.Duration("ask-timeout", processor.DefaultAskTimeout, "deadline for draining one shard")
	pgDSN := flag.String("postgres-dsn", "", "optional PostgreSQL DSN for persisting snapshots")
	pyroAddr := flag.String("pyroscope", "", "optional pyroscope server address")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input_file.csv>\n", os.Args[0])
		os.Exit(1)
	}

	if *pyroAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "krwallet",
			ServerAddress:   *pyroAddr,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return err
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, err := os.Open(flag.Arg(0))
	if err != nil {
		return err
	}
	defer input.Close()

	sink := processor.Sink(csvio.NewWriter(os.Stdout))
	if *pgDSN != "" {
		client, err := conn.New(*pgDSN, nil)
		if err != nil {
			return err
		}
		defer client.Close()

		st, err := store.New(client)
		if err != nil {
			return err
		}
		sink = teeSink{sinks: []processor.Sink{sink, st}}
	}

	metrics := obs.NewMetrics()
	proc := processor.New(processor.Config{
		Shards:     *shards,
		Mailbox:    *mailbox,
		AskTimeout: *askTimeout,
		Metrics:    metrics,
	})
	defer proc.Close()

	started := time.Now()
	if err := proc.Process(ctx, csvio.NewReader(input)); err != nil {
		return err
	}
	if err := proc.Finalize(ctx, sink); err != nil {
		return err
	}

	snap := metrics.Snapshot()
	logs.Infof("done in %s: %d records read, %d applied, %d refused, %d skipped, %d wallets emitted",
		time.Since(started).Round(time.Millisecond),
		snap.Read, snap.Applied(), snap.Refused(), snap.Skipped, snap.Emitted,
	)
	return nil
}

// teeSink fans every snapshot out to all sinks, in order.
type teeSink struct {
	sinks []processor.Sink
}

func (t teeSink) Write(snap wallet.Snapshot) error {
	for _, s := range t.sinks {
		if err := s.Write(snap); err != nil {
			return err
		}
	}
	return nil
}

func (t teeSink) Flush() error {
	for _, s := range t.sinks {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	return nil
}
