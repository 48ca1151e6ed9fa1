package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ab2049/paytoy/internal/model"
	"github.com/ab2049/paytoy/internal/validate"
)

// MaxShards caps the shard count at the client id space: more workers than
// possible clients buys nothing.
const MaxShards = 65535

// EventSource yields typed events in input order. Next returns io.EOF once
// the stream is exhausted.
type EventSource interface {
	Next() (model.Event, error)
}

// Config holds engine settings.
type Config struct {
	Shards    int // shard worker count; 0 = one per CPU, capped at MaxShards
	QueueSize int // per-shard queue capacity
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Shards:    0,
		QueueSize: 65536,
	}
}

// Stats summarizes one completed run.
type Stats struct {
	EventsReceived int64 // events accepted from the source
	Clients        int   // accounts created
	Shards         int   // shard workers used
	ShardTotals    ShardStats
}

// Engine processes one ordered stream of payment events across a set of
// shard workers and exports the final balance snapshot. An Engine is good
// for a single Run.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	shards []*shard
	stats  Stats
}

// New creates an Engine. A zero Shards value sizes the worker set from the
// CPU count.
func New(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Shards <= 0 {
		cfg.Shards = runtime.NumCPU()
	}
	if cfg.Shards > MaxShards {
		cfg.Shards = MaxShards
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Run validates, routes and applies every event from src, then exports the
// final balances. On the first invalid-input or overflow condition the run
// is cancelled and Run returns that error with no snapshot: output is
// all-or-nothing.
//
// Per-client ordering is preserved end-to-end; nothing already applied is
// rolled back on abort, the run simply never reaches the export step.
func (e *Engine) Run(ctx context.Context, src EventSource) ([]model.Snapshot, error) {
	g, ctx := errgroup.WithContext(ctx)

	e.shards = make([]*shard, e.cfg.Shards)
	for i := range e.shards {
		s := newShard(i, e.cfg.QueueSize)
		e.shards[i] = s
		g.Go(func() error { return s.run(ctx) })
	}

	e.logger.Info("engine started",
		"shards", e.cfg.Shards,
		"queue_size", e.cfg.QueueSize,
	)

	// The dispatch loop runs inside the same group so the first shard
	// failure cancels the scan, and vice versa.
	g.Go(func() error { return e.dispatch(ctx, src) })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.export()
}

// dispatch scans the source in input order and routes each event to the
// shard owning its client. Closing the shard queues on return is what lets
// the workers drain and exit.
func (e *Engine) dispatch(ctx context.Context, src EventSource) error {
	defer func() {
		for _, s := range e.shards {
			close(s.input)
		}
	}()

	// Global duplicate check: a tx id may fund at most one deposit or
	// withdrawal across the whole run, regardless of client.
	seen := make(map[model.TxID]struct{})

	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := validate.Check(ev); err != nil {
			return err
		}
		if ev.Type.RequiresAmount() {
			if _, dup := seen[ev.Tx]; dup {
				return fmt.Errorf("%w: %d", ErrDuplicateTx, ev.Tx)
			}
			seen[ev.Tx] = struct{}{}
		}

		e.stats.EventsReceived++

		s := e.shards[int(ev.Client)%len(e.shards)]
		select {
		case s.input <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// export walks every shard's accounts into the final result set. Order is
// not significant here; the output collaborator sorts for presentation.
func (e *Engine) export() ([]model.Snapshot, error) {
	var out []model.Snapshot
	for _, s := range e.shards {
		snaps, err := s.export()
		if err != nil {
			return nil, err
		}
		out = append(out, snaps...)

		e.stats.Clients += len(s.accounts)
		e.stats.ShardTotals.Deposits += s.stats.Deposits
		e.stats.ShardTotals.Withdrawals += s.stats.Withdrawals
		e.stats.ShardTotals.Disputes += s.stats.Disputes
		e.stats.ShardTotals.Resolves += s.stats.Resolves
		e.stats.ShardTotals.Chargebacks += s.stats.Chargebacks
		e.stats.ShardTotals.Absorbed += s.stats.Absorbed
	}
	e.stats.Shards = len(e.shards)

	e.logger.Info("run complete",
		"events", e.stats.EventsReceived,
		"clients", e.stats.Clients,
		"deposits", e.stats.ShardTotals.Deposits,
		"withdrawals", e.stats.ShardTotals.Withdrawals,
		"disputes", e.stats.ShardTotals.Disputes,
		"resolves", e.stats.ShardTotals.Resolves,
		"chargebacks", e.stats.ShardTotals.Chargebacks,
		"absorbed", e.stats.ShardTotals.Absorbed,
	)

	return out, nil
}

// Stats returns counters for the completed run. Call after Run returns.
func (e *Engine) Stats() Stats {
	return e.stats
}
