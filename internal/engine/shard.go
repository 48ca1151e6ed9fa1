package engine

import (
	"context"
	"fmt"

	"github.com/ab2049/paytoy/internal/model"
)

// shard owns a disjoint partition of client accounts and applies their
// events strictly in arrival order. The dispatcher is the only sender on
// its queue and the shard goroutine is the only reader of its accounts, so
// the account map needs no lock.
type shard struct {
	id int

	input    chan model.Event
	accounts map[model.ClientID]*account

	stats ShardStats
}

// ShardStats counts what one shard applied and absorbed.
type ShardStats struct {
	Deposits    int64 // deposits applied
	Withdrawals int64 // withdrawals applied
	Disputes    int64 // disputes accepted
	Resolves    int64 // resolves accepted
	Chargebacks int64 // chargebacks accepted
	Absorbed    int64 // partner errors dropped with no state change
}

func newShard(id, queueSize int) *shard {
	return &shard{
		id:       id,
		input:    make(chan model.Event, queueSize),
		accounts: make(map[model.ClientID]*account),
	}
}

// run consumes the shard's queue until it is closed or the run is
// cancelled. The first fatal condition is returned and stops the shard.
func (s *shard) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-s.input:
			if !ok {
				return nil
			}
			if err := s.apply(ev); err != nil {
				return fmt.Errorf("shard %d: client %d tx %d: %w", s.id, ev.Client, ev.Tx, err)
			}
		}
	}
}

// apply mutates the owning account for one event. The validator has already
// checked shape, so Amount is non-nil exactly when the kind requires it.
func (s *shard) apply(ev model.Event) error {
	var (
		applied bool
		err     error
	)

	switch ev.Type {
	case model.Deposit:
		applied, err = s.account(ev.Client).deposit(ev.Tx, *ev.Amount)
		if applied {
			s.stats.Deposits++
		}
	case model.Withdrawal:
		applied, err = s.account(ev.Client).withdraw(ev.Tx, *ev.Amount)
		if applied {
			s.stats.Withdrawals++
		}
	case model.Dispute, model.Resolve, model.Chargeback:
		// Referencing events never create an account: a reference to an
		// unseen client is a partner error.
		acct, ok := s.accounts[ev.Client]
		if !ok {
			s.stats.Absorbed++
			return nil
		}
		switch ev.Type {
		case model.Dispute:
			applied, err = acct.dispute(ev.Tx)
			if applied {
				s.stats.Disputes++
			}
		case model.Resolve:
			applied, err = acct.resolve(ev.Tx)
			if applied {
				s.stats.Resolves++
			}
		case model.Chargeback:
			applied, err = acct.chargeback(ev.Tx)
			if applied {
				s.stats.Chargebacks++
			}
		}
	default:
		return fmt.Errorf("unroutable event type %q", ev.Type)
	}

	if err != nil {
		return err
	}
	if !applied {
		s.stats.Absorbed++
	}
	return nil
}

// account returns the client's account, creating it lazily on first use.
func (s *shard) account(client model.ClientID) *account {
	acct, ok := s.accounts[client]
	if !ok {
		acct = newAccount()
		s.accounts[client] = acct
	}
	return acct
}

// export yields the final balance tuple for every account the shard owns.
func (s *shard) export() ([]model.Snapshot, error) {
	out := make([]model.Snapshot, 0, len(s.accounts))
	for client, acct := range s.accounts {
		snap, err := acct.snapshot(client)
		if err != nil {
			return nil, fmt.Errorf("shard %d: client %d: %w", s.id, client, err)
		}
		out = append(out, snap)
	}
	return out, nil
}
