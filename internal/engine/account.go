package engine

import (
	"errors"
	"fmt"

	"github.com/ab2049/paytoy/internal/amount"
	"github.com/ab2049/paytoy/internal/model"
)

// ErrDuplicateTx reports a deposit or withdrawal reusing a transaction id.
// It is fatal to the run.
var ErrDuplicateTx = errors.New("duplicate transaction id")

// recordKind distinguishes deposits from withdrawals in the ledger.
type recordKind int

const (
	kindDeposit recordKind = iota
	kindWithdrawal
)

// tranRecord is one disputable ledger entry. It is created when a deposit
// or withdrawal is accepted and lives for the rest of the run; a chargeback
// settles it and removes it from the ledger.
type tranRecord struct {
	kind     recordKind
	amount   amount.Amount
	disputed bool
}

// account holds one client's balances and its private transaction ledger.
// Only the shard that owns the client ever touches it, so there is no lock.
//
// Invariants after every applied event: held >= 0, and the exported total
// is exactly available + held. available may legitimately go negative when
// a disputed amount exceeds the current available funds.
type account struct {
	available amount.Amount
	held      amount.Amount
	locked    bool
	ledger    map[model.TxID]*tranRecord
}

func newAccount() *account {
	return &account{ledger: make(map[model.TxID]*tranRecord)}
}

// deposit credits available funds and records the transaction. A locked
// account drops the deposit silently; a reused tx id is fatal.
func (a *account) deposit(tx model.TxID, amt amount.Amount) (bool, error) {
	if a.locked {
		return false, nil
	}
	if _, ok := a.ledger[tx]; ok {
		return false, fmt.Errorf("%w: %d", ErrDuplicateTx, tx)
	}
	avail, err := a.available.Add(amt)
	if err != nil {
		return false, err
	}
	a.available = avail
	a.ledger[tx] = &tranRecord{kind: kindDeposit, amount: amt}
	return true, nil
}

// withdraw debits available funds and records the transaction. A locked
// account drops the withdrawal; a reused tx id is fatal; insufficient funds
// is a partner condition, absorbed with no state change.
func (a *account) withdraw(tx model.TxID, amt amount.Amount) (bool, error) {
	if a.locked {
		return false, nil
	}
	if _, ok := a.ledger[tx]; ok {
		return false, fmt.Errorf("%w: %d", ErrDuplicateTx, tx)
	}
	if a.available.Cmp(amt) < 0 {
		return false, nil
	}
	avail, err := a.available.Sub(amt)
	if err != nil {
		return false, err
	}
	a.available = avail
	a.ledger[tx] = &tranRecord{kind: kindWithdrawal, amount: amt}
	return true, nil
}

// dispute moves the referenced transaction's amount from available to held
// and marks it disputed. Unknown tx ids and repeat disputes are absorbed.
// The move happens regardless of the sign of the resulting available
// balance: the funds may already have been spent before the dispute
// arrived.
func (a *account) dispute(tx model.TxID) (bool, error) {
	if a.locked {
		return false, nil
	}
	rec, ok := a.ledger[tx]
	if !ok || rec.disputed {
		return false, nil
	}
	avail, err := a.available.Sub(rec.amount)
	if err != nil {
		return false, err
	}
	held, err := a.held.Add(rec.amount)
	if err != nil {
		return false, err
	}
	a.available = avail
	a.held = held
	rec.disputed = true
	return true, nil
}

// resolve releases a disputed transaction's held funds back to available.
// Unknown tx ids and non-disputed records are absorbed.
func (a *account) resolve(tx model.TxID) (bool, error) {
	if a.locked {
		return false, nil
	}
	rec, ok := a.ledger[tx]
	if !ok || !rec.disputed {
		return false, nil
	}
	held, err := a.held.Sub(rec.amount)
	if err != nil {
		return false, err
	}
	avail, err := a.available.Add(rec.amount)
	if err != nil {
		return false, err
	}
	a.held = held
	a.available = avail
	rec.disputed = false
	return true, nil
}

// chargeback withdraws a disputed transaction's held funds and locks the
// account for the remainder of the run. The record is settled and removed
// from the ledger. Unknown tx ids and non-disputed records are absorbed.
func (a *account) chargeback(tx model.TxID) (bool, error) {
	if a.locked {
		return false, nil
	}
	rec, ok := a.ledger[tx]
	if !ok || !rec.disputed {
		return false, nil
	}
	held, err := a.held.Sub(rec.amount)
	if err != nil {
		return false, err
	}
	a.held = held
	a.locked = true
	delete(a.ledger, tx)
	return true, nil
}

// snapshot returns the externally visible balance tuple for the account.
func (a *account) snapshot(client model.ClientID) (model.Snapshot, error) {
	total, err := a.available.Add(a.held)
	if err != nil {
		return model.Snapshot{}, err
	}
	return model.Snapshot{
		Client:    client,
		Available: a.available,
		Held:      a.held,
		Total:     total,
		Locked:    a.locked,
	}, nil
}
