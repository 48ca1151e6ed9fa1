package model

import (
	"fmt"

	"github.com/ab2049/paytoy/internal/amount"
)

// ClientID identifies one client, stable for the duration of a run. It is
// also the shard-selection key (shard = ClientID mod shard count).
type ClientID uint16

// TxID identifies one deposit or withdrawal, unique across the whole run.
// Dispute, resolve and chargeback events reference an existing TxID.
type TxID uint32

// EventType enumerates the event kinds the engine processes.
type EventType string

// Recognized event types, matching the input collaborator's wire spelling.
const (
	Deposit    EventType = "deposit"
	Withdrawal EventType = "withdrawal"
	Dispute    EventType = "dispute"
	Resolve    EventType = "resolve"
	Chargeback EventType = "chargeback"
)

// ParseEventType maps the wire spelling of an event kind to its EventType.
// Unknown spellings are rejected; matching is exact, not case-folded.
func ParseEventType(s string) (EventType, error) {
	switch t := EventType(s); t {
	case Deposit, Withdrawal, Dispute, Resolve, Chargeback:
		return t, nil
	default:
		return "", fmt.Errorf("unknown event type %q", s)
	}
}

// RequiresAmount reports whether this event kind carries an amount. Deposits and
// withdrawals require one; the dispute lifecycle events forbid one.
func (t EventType) RequiresAmount() bool {
	return t == Deposit || t == Withdrawal
}

// Event is one typed input record handed to the engine by the input
// collaborator. Amount is nil for dispute, resolve and chargeback.
type Event struct {
	Type   EventType
	Client ClientID
	Tx     TxID
	Amount *amount.Amount
}

// Snapshot is the final balance tuple exported for one client.
// Total is always Available + Held.
type Snapshot struct {
	Client    ClientID
	Available amount.Amount
	Held      amount.Amount
	Total     amount.Amount
	Locked    bool
}
