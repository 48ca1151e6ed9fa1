package validate

import (
	"errors"
	"fmt"

	"github.com/ab2049/paytoy/internal/model"
)

// ErrInvalidInput is the sentinel for every malformed-event condition.
// Callers classify with errors.Is; the wrapped message carries the specific
// violation.
var ErrInvalidInput = errors.New("invalid input")

// Check verifies the shape of one typed event. It has no side effects and
// no dependency on account state. A nil return means the event may be
// routed; a non-nil return is fatal to the run.
func Check(ev model.Event) error {
	switch ev.Type {
	case model.Deposit, model.Withdrawal:
		if ev.Amount == nil {
			return fmt.Errorf("%w: amount required for %s tx %d", ErrInvalidInput, ev.Type, ev.Tx)
		}
		if ev.Amount.IsNegative() {
			return fmt.Errorf("%w: negative amount for %s tx %d", ErrInvalidInput, ev.Type, ev.Tx)
		}
		if ev.Amount.IsZero() {
			return fmt.Errorf("%w: zero amount for %s tx %d", ErrInvalidInput, ev.Type, ev.Tx)
		}
	case model.Dispute, model.Resolve, model.Chargeback:
		if ev.Amount != nil {
			return fmt.Errorf("%w: amount not allowed for %s tx %d", ErrInvalidInput, ev.Type, ev.Tx)
		}
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, ev.Type)
	}
	return nil
}
