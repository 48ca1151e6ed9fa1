package amount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits an Amount carries.
const Scale = 4

var (
	// ErrInvalidAmount reports a textual value that cannot become an Amount:
	// unparseable, negative, too many decimal places, or a leading bare '.'.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrOverflow reports arithmetic that left the representable range.
	// It is fatal to the run.
	ErrOverflow = errors.New("amount overflow")
)

// Amount is a fixed-point monetary value held as ticks of 0.0001.
type Amount struct {
	ticks int64
}

// Zero is the zero Amount.
var Zero = Amount{}

// FromTicks builds an Amount directly from a tick count.
func FromTicks(ticks int64) Amount {
	return Amount{ticks: ticks}
}

// Parse converts the textual form of a non-negative decimal value into an
// Amount. The input is trimmed before parsing. Values like ".1", "-2",
// "1.00001" or "foo" fail with ErrInvalidAmount; values whose tick count
// does not fit in an int64 fail with ErrOverflow.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, ".") {
		return Amount{}, fmt.Errorf("%w: leading decimal point in %q", ErrInvalidAmount, s)
	}
	if strings.ContainsAny(s, "eE") {
		return Amount{}, fmt.Errorf("%w: exponent notation in %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("%w: negative value %q", ErrInvalidAmount, s)
	}
	if d.Exponent() < -Scale {
		return Amount{}, fmt.Errorf("%w: more than %d decimal places in %q", ErrInvalidAmount, Scale, s)
	}
	ticks := d.Shift(Scale).BigInt()
	if !ticks.IsInt64() {
		return Amount{}, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return Amount{ticks: ticks.Int64()}, nil
}

// Add returns a+b, or ErrOverflow when the sum leaves the int64 tick range.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a.ticks + b.ticks
	if (b.ticks > 0 && sum < a.ticks) || (b.ticks < 0 && sum > a.ticks) {
		return Amount{}, fmt.Errorf("%w: %s + %s", ErrOverflow, a, b)
	}
	return Amount{ticks: sum}, nil
}

// Sub returns a-b, or ErrOverflow when the difference leaves the int64
// tick range.
func (a Amount) Sub(b Amount) (Amount, error) {
	diff := a.ticks - b.ticks
	if (b.ticks < 0 && diff < a.ticks) || (b.ticks > 0 && diff > a.ticks) {
		return Amount{}, fmt.Errorf("%w: %s - %s", ErrOverflow, a, b)
	}
	return Amount{ticks: diff}, nil
}

// Cmp compares two amounts: -1 if a < b, 0 if equal, +1 if a > b.
func (a Amount) Cmp(b Amount) int {
	switch {
	case a.ticks < b.ticks:
		return -1
	case a.ticks > b.ticks:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.ticks == 0
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a.ticks < 0
}

// Ticks returns the raw tick count.
func (a Amount) Ticks() int64 {
	return a.ticks
}

// String renders the amount with exactly four fractional digits.
func (a Amount) String() string {
	return decimal.New(a.ticks, -Scale).StringFixed(Scale)
}
