package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ab2049/paytoy/internal/amount"
	"github.com/ab2049/paytoy/internal/model"
	"github.com/ab2049/paytoy/internal/validate"
)

// column indexes within one input record, -1 when absent.
type columns struct {
	typ    int
	client int
	tx     int
	amount int
}

// Reader decodes the input CSV into typed events in input order.
type Reader struct {
	csv  *csv.Reader
	cols columns
	line int
}

// NewReader wraps r and consumes its header row. Every header must be one
// of type, client, tx, amount (any order); anything else is an
// invalid-input condition. The amount column may be absent when the file
// carries only dispute-lifecycle events.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", validate.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", validate.ErrInvalidInput, err)
	}

	cols := columns{typ: -1, client: -1, tx: -1, amount: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "type":
			cols.typ = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		default:
			return nil, fmt.Errorf("%w: unknown header %q", validate.ErrInvalidInput, h)
		}
	}
	if cols.typ < 0 || cols.client < 0 || cols.tx < 0 {
		return nil, fmt.Errorf("%w: header must name type, client and tx", validate.ErrInvalidInput)
	}

	return &Reader{csv: cr, cols: cols, line: 1}, nil
}

// Next returns the next typed event, io.EOF at end of input, or a fatal
// invalid-input error. Fields are trimmed before parsing.
func (r *Reader) Next() (model.Event, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return model.Event{}, io.EOF
	}
	r.line++
	if err != nil {
		// Wrong field counts land here via csv.ErrFieldCount.
		return model.Event{}, fmt.Errorf("%w: line %d: %v", validate.ErrInvalidInput, r.line, err)
	}

	typ, err := model.ParseEventType(strings.TrimSpace(record[r.cols.typ]))
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: line %d: %v", validate.ErrInvalidInput, r.line, err)
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[r.cols.client]), 10, 16)
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: line %d: bad client id %q", validate.ErrInvalidInput, r.line, record[r.cols.client])
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(record[r.cols.tx]), 10, 32)
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: line %d: bad tx id %q", validate.ErrInvalidInput, r.line, record[r.cols.tx])
	}

	ev := model.Event{
		Type:   typ,
		Client: model.ClientID(client),
		Tx:     model.TxID(tx),
	}

	// An empty amount field means no amount; the validator decides whether
	// that is legal for the event kind.
	if r.cols.amount >= 0 {
		if raw := strings.TrimSpace(record[r.cols.amount]); raw != "" {
			amt, err := amount.Parse(raw)
			if err != nil {
				return model.Event{}, fmt.Errorf("line %d: %w", r.line, err)
			}
			ev.Amount = &amt
		}
	}

	return ev, nil
}
