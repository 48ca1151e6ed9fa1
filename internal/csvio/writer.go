package csvio

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/ab2049/paytoy/internal/model"
)

// WriteSnapshots renders the final balances as CSV. Rows are sorted by
// client id so runs over the same input compare equal byte-for-byte.
// The snaps slice is sorted in place.
func WriteSnapshots(w io.Writer, snaps []model.Snapshot) error {
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Client < snaps[j].Client })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, s := range snaps {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
