package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/yanun0323/errors"

	"github.com/djpatra/krwallet/internal/wallet"
	"github.com/djpatra/krwallet/pkg/exception"
)

var outputHeader = []string{"client_id", "available", "held", "total", "locked"}

// Writer renders wallet snapshots as CSV rows. Decimals carry exactly
// four fractional digits and the header row is always present, both
// part of the output contract.
type Writer struct {
	csv         *csv.Writer
	wroteHeader bool
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// Write emits one snapshot row, prefixed by the header on first use.
func (w *Writer) Write(snap wallet.Snapshot) error {
	if err := w.writeHeader(); err != nil {
		return err
	}

	row := []string{
		strconv.FormatUint(uint64(snap.Client), 10),
		snap.Available.StringFixed(4),
		snap.Held.StringFixed(4),
		snap.Total.StringFixed(4),
		strconv.FormatBool(snap.Locked),
	}
	if err := w.csv.Write(row); err != nil {
		return errors.Wrap(exception.ErrSinkWrite, err.Error()).With("client", snap.Client)
	}
	return nil
}

// Flush reports any deferred write error. The header is emitted even
// when no wallet was snapshotted.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return errors.Wrap(exception.ErrSinkWrite, err.Error())
	}
	return nil
}

func (w *Writer) writeHeader() error {
	if w.wroteHeader {
		return nil
	}
	if err := w.csv.Write(outputHeader); err != nil {
		return errors.Wrap(exception.ErrSinkWrite, err.Error())
	}
	w.wroteHeader = true
	return nil
}
