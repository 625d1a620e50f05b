package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"github.com/djpatra/krwallet/internal/model"
	"github.com/djpatra/krwallet/internal/model/enum"
	"github.com/djpatra/krwallet/pkg/exception"
)

// Reader adapts a CSV stream into a processor source. The first row
// must be a header naming the type, client, tx and amount columns;
// column lookup is case-insensitive and every field is trimmed.
type Reader struct {
	csv  *csv.Reader
	cols map[string]int
}

// NewReader wraps r. The stream is lazy, finite and not restartable.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next transaction record, io.EOF at end of stream,
// or an exception.ErrSourceFormat-wrapped error for rows the caller
// may skip.
func (r *Reader) Next() (*model.Transaction, error) {
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}

	row, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, errors.Wrap(exception.ErrSourceFormat, err.Error())
	}

	return r.parse(row)
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return errors.Wrap(exception.ErrSourceFormat, err.Error())
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := cols[required]; !ok {
			return errors.Wrap(exception.ErrSourceFormat, "missing header column").With("column", required)
		}
	}

	r.cols = cols
	return nil
}

func (r *Reader) parse(row []string) (*model.Transaction, error) {
	kindField, err := r.field(row, "type")
	if err != nil {
		return nil, err
	}
	kind, ok := enum.ParseTransactionKind(kindField)
	if !ok {
		return nil, errors.Wrap(exception.ErrSourceFormat, "unknown transaction type").With("type", kindField)
	}

	clientField, err := r.field(row, "client")
	if err != nil {
		return nil, err
	}
	client, err := strconv.ParseUint(clientField, 10, 16)
	if err != nil {
		return nil, errors.Wrap(exception.ErrSourceFormat, "parse client id").With("client", clientField)
	}

	txField, err := r.field(row, "tx")
	if err != nil {
		return nil, err
	}
	txID, err := strconv.ParseUint(txField, 10, 32)
	if err != nil {
		return nil, errors.Wrap(exception.ErrSourceFormat, "parse tx id").With("tx", txField)
	}

	tx := &model.Transaction{
		Kind:   kind,
		Client: uint16(client),
		ID:     uint32(txID),
	}

	if idx, ok := r.cols["amount"]; ok && idx < len(row) {
		raw := strings.TrimSpace(row[idx])
		if raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, errors.Wrap(exception.ErrSourceFormat, "parse amount").With("amount", raw)
			}
			tx.Amount = amount
			tx.HasAmount = true
		}
	}

	return tx, nil
}

func (r *Reader) field(row []string, name string) (string, error) {
	idx := r.cols[name]
	if idx >= len(row) {
		return "", errors.Wrap(exception.ErrSourceFormat, "missing field").With("field", name)
	}
	return strings.TrimSpace(row[idx]), nil
}
