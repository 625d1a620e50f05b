package csvio

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djpatra/krwallet/internal/model/enum"
	"github.com/djpatra/krwallet/internal/wallet"
	"github.com/djpatra/krwallet/pkg/exception"
)

func TestReaderParsesTrimmedFields(t *testing.T) {
	r := NewReader(strings.NewReader("type, client, tx, amount\n deposit , 1 , 42 , 1.5 \n"))

	tx, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, enum.TransactionKindDeposit, tx.Kind)
	assert.Equal(t, uint16(1), tx.Client)
	assert.Equal(t, uint32(42), tx.ID)
	require.True(t, tx.HasAmount)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("1.5")))
	assert.False(t, tx.Disputed)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderCaseInsensitive(t *testing.T) {
	r := NewReader(strings.NewReader("TYPE,CLIENT,TX,AMOUNT\nDeposit,1,1,2.0\nCHARGEBACK,1,1,\n"))

	tx, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, enum.TransactionKindDeposit, tx.Kind)

	tx, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, enum.TransactionKindChargeback, tx.Kind)
	assert.False(t, tx.HasAmount)
}

func TestReaderEmptyAmount(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount\ndispute,1,7,\n"))

	tx, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, enum.TransactionKindDispute, tx.Kind)
	assert.False(t, tx.HasAmount)
}

func TestReaderMalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"unknown kind", "transfer,1,1,1.0"},
		{"bad client", "deposit,abc,1,1.0"},
		{"client overflow", "deposit,70000,1,1.0"},
		{"bad tx", "deposit,1,abc,1.0"},
		{"bad amount", "deposit,1,1,abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader("type,client,tx,amount\n" + tt.row + "\n"))
			_, err := r.Next()
			require.ErrorIs(t, err, exception.ErrSourceFormat)
		})
	}
}

func TestReaderMissingHeaderColumn(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,amount\ndeposit,1,1.0\n"))
	_, err := r.Next()
	require.ErrorIs(t, err, exception.ErrSourceFormat)
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestWriterRendersFourDigits(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write(wallet.Snapshot{
		Client:    1,
		Available: decimal.RequireFromString("1.5"),
		Held:      decimal.Zero,
		Total:     decimal.RequireFromString("1.5"),
	}))
	require.NoError(t, w.Write(wallet.Snapshot{
		Client:    2,
		Available: decimal.RequireFromString("-10"),
		Held:      decimal.RequireFromString("10"),
		Total:     decimal.Zero,
		Locked:    true,
	}))
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"client_id,available,held,total,locked\n"+
			"1,1.5000,0.0000,1.5000,false\n"+
			"2,-10.0000,10.0000,0.0000,true\n",
		buf.String(),
	)
}

func TestWriterHeaderWithoutRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Flush())
	assert.Equal(t, "client_id,available,held,total,locked\n", buf.String())
}
