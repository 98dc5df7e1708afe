package csvexport

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	datatable "github.com/domonda/go-datatable"
)

type txn struct {
	Hash   string   `json:"transaction_hash"`
	Method string   `json:"cause"`
	Amount *float64 `json:"amount"`
}

func columns() []datatable.Column[txn] {
	return []datatable.Column[txn]{
		datatable.NewColumn[txn]("Hash", "transaction_hash"),
		datatable.NewColumn[txn]("Method", "cause"),
		datatable.NewColumn[txn]("Amount", "amount"),
	}
}

func TestWriter_Write(t *testing.T) {
	ctx := context.Background()
	one := 1.5
	rows := []txn{
		{Hash: "abc", Method: "MINT", Amount: &one},
		{Hash: "def", Method: "TRANSFER"},
	}
	tests := []struct {
		name     string
		writer   *Writer[txn]
		rows     []txn
		wantDest string
	}{
		{
			name:     "no rows",
			writer:   NewWriter[txn]().WithHeaderRow(false),
			rows:     nil,
			wantDest: ``,
		},
		{
			name:   "header only",
			writer: NewWriter[txn](),
			rows:   nil,
			wantDest: "" +
				`Hash;Method;Amount` + "\r\n",
		},
		{
			name:   "simple",
			writer: NewWriter[txn](),
			rows:   rows,
			wantDest: "" +
				`Hash;Method;Amount` + "\r\n" +
				`abc;MINT;1.5` + "\r\n" +
				`def;TRANSFER;` + "\r\n",
		},
		{
			name:   "nil value and newline",
			writer: NewWriter[txn]().WithHeaderRow(false).WithNilValue("-").WithNewLine("\n"),
			rows:   rows,
			wantDest: "" +
				`abc;MINT;1.5` + "\n" +
				`def;TRANSFER;-` + "\n",
		},
		{
			name:   "quote all fields",
			writer: NewWriter[txn]().WithHeaderRow(false).WithQuoteAllFields(true).WithDelimiter(','),
			rows:   rows[:1],
			wantDest: "" +
				`"abc","MINT","1.5"` + "\r\n",
		},
		{
			name:   "quote empty fields",
			writer: NewWriter[txn]().WithHeaderRow(false).WithQuoteEmptyFields(true),
			rows:   rows[1:],
			wantDest: "" +
				`def;TRANSFER;""` + "\r\n",
		},
		{
			name:   "escape",
			writer: NewWriter[txn]().WithHeaderRow(false),
			rows:   []txn{{Hash: "a;b", Method: `say "hi"`}, {Hash: "line\r\nbreak"}},
			wantDest: "" +
				`"a;b";"say ""hi""";` + "\r\n" +
				"\"line\nbreak\";;" + "\r\n",
		},
		{
			name:   "padded align left",
			writer: NewWriter[txn]().WithDelimiter('|').WithPadding(AlignLeft),
			rows:   rows,
			wantDest: "" +
				`Hash|Method  |Amount` + "\r\n" +
				`abc |MINT    |1.5   ` + "\r\n" +
				`def |TRANSFER|      ` + "\r\n",
		},
		{
			name:   "padded align right",
			writer: NewWriter[txn]().WithDelimiter('|').WithPadding(AlignRight),
			rows:   rows[:1],
			wantDest: "" +
				`Hash|Method|Amount` + "\r\n" +
				` abc|  MINT|   1.5` + "\r\n",
		},
		{
			name:   "padded align center",
			writer: NewWriter[txn]().WithDelimiter('|').WithPadding(AlignCenter),
			rows:   rows[:1],
			wantDest: "" +
				`Hash|Method|Amount` + "\r\n" +
				`abc | MINT | 1.5  ` + "\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := bytes.NewBuffer(nil)
			err := tt.writer.Write(ctx, dest, columns(), tt.rows)
			require.NoError(t, err)
			require.Equal(t, tt.wantDest, dest.String())
		})
	}
}

func TestWriter_WriteTable(t *testing.T) {
	table := datatable.NewTable(columns()...).
		WithKindFormatter(reflect.Float64, datatable.PrintfFormatter("%.2f"))
	one := 1.0
	dest := bytes.NewBuffer(nil)
	err := ForTable(table).WithHeaderRow(false).WriteTable(context.Background(), dest, table, []txn{{Hash: "abc", Amount: &one}})
	require.NoError(t, err)
	require.Equal(t, "abc;;1.00\r\n", dest.String())
}

func TestWriter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewWriter[txn]().Write(ctx, bytes.NewBuffer(nil), columns(), []txn{{}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriter_Encoder(t *testing.T) {
	upper := EncoderFunc(func(data []byte) ([]byte, error) {
		return []byte(strings.ToUpper(string(data))), nil
	})
	dest := bytes.NewBuffer(nil)
	err := NewWriter[txn]().WithHeaderRow(false).WithEncoder(upper).Write(context.Background(), dest, columns(), []txn{{Hash: "abc", Method: "mint"}})
	require.NoError(t, err)
	require.Equal(t, "ABC;MINT;\r\n", dest.String())

	latin1, err := CharsetEncoder("ISO-8859-1")
	require.NoError(t, err)
	dest.Reset()
	err = NewWriter[txn]().WithHeaderRow(false).WithEncoder(latin1).Write(context.Background(), dest, columns(), []txn{{Hash: "ä"}})
	require.NoError(t, err)
	require.Equal(t, []byte{0xE4, ';', ';', '\r', '\n'}, dest.Bytes())

	for _, name := range []string{"iso-8859-1", "latin1", "ISO 8859-1", "windows-1252"} {
		enc, err := CharsetEncoder(name)
		require.NoError(t, err, name)
		encoded, err := enc.Bytes([]byte("ä"))
		require.NoError(t, err, name)
		require.Equal(t, []byte{0xE4}, encoded, name)
	}

	_, err = CharsetEncoder("no-such-charset")
	require.Error(t, err)

	passthrough, err := PassthroughEncoder().Bytes([]byte("x"))
	require.NoError(t, err)
	require.Equal(t, []byte("x"), passthrough)
}
