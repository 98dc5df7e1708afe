package datatable

import (
	"html/template"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumn_PlainTitle(t *testing.T) {
	tests := []struct {
		name string
		col  Column[Row]
		want string
	}{
		{name: "NewColumn", col: NewColumn[Row]("TXN HASH", "transaction_hash"), want: "TXN HASH"},
		{name: "markup header", col: Column[Row]{Header: "<button type='button'>Age &amp; Time</button>"}, want: "Age & Time"},
		{name: "key", col: Column[Row]{Key: "affected_account_id"}, want: "affected account id"},
		{name: "empty markup uses key", col: Column[Row]{Header: "<i class='icon'></i>", Key: "StatusIcon"}, want: "Status Icon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.col.PlainTitle())
		})
	}
}

func TestColumn_PlainText(t *testing.T) {
	upper := (*TypeFormatters)(nil).WithKindFormatter(reflect.String, FormatterFunc(strings.ToUpper))
	row := Row{"cause": "mint", "count": 3, "missing": nil}

	require.Equal(t, "mint", NewColumn[Row]("METHOD", "cause").PlainText(row, DefaultKeyNaming, nil, "-"))
	require.Equal(t, "MINT", NewColumn[Row]("METHOD", "cause").PlainText(row, DefaultKeyNaming, upper, "-"))
	require.Equal(t, "3", NewColumn[Row]("COUNT", "count").PlainText(row, DefaultKeyNaming, upper, "-"))
	require.Equal(t, "-", NewColumn[Row]("NIL", "missing").PlainText(row, DefaultKeyNaming, nil, "-"))
	require.Equal(t, "-", NewColumn[Row]("UNKNOWN", "unknown").PlainText(row, DefaultKeyNaming, nil, "-"))

	custom := NewColumn[Row]("METHOD", "cause").WithText(func(r Row) string { return "custom" })
	require.Equal(t, "custom", custom.PlainText(row, DefaultKeyNaming, nil, "-"))
}

func TestColumn_With(t *testing.T) {
	col := NewColumn[Row]("METHOD", "cause")
	mod := col.WithClasses("td", "th").WithCellFunc(func(Row, int) template.HTML { return "x" })
	require.Empty(t, col.TDClass)
	require.Nil(t, col.Cell)
	require.Equal(t, "td", mod.TDClass)
	require.Equal(t, "th", mod.THClass)
	require.Equal(t, template.HTML("x"), mod.Cell.RenderCell(nil, 0))
}

func TestFormatKeyValue(t *testing.T) {
	n := 5
	var nilPtr *int
	tests := []struct {
		name string
		val  reflect.Value
		want string
	}{
		{name: "invalid", val: reflect.Value{}, want: ""},
		{name: "nil pointer", val: reflect.ValueOf(nilPtr), want: ""},
		{name: "pointer", val: reflect.ValueOf(&n), want: "5"},
		{name: "string", val: reflect.ValueOf("abc"), want: "abc"},
		{name: "float", val: reflect.ValueOf(1.25), want: "1.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			str, raw, err := formatKeyValue(tt.val, nil)
			require.NoError(t, err)
			require.False(t, raw)
			require.Equal(t, tt.want, str)
		})
	}
}
