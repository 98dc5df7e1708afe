package datatable

import (
	"errors"
	"html/template"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellRenderers(t *testing.T) {
	row := Row{"cause": "<MINT>", "count": 3}
	tests := []struct {
		name string
		cell CellRenderer[Row]
		want template.HTML
	}{
		{
			name: "CellFunc",
			cell: CellFunc[Row](func(r Row, rowIndex int) template.HTML { return Textf("%d:%v", rowIndex, r["count"]) }),
			want: "7:3",
		},
		{
			name: "TextCell escapes",
			cell: TextCell(func(r Row) string { return r["cause"].(string) }),
			want: "&lt;MINT&gt;",
		},
		{
			name: "PrintfCell escapes",
			cell: PrintfCell("%v & more", func(r Row) any { return r["cause"] }),
			want: "&lt;MINT&gt; &amp; more",
		},
		{
			name: "StaticCell",
			cell: StaticCell[Row]("<i class='icon'></i>"),
			want: "<i class='icon'></i>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cell.RenderCell(row, 7))
		})
	}
}

func TestTextAndRaw(t *testing.T) {
	require.Equal(t, template.HTML("a &lt;b&gt; &#39;c&#39;"), Text("a <b> 'c'"))
	require.Equal(t, template.HTML("<b>1</b>"), Raw("<b>1</b>"))
	require.Equal(t, template.HTML("1 &amp; 2"), Textf("%d & %d", 1, 2))
}

func TestValueFormatters(t *testing.T) {
	str, raw, err := SprintFormatter{}.FormatValue(reflect.ValueOf(42))
	require.NoError(t, err)
	require.Equal(t, "42", str)
	require.False(t, raw)

	_, raw, err = SprintFormatter{Raw: true}.FormatValue(reflect.ValueOf("<b>"))
	require.NoError(t, err)
	require.True(t, raw)

	str, _, err = PrintfFormatter("%05.1f").FormatValue(reflect.ValueOf(3.14159))
	require.NoError(t, err)
	require.Equal(t, "003.1", str)

	upper := FormatterFunc(strings.ToUpper)
	str, _, err = upper.FormatValue(reflect.ValueOf("mint"))
	require.NoError(t, err)
	require.Equal(t, "MINT", str)
	_, _, err = upper.FormatValue(reflect.ValueOf(1))
	require.ErrorIs(t, err, errors.ErrUnsupported)
}
