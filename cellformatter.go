package datatable

import (
	"fmt"
	"html/template"
)

// CellRenderer renders the content of a table cell for a row.
type CellRenderer[R any] interface {
	// RenderCell returns the HTML content of the cell
	// for row at rowIndex within the rendered data.
	RenderCell(row R, rowIndex int) template.HTML
}

// CellFunc implements CellRenderer for a function.
type CellFunc[R any] func(row R, rowIndex int) template.HTML

func (f CellFunc[R]) RenderCell(row R, rowIndex int) template.HTML {
	return f(row, rowIndex)
}

// TextCell returns a CellRenderer that HTML escapes
// the string returned by text.
func TextCell[R any](text func(row R) string) CellRenderer[R] {
	return CellFunc[R](func(row R, _ int) template.HTML {
		return Text(text(row))
	})
}

// PrintfCell returns a CellRenderer that formats the result
// of value with fmt.Sprintf and HTML escapes it.
func PrintfCell[R any](format string, value func(row R) any) CellRenderer[R] {
	return CellFunc[R](func(row R, _ int) template.HTML {
		return Text(fmt.Sprintf(format, value(row)))
	})
}

// StaticCell returns a CellRenderer that always returns html.
type StaticCell[R any] template.HTML

func (c StaticCell[R]) RenderCell(R, int) template.HTML {
	return template.HTML(c)
}

// Text returns s as HTML escaped content.
func Text(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s)) //#nosec G203
}

// Textf formats according to format, escapes the result
// and returns it as HTML content.
func Textf(format string, args ...any) template.HTML {
	return Text(fmt.Sprintf(format, args...))
}

// Raw returns s unescaped as HTML content.
// Only use it for trusted markup.
func Raw(s string) template.HTML {
	return template.HTML(s) //#nosec G203
}
