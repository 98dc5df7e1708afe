package datatable

import (
	"errors"
	"fmt"
	"html"
	"html/template"
	"reflect"
	"regexp"
	"strings"
)

// Column describes how one column of a table is rendered.
type Column[R any] struct {
	// Header is the content of the header cell,
	// a plain label created with Text or markup for a control.
	Header template.HTML
	// Key is the field name of a row used for the cell content
	// if Cell is nil. See KeyNaming.LookupKey.
	Key string
	// Cell renders the cell content. If not nil it takes precedence
	// over the lookup of Key.
	Cell CellRenderer[R]
	// TDClass is the CSS class of the body cells.
	TDClass string
	// THClass is the CSS class of the header cell.
	THClass string

	// Title is the plain text title used for exports.
	// If empty then the text of Header or the Key is used.
	Title string
	// Text returns the plain text value used for exports.
	// If nil then the value of Key is used.
	Text func(row R) string
}

// NewColumn returns a Column with a text header
// rendering the value of key.
func NewColumn[R any](header, key string) Column[R] {
	return Column[R]{Header: Text(header), Key: key, Title: header}
}

// WithCell returns a copy of the column using cell as renderer.
func (c Column[R]) WithCell(cell CellRenderer[R]) Column[R] {
	c.Cell = cell
	return c
}

// WithCellFunc returns a copy of the column using cell as renderer.
func (c Column[R]) WithCellFunc(cell func(row R, rowIndex int) template.HTML) Column[R] {
	c.Cell = CellFunc[R](cell)
	return c
}

// WithClasses returns a copy of the column with the passed
// CSS classes for body and header cells.
func (c Column[R]) WithClasses(tdClass, thClass string) Column[R] {
	c.TDClass = tdClass
	c.THClass = thClass
	return c
}

// WithText returns a copy of the column using text for exports.
func (c Column[R]) WithText(text func(row R) string) Column[R] {
	c.Text = text
	return c
}

var tagRegexp = regexp.MustCompile(`<[^>]*>`)

// PlainTitle returns the title of the column as plain text.
func (c Column[R]) PlainTitle() string {
	if c.Title != "" {
		return c.Title
	}
	if title := strings.TrimSpace(tagRegexp.ReplaceAllString(string(c.Header), "")); title != "" {
		return html.UnescapeString(title)
	}
	return SpacePascalCase(c.Key)
}

// PlainText returns the plain text value of the column for row.
// Missing keys and nil values result in nilValue.
func (c Column[R]) PlainText(row R, naming *KeyNaming, formatters *TypeFormatters, nilValue string) string {
	if c.Text != nil {
		return c.Text(row)
	}
	str, _, err := formatKeyValue(naming.LookupKey(row, c.Key), formatters)
	if err != nil || str == "" {
		return nilValue
	}
	return str
}

// formatKeyValue formats the value of a key lookup.
// Pointers and interfaces are dereferenced for values
// not supported by the formatters.
// An empty string is returned for nil-like values.
func formatKeyValue(v reflect.Value, formatters *TypeFormatters) (str string, raw bool, err error) {
	if ValueIsNil(v) {
		return "", false, nil
	}
	for {
		str, raw, err = formatters.FormatValue(v)
		if err == nil {
			return str, raw, nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			return "", false, err
		}
		if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
			break
		}
		if v.IsNil() {
			return "", false, nil
		}
		v = v.Elem()
	}
	return fmt.Sprint(v.Interface()), false, nil
}
