// Package csvexport writes the rows of a data table as CSV
// using the plain text titles and values of the table columns.
package csvexport

import (
	"bytes"
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"
	"golang.org/x/text/encoding/ianaindex"

	datatable "github.com/domonda/go-datatable"
)

// Encoder is an interface to encode byte strings.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements the Encoder interface for a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// PassthroughEncoder returns an Encoder that returns the passed data unchanged.
func PassthroughEncoder() Encoder {
	return EncoderFunc(func(data []byte) ([]byte, error) {
		return data, nil
	})
}

// CharsetEncoder returns an Encoder that encodes
// UTF-8 to the character set with the passed name.
// IANA names and aliases like "ISO-8859-1" or "latin1"
// are resolved first, then the names known by go-types/charset.
func CharsetEncoder(name string) (Encoder, error) {
	if ianaEnc, err := ianaindex.IANA.Encoding(name); err == nil && ianaEnc != nil {
		return EncoderFunc(func(data []byte) ([]byte, error) {
			return ianaEnc.NewEncoder().Bytes(data)
		}), nil
	}
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	return EncoderFunc(enc.Encode), nil
}

type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Writer writes rows of type R as CSV.
//
// Writer is immutable after creation, all With* methods
// return a new Writer with the modified configuration.
type Writer[R any] struct {
	naming           *datatable.KeyNaming
	formatters       *datatable.TypeFormatters
	padding          Padding
	headerRow        bool
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	nilValue         string
	delimiter        rune
	newLine          string
	encoder          Encoder
}

func NewWriter[R any]() *Writer[R] {
	return &Writer[R]{
		naming:           datatable.DefaultKeyNaming,
		formatters:       nil, // OK to use nil datatable.TypeFormatters
		padding:          NoPadding,
		headerRow:        true,
		quoteAllFields:   false,
		quoteEmptyFields: false,
		escapeQuotes:     `""`,
		nilValue:         "",
		delimiter:        ';',
		newLine:          "\r\n",
		encoder:          nil,
	}
}

// ForTable returns a new Writer using the key naming
// and type formatters of table.
func ForTable[R any](table *datatable.Table[R]) *Writer[R] {
	return NewWriter[R]().
		WithKeyNaming(table.KeyNaming()).
		WithTypeFormatters(table.TypeFormatters())
}

func (w *Writer[R]) clone() *Writer[R] {
	c := new(Writer[R])
	*c = *w
	return c
}

// WriteTable writes rows with the columns of table to dest.
func (w *Writer[R]) WriteTable(ctx context.Context, dest io.Writer, table *datatable.Table[R], rows []R) error {
	return w.Write(ctx, dest, table.Columns(), rows)
}

// Write writes the column titles if enabled
// and the plain text values of rows to dest.
func (w *Writer[R]) Write(ctx context.Context, dest io.Writer, columns []datatable.Column[R], rows []R) error {
	if w.padding != NoPadding {
		return w.writePadded(ctx, dest, columns, rows)
	}

	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	if w.headerRow {
		err := w.writeLine(rowBuf, dest, w.titles(columns))
		if err != nil {
			return err
		}
	}
	for _, row := range rows {
		strs, err := w.rowStrings(ctx, columns, row)
		if err != nil {
			return err
		}
		err = w.writeLine(rowBuf, dest, strs)
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer[R]) writePadded(ctx context.Context, dest io.Writer, columns []datatable.Column[R], rows []R) error {
	lines, err := w.Strings(ctx, columns, rows)
	if err != nil {
		return err
	}

	// Collect column widths
	colRuneCount := columnWidths(lines, len(columns))

	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	for _, line := range lines {
		padded := make([]string, len(line))
		for col, str := range line {
			var (
				padTotal = colRuneCount[col] - utf8.RuneCountInString(str)
				padLeft  = 0
				padRight = 0
			)
			switch w.padding {
			case AlignLeft:
				padRight = padTotal
			case AlignRight:
				padLeft = padTotal
			case AlignCenter:
				padLeft = padTotal / 2
				padRight = (padTotal + 1) / 2
			}
			padded[col] = strings.Repeat(" ", padLeft) + str + strings.Repeat(" ", padRight)
		}
		err = w.writeLine(rowBuf, dest, padded)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeLine joins the already escaped fields of a line in rowBuf,
// encodes and writes them to dest.
func (w *Writer[R]) writeLine(rowBuf *bytes.Buffer, dest io.Writer, fields []string) error {
	rowBuf.Reset()
	for col, str := range fields {
		if col > 0 {
			rowBuf.WriteRune(w.delimiter)
		}
		rowBuf.WriteString(str)
	}
	rowBuf.WriteString(w.newLine)

	line := rowBuf.Bytes()
	if w.encoder != nil {
		var err error
		line, err = w.encoder.Bytes(line)
		if err != nil {
			return err
		}
	}
	_, err := dest.Write(line)
	return err
}

// Strings returns the escaped CSV fields of the header row
// if enabled and of all rows.
func (w *Writer[R]) Strings(ctx context.Context, columns []datatable.Column[R], rows []R) ([][]string, error) {
	lines := make([][]string, 0, len(rows)+1)
	if w.headerRow {
		lines = append(lines, w.titles(columns))
	}
	for _, row := range rows {
		strs, err := w.rowStrings(ctx, columns, row)
		if err != nil {
			return nil, err
		}
		lines = append(lines, strs)
	}
	return lines, nil
}

func (w *Writer[R]) rowStrings(ctx context.Context, columns []datatable.Column[R], row R) ([]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	strs := make([]string, len(columns))
	for col := range columns {
		strs[col] = w.escapeString(columns[col].PlainText(row, w.naming, w.formatters, w.nilValue))
	}
	return strs, nil
}

func (w *Writer[R]) titles(columns []datatable.Column[R]) []string {
	strs := make([]string, len(columns))
	for col := range columns {
		strs[col] = w.escapeString(columns[col].PlainTitle())
	}
	return strs
}

func (w *Writer[R]) escapeString(str string) string {
	// Just in case remove all \r,
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsRune(str, '\n') || strings.ContainsRune(str, '"'):
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return str
}

// columnWidths returns the maximum rune count per column.
func columnWidths(lines [][]string, numCols int) []int {
	widths := make([]int, numCols)
	for _, line := range lines {
		for col := 0; col < numCols && col < len(line); col++ {
			widths[col] = max(widths[col], utf8.RuneCountInString(line[col]))
		}
	}
	return widths
}

func (w *Writer[R]) WithHeaderRow(headerRow bool) *Writer[R] {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer[R]) WithKeyNaming(naming *datatable.KeyNaming) *Writer[R] {
	mod := w.clone()
	mod.naming = naming
	return mod
}

func (w *Writer[R]) WithTypeFormatters(formatters *datatable.TypeFormatters) *Writer[R] {
	mod := w.clone()
	mod.formatters = formatters
	return mod
}

func (w *Writer[R]) WithPadding(padding Padding) *Writer[R] {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer[R]) WithQuoteAllFields(quoteAllFields bool) *Writer[R] {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer[R]) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer[R] {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer[R]) WithNilValue(nilValue string) *Writer[R] {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer[R]) WithEscapeQuotes(escapeQuotes string) *Writer[R] {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer[R]) WithDelimiter(delimiter rune) *Writer[R] {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer[R]) WithNewLine(newLine string) *Writer[R] {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

func (w *Writer[R]) WithEncoder(encoder Encoder) *Writer[R] {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

func (w *Writer[R]) HeaderRow() bool {
	return w.headerRow
}

func (w *Writer[R]) Delimiter() rune {
	return w.delimiter
}

func (w *Writer[R]) NilValue() string {
	return w.nilValue
}

func (w *Writer[R]) NewLine() string {
	return w.newLine
}

func (w *Writer[R]) Encoder() Encoder {
	return w.encoder
}
