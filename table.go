// Package datatable renders the data tables of the explorer
// as HTML from a list of column descriptors and a page of rows.
//
// A Table is configured once and then rendered for every data refresh
// from a Props value holding the loading flag, the rows of the current
// page and the optional pagination state:
//
//	table := datatable.NewTable(
//	    datatable.NewColumn[Txn]("TXN HASH", "transaction_hash"),
//	    datatable.NewColumn[Txn]("METHOD", "cause"),
//	).WithErrorMessage("No transactions found!")
//
//	err := table.WriteHTML(ctx, w, datatable.Props[Txn]{
//	    Data:   txns,
//	    Offset: &paging.Offset{Count: count, Page: page, Limit: 25, PageLimit: 10},
//	})
//
// Rendering is a pure function of the Table configuration and the Props:
// it issues no requests, mutates nothing and yields the same output
// for the same input.
package datatable

import (
	"context"
	"html/template"
	"io"
	"reflect"
)

// DefaultErrorMessage is rendered when no data is available.
const DefaultErrorMessage = "Error"

// DefaultSkeletonRows is the number of skeleton rows
// rendered while loading if Props has no limit.
const DefaultSkeletonRows = 25

// Table renders rows of type R as HTML table.
//
// Table is immutable after creation, all With* methods
// return a new Table with the modified configuration.
type Table[R any] struct {
	columns        []Column[R]
	tableClass     string
	compact        bool
	errorMessage   string
	skeletonRows   int
	subComponent   func(row R, rowIndex int) template.HTML
	naming         *KeyNaming
	typeFormatters *TypeFormatters
	nilValue       template.HTML
	headerTemplate *template.Template
	rowTemplate    *template.Template
	footerTemplate *template.Template
}

// NewTable returns a Table rendering the passed columns.
//
// Default configuration:
//   - No table class
//   - Not compact
//   - DefaultErrorMessage for undefined data
//   - DefaultSkeletonRows if no limit is known while loading
//   - DefaultKeyNaming for key lookups
//   - No type formatters, values are formatted with fmt.Sprint
//   - Empty string for nil values
//   - HeaderTemplate, RowTemplate, FooterTemplate
func NewTable[R any](columns ...Column[R]) *Table[R] {
	return &Table[R]{
		columns:        columns,
		errorMessage:   DefaultErrorMessage,
		skeletonRows:   DefaultSkeletonRows,
		naming:         DefaultKeyNaming,
		typeFormatters: nil, // OK to use nil TypeFormatters
		headerTemplate: HeaderTemplate,
		rowTemplate:    RowTemplate,
		footerTemplate: FooterTemplate,
	}
}

// Columns returns the columns of the table.
func (t *Table[R]) Columns() []Column[R] {
	return t.columns
}

// Render returns the rendered tree of the table for props.
//
//  1. While loading the header, one skeleton row per expected row
//     and the pagination controls are rendered, props.Data is ignored.
//  2. If props.Data is nil, then the header and a single error row
//     spanning all columns is rendered without pagination.
//  3. Otherwise every row is rendered in order, preceded by
//     its warning band if flagged and followed by its sub-component
//     if expanded and the table is not compact.
//     The pagination controls are rendered after the rows.
func (t *Table[R]) Render(props Props[R]) *Fragment {
	f := &Fragment{
		TableClass:     t.tableClass,
		Compact:        t.compact,
		Header:         make([]HeaderCell, len(t.columns)),
		headerTemplate: t.headerTemplate,
		rowTemplate:    t.rowTemplate,
		footerTemplate: t.footerTemplate,
	}
	for i, col := range t.columns {
		f.Header[i] = HeaderCell{Class: col.THClass, Content: col.Header}
	}

	switch {
	case props.IsLoading:
		numRows := props.SkeletonRows(t.skeletonRows)
		f.Rows = make([]BodyRow, 0, numRows)
		for i := 0; i < numRows; i++ {
			cells := make([]BodyCell, len(t.columns))
			for c, col := range t.columns {
				cells[c] = BodyCell{Class: col.TDClass, Content: SkeletonCell}
			}
			f.Rows = append(f.Rows, BodyRow{Kind: KindSkeleton, Index: i, Cells: cells})
		}
		t.renderPagination(f, &props)

	case !props.HasData():
		f.Rows = []BodyRow{{
			Kind:  KindError,
			Index: -1,
			Cells: []BodyCell{{
				Class:   "error",
				ColSpan: len(t.columns),
				Content: Text(t.errorMessage),
			}},
		}}

	default:
		f.Rows = make([]BodyRow, 0, len(props.Data))
		for rowIndex, row := range props.Data {
			if warning, show := rowWarning(any(row)); show {
				f.Rows = append(f.Rows, BodyRow{
					Kind:  KindWarning,
					Index: rowIndex,
					Cells: []BodyCell{{
						Class:   "warning",
						ColSpan: len(t.columns),
						Content: Text(warning),
					}},
				})
			}

			f.Rows = append(f.Rows, BodyRow{
				Kind:  KindData,
				Index: rowIndex,
				Cells: t.renderCells(row, rowIndex),
			})

			if t.compact || t.subComponent == nil {
				continue
			}
			if !rowExpanded(any(row)) && !props.IsExpanded(rowIndex) {
				continue
			}
			// Empty markup renders no row
			if sub := t.subComponent(row, rowIndex); sub != "" {
				f.Rows = append(f.Rows, BodyRow{
					Kind:  KindSubComponent,
					Index: rowIndex,
					Raw:   sub,
				})
			}
		}
		t.renderPagination(f, &props)
	}
	return f
}

func (t *Table[R]) renderCells(row R, rowIndex int) []BodyCell {
	cells := make([]BodyCell, len(t.columns))
	for c, col := range t.columns {
		cells[c].Class = col.TDClass
		if col.Cell != nil {
			cells[c].Content = col.Cell.RenderCell(row, rowIndex)
			continue
		}
		cells[c].Content = t.keyCell(row, col.Key)
	}
	return cells
}

// keyCell renders the value of key.
// Missing keys, nil values and formatting errors result in the nil value.
func (t *Table[R]) keyCell(row R, key string) template.HTML {
	v := t.naming.LookupKey(row, key)
	str, raw, err := formatKeyValue(v, t.typeFormatters)
	if err != nil || (str == "" && ValueIsNil(v)) {
		return t.nilValue
	}
	if raw {
		return template.HTML(str) //#nosec G203
	}
	return Text(str)
}

// renderPagination adds the pagination controls of props to f.
// The loading flag of props is passed on to the controls.
func (t *Table[R]) renderPagination(f *Fragment, props *Props[R]) {
	if props.Offset != nil {
		offset := *props.Offset
		offset.IsLoading = offset.IsLoading || props.IsLoading
		f.Offset = offset.Control()
	}
	if props.Cursor != nil {
		cursor := *props.Cursor
		cursor.IsLoading = cursor.IsLoading || props.IsLoading
		f.Cursor = cursor.Control()
	}
}

// WriteHTML renders the table for props and writes it as HTML to dest.
func (t *Table[R]) WriteHTML(ctx context.Context, dest io.Writer, props Props[R]) error {
	return t.Render(props).WriteHTML(ctx, dest)
}

func (t *Table[R]) clone() *Table[R] {
	c := new(Table[R])
	*c = *t
	return c
}

// WithColumns returns a new table rendering columns.
func (t *Table[R]) WithColumns(columns ...Column[R]) *Table[R] {
	mod := t.clone()
	mod.columns = columns
	return mod
}

// WithTableClass returns a new table with the CSS class of the table element.
func (t *Table[R]) WithTableClass(tableClass string) *Table[R] {
	mod := t.clone()
	mod.tableClass = tableClass
	return mod
}

// WithCompact returns a new table with the compact display mode set.
// Compact tables never render row sub-components.
func (t *Table[R]) WithCompact(compact bool) *Table[R] {
	mod := t.clone()
	mod.compact = compact
	return mod
}

// WithErrorMessage returns a new table rendering message
// as error row if no data is available.
func (t *Table[R]) WithErrorMessage(message string) *Table[R] {
	mod := t.clone()
	mod.errorMessage = message
	return mod
}

// WithSkeletonRows returns a new table rendering numRows skeleton rows
// while loading if the Props don't define a limit.
func (t *Table[R]) WithSkeletonRows(numRows int) *Table[R] {
	mod := t.clone()
	mod.skeletonRows = numRows
	return mod
}

// WithRowSubComponent returns a new table rendering the markup returned
// by subComponent after every expanded row.
// The markup is inserted verbatim and should consist of complete table rows,
// empty markup adds no row.
func (t *Table[R]) WithRowSubComponent(subComponent func(row R, rowIndex int) template.HTML) *Table[R] {
	mod := t.clone()
	mod.subComponent = subComponent
	return mod
}

// WithKeyNaming returns a new table using naming for key lookups.
func (t *Table[R]) WithKeyNaming(naming *KeyNaming) *Table[R] {
	mod := t.clone()
	mod.naming = naming
	return mod
}

// WithTypeFormatters returns a new table formatting key lookup values
// with formatters. Pass nil to format all values with fmt.Sprint.
func (t *Table[R]) WithTypeFormatters(formatters *TypeFormatters) *Table[R] {
	mod := t.clone()
	mod.typeFormatters = formatters
	return mod
}

// WithTypeFormatter returns a new table with a formatter
// for key lookup values of type typ.
func (t *Table[R]) WithTypeFormatter(typ reflect.Type, fmt ValueFormatter) *Table[R] {
	mod := t.clone()
	mod.typeFormatters = t.typeFormatters.WithTypeFormatter(typ, fmt)
	return mod
}

// WithKindFormatter returns a new table with a formatter
// for key lookup values of kind.
func (t *Table[R]) WithKindFormatter(kind reflect.Kind, fmt ValueFormatter) *Table[R] {
	mod := t.clone()
	mod.typeFormatters = t.typeFormatters.WithKindFormatter(kind, fmt)
	return mod
}

// WithNilValue returns a new table rendering nilValue
// for missing keys and nil values.
func (t *Table[R]) WithNilValue(nilValue template.HTML) *Table[R] {
	mod := t.clone()
	mod.nilValue = nilValue
	return mod
}

// WithTemplates returns a new table using custom templates.
// The header and row templates receive *Fragment and *BodyRow,
// the footer template FooterTemplateContext.
func (t *Table[R]) WithTemplates(headerTemplate, rowTemplate, footerTemplate *template.Template) *Table[R] {
	mod := t.clone()
	mod.headerTemplate = headerTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}

// TypeFormatters returns the formatters used for key lookup values.
func (t *Table[R]) TypeFormatters() *TypeFormatters {
	return t.typeFormatters
}

// KeyNaming returns the naming used for key lookups.
func (t *Table[R]) KeyNaming() *KeyNaming {
	return t.naming
}

// ErrorMessage returns the message rendered if no data is available.
func (t *Table[R]) ErrorMessage() string {
	return t.errorMessage
}

// IsCompact returns if the compact display mode is set.
func (t *Table[R]) IsCompact() bool {
	return t.compact
}
