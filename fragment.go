package datatable

import (
	"context"
	"html/template"
	"io"
	"strings"

	"github.com/domonda/go-datatable/paging"
)

// RowKind tells what a rendered body row represents.
type RowKind int

const (
	KindData RowKind = iota
	KindSkeleton
	KindWarning
	KindError
	KindSubComponent
)

func (k RowKind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindSkeleton:
		return "skeleton"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	case KindSubComponent:
		return "sub-component"
	}
	return "unknown"
}

// HeaderCell is a rendered header cell.
type HeaderCell struct {
	Class   string
	Content template.HTML
}

// BodyCell is a rendered body cell.
// A ColSpan of zero means no colspan attribute.
type BodyCell struct {
	Class   string
	ColSpan int
	Content template.HTML
}

// BodyRow is a rendered body row.
type BodyRow struct {
	Kind RowKind
	// Index is the index of the row within Props.Data
	// or of the skeleton row, -1 for the error row.
	Index int
	Cells []BodyCell
	// Raw is the verbatim markup of a KindSubComponent row.
	Raw template.HTML
}

// Fragment is the rendered tree of a Table.
// It is a plain value without references to the rendered Props,
// rendering the same Props twice yields equal fragments.
type Fragment struct {
	TableClass string
	Compact    bool
	Header     []HeaderCell
	Rows       []BodyRow
	Offset     *paging.OffsetControl
	Cursor     *paging.CursorControl

	rowTemplate    *template.Template
	headerTemplate *template.Template
	footerTemplate *template.Template
}

// NumRows returns the number of body rows of kind.
func (f *Fragment) NumRows(kind RowKind) int {
	n := 0
	for i := range f.Rows {
		if f.Rows[i].Kind == kind {
			n++
		}
	}
	return n
}

// RowKinds returns the kinds of all body rows in order.
func (f *Fragment) RowKinds() []RowKind {
	kinds := make([]RowKind, len(f.Rows))
	for i := range f.Rows {
		kinds[i] = f.Rows[i].Kind
	}
	return kinds
}

// PaginationHTML renders the pagination controls of the fragment.
func (f *Fragment) PaginationHTML() (template.HTML, error) {
	var b strings.Builder
	if f.Offset != nil {
		h, err := f.Offset.HTML()
		if err != nil {
			return "", err
		}
		b.WriteString(h.String())
	}
	if f.Cursor != nil {
		h, err := f.Cursor.HTML()
		if err != nil {
			return "", err
		}
		b.WriteString(h.String())
	}
	return template.HTML(b.String()), nil //#nosec G203
}

// WriteHTML writes the fragment as HTML to dest.
// The context is checked for cancellation before every row.
func (f *Fragment) WriteHTML(ctx context.Context, dest io.Writer) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	headerTemplate, rowTemplate, footerTemplate := f.headerTemplate, f.rowTemplate, f.footerTemplate
	if headerTemplate == nil {
		headerTemplate = HeaderTemplate
	}
	if rowTemplate == nil {
		rowTemplate = RowTemplate
	}
	if footerTemplate == nil {
		footerTemplate = FooterTemplate
	}

	err := headerTemplate.Execute(dest, f)
	if err != nil {
		return err
	}
	for i := range f.Rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = rowTemplate.Execute(dest, &f.Rows[i])
		if err != nil {
			return err
		}
	}
	pagination, err := f.PaginationHTML()
	if err != nil {
		return err
	}
	return footerTemplate.Execute(dest, FooterTemplateContext{Pagination: pagination})
}

// String renders the fragment as HTML.
// Rendering errors are returned as HTML comment.
func (f *Fragment) String() string {
	var b strings.Builder
	err := f.WriteHTML(context.Background(), &b)
	if err != nil {
		return "<!-- " + template.HTMLEscapeString(err.Error()) + " -->"
	}
	return b.String()
}
