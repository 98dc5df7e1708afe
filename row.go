package datatable

import "fmt"

// WarningRow can be implemented by row types
// to render a warning band before the row.
type WarningRow interface {
	// RowWarning returns the warning text and if
	// the warning band should be shown.
	RowWarning() (warning string, show bool)
}

// ExpandableRow can be implemented by row types
// to request the row sub-component to be rendered
// after the row.
type ExpandableRow interface {
	RowExpanded() bool
}

// Keys of the control flags of Row
const (
	RowKeyShowWarning = "showWarning"
	RowKeyWarning     = "warning"
	RowKeyIsExpanded  = "isExpanded"
)

var (
	_ WarningRow    = Row(nil)
	_ ExpandableRow = Row(nil)
)

// Row is a generic row mapping field names to values.
// The boolean values of the keys RowKeyShowWarning and RowKeyIsExpanded
// control the warning band and the sub-component expansion.
type Row map[string]any

func (r Row) RowWarning() (warning string, show bool) {
	show, _ = r[RowKeyShowWarning].(bool)
	switch w := r[RowKeyWarning].(type) {
	case nil:
	case string:
		warning = w
	default:
		warning = fmt.Sprint(w)
	}
	return warning, show
}

func (r Row) RowExpanded() bool {
	expanded, _ := r[RowKeyIsExpanded].(bool)
	return expanded
}

func rowWarning(row any) (string, bool) {
	if w, ok := row.(WarningRow); ok {
		return w.RowWarning()
	}
	return "", false
}

func rowExpanded(row any) bool {
	if e, ok := row.(ExpandableRow); ok {
		return e.RowExpanded()
	}
	return false
}
