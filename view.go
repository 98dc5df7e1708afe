package datatable

import (
	"slices"

	"github.com/domonda/go-datatable/paging"
)

// Props is the view-state a Table is rendered from.
// It is re-created by the caller for every data refresh,
// a Table holds no state of its own between renders.
type Props[R any] struct {
	// IsLoading renders skeleton rows instead of Data.
	IsLoading bool
	// Data are the rows of the current page.
	// nil means no data is available and renders the error row,
	// an empty non-nil slice renders no rows.
	Data []R
	// Limit is the number of skeleton rows rendered while loading.
	// If zero, then the Limit of Offset or Cursor is used.
	Limit int
	// Expanded holds the indexes of rows within Data
	// that have their sub-component expanded.
	Expanded []int

	// Offset enables page number pagination.
	Offset *paging.Offset
	// Cursor enables cursor pagination.
	// Setting both Offset and Cursor renders both controls.
	Cursor *paging.Cursor
}

// HasData returns if Data is defined.
func (p *Props[R]) HasData() bool {
	return p.Data != nil
}

// SkeletonRows returns the number of placeholder rows rendered while loading.
func (p *Props[R]) SkeletonRows(fallback int) int {
	switch {
	case p.Limit > 0:
		return p.Limit
	case p.Offset != nil && p.Offset.Limit > 0:
		return p.Offset.Limit
	case p.Cursor != nil && p.Cursor.Limit > 0:
		return p.Cursor.Limit
	}
	return fallback
}

// IsExpanded returns if the row at rowIndex is listed in Expanded.
func (p *Props[R]) IsExpanded(rowIndex int) bool {
	return slices.Contains(p.Expanded, rowIndex)
}
