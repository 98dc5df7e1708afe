package paging

import (
	"fmt"
	"strconv"

	"github.com/google/safehtml"
)

// Offset is the state of a page number pagination
// over Count items with Limit items per page.
type Offset struct {
	// Count is the total number of matching items.
	Count int
	// Page is the 1-based current page.
	Page int
	// Limit is the number of items per page.
	Limit int
	// PageLimit is the maximum number of page links displayed.
	// Zero or negative displays links for all pages.
	PageLimit int
	// IsLoading disables all selections.
	IsLoading bool
	// BaseURL is the link target the page query parameter is added to.
	BaseURL string
	// SetPage is called with the page selected by the user.
	SetPage func(page int)
}

// TotalPages returns ceil(count / limit)
// or zero if count or limit are not positive.
func TotalPages(count, limit int) int {
	if count <= 0 || limit <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}

// TotalPages returns the number of pages for o.Count and o.Limit.
func (o *Offset) TotalPages() int {
	return TotalPages(o.Count, o.Limit)
}

// CurrentPage returns o.Page clamped to [1..TotalPages]
// or zero if there are no pages.
func (o *Offset) CurrentPage() int {
	total := o.TotalPages()
	switch {
	case total == 0:
		return 0
	case o.Page < 1:
		return 1
	case o.Page > total:
		return total
	}
	return o.Page
}

// Window returns the page numbers of the displayed page links.
// The window holds at most PageLimit consecutive pages,
// contains the current page and is clamped to [1..TotalPages].
// No pages are returned if TotalPages is zero.
func (o *Offset) Window() []int {
	total := o.TotalPages()
	if total == 0 {
		return nil
	}
	size := o.PageLimit
	if size <= 0 || size > total {
		size = total
	}
	start := o.CurrentPage() - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > total {
		end = total
		start = end - size + 1
	}
	pages := make([]int, 0, size)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Select dispatches page to SetPage.
// Nothing is dispatched while loading or for pages outside [1..TotalPages].
func (o *Offset) Select(page int) error {
	if o.IsLoading {
		return ErrLoading
	}
	if total := o.TotalPages(); page < 1 || page > total {
		return fmt.Errorf("%w: %d not in [1..%d]", ErrPageOutOfRange, page, total)
	}
	if o.SetPage != nil {
		o.SetPage(page)
	}
	return nil
}

// PageURL returns BaseURL with the page query parameter set.
func (o *Offset) PageURL(page int) (string, error) {
	return SetQueryParam(o.BaseURL, PageParam, strconv.Itoa(page))
}

// OffsetControl is the render model of an Offset pagination.
type OffsetControl struct {
	Page       int
	TotalPages int
	Loading    bool
	First      Link
	Prev       Link
	Next       Link
	Last       Link
	Pages      []Link
}

// Control returns the render model of o.
// Only pages within [1..TotalPages] are linked
// and all links are disabled while loading.
func (o *Offset) Control() *OffsetControl {
	var (
		total   = o.TotalPages()
		current = o.CurrentPage()
		ctrl    = &OffsetControl{Page: current, TotalPages: total, Loading: o.IsLoading}
	)
	link := func(label string, page int, enabled bool) Link {
		if !enabled || o.IsLoading {
			return Link{Label: label, Page: page, Disabled: true}
		}
		rawURL, err := o.PageURL(page)
		l := newLink(label, rawURL, err)
		l.Page = page
		return l
	}
	ctrl.First = link("First", 1, current > 1)
	ctrl.Prev = link("Prev", current-1, current > 1)
	ctrl.Next = link("Next", current+1, current < total)
	ctrl.Last = link("Last", total, current < total)
	for _, page := range o.Window() {
		l := link(strconv.Itoa(page), page, page != current)
		if page == current {
			l.Current = true
			l.Disabled = false
		}
		ctrl.Pages = append(ctrl.Pages, l)
	}
	return ctrl
}

// HTML renders the control.
func (c *OffsetControl) HTML() (safehtml.HTML, error) {
	return offsetTemplate.ExecuteToHTML(c)
}
