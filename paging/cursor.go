package paging

import (
	"github.com/google/safehtml"
)

// Cursor is the state of a pagination by opaque continuation tokens.
// Cursors are not addressable by position, so only sequential
// navigation is possible.
type Cursor struct {
	// APIURL is the request URL the cursor query parameter is added to.
	APIURL string
	// BaseURL is the target of rendered links.
	// If empty, then APIURL is used.
	BaseURL string
	// Count is an advisory total, cursor based sources
	// don't guarantee a stable count.
	Count int
	// Limit is the number of items per page.
	Limit int
	// Cursor is the continuation token for the next page.
	// Empty means there is no next page.
	Cursor string
	// PrevCursor is the optional token for the previous page.
	PrevCursor string
	// IsLoading disables all navigation.
	IsLoading bool
	// SetURL is called with the next request URL.
	SetURL func(url string)
}

// NextURL returns APIURL with the cursor of the next page.
func (c *Cursor) NextURL() (string, error) {
	return cursorURL(c.APIURL, c.Cursor)
}

// PrevURL returns APIURL with the cursor of the previous page.
func (c *Cursor) PrevURL() (string, error) {
	return cursorURL(c.APIURL, c.PrevCursor)
}

// FirstURL returns APIURL without any cursor.
func (c *Cursor) FirstURL() (string, error) {
	return RemoveQueryParam(c.APIURL, CursorParam)
}

// Next dispatches NextURL to SetURL.
func (c *Cursor) Next() error {
	return c.dispatch(c.NextURL)
}

// Prev dispatches PrevURL to SetURL.
func (c *Cursor) Prev() error {
	return c.dispatch(c.PrevURL)
}

// First dispatches FirstURL to SetURL.
func (c *Cursor) First() error {
	return c.dispatch(c.FirstURL)
}

func (c *Cursor) dispatch(getURL func() (string, error)) error {
	if c.IsLoading {
		return ErrLoading
	}
	u, err := getURL()
	if err != nil {
		return err
	}
	if c.SetURL != nil {
		c.SetURL(u)
	}
	return nil
}

func (c *Cursor) linkBase() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return c.APIURL
}

func cursorURL(rawURL, cursor string) (string, error) {
	if cursor == "" {
		return "", ErrNoCursor
	}
	return SetQueryParam(rawURL, CursorParam, cursor)
}

// CursorControl is the render model of a Cursor pagination.
type CursorControl struct {
	Count   int
	Loading bool
	First   Link
	Prev    Link
	Next    Link
}

// Control returns the render model of c.
func (c *Cursor) Control() *CursorControl {
	ctrl := &CursorControl{Count: c.Count, Loading: c.IsLoading}
	link := func(label, cursor string) Link {
		if c.IsLoading {
			return Link{Label: label, Disabled: true}
		}
		if cursor == "" {
			rawURL, err := RemoveQueryParam(c.linkBase(), CursorParam)
			return newLink(label, rawURL, err)
		}
		rawURL, err := cursorURL(c.linkBase(), cursor)
		return newLink(label, rawURL, err)
	}
	ctrl.First = link("First", "")
	ctrl.Prev = link("Prev", c.PrevCursor)
	if c.PrevCursor == "" {
		ctrl.Prev.Disabled = true
	}
	ctrl.Next = link("Next", c.Cursor)
	if c.Cursor == "" {
		ctrl.Next.Disabled = true
	}
	return ctrl
}

// HTML renders the control.
func (c *CursorControl) HTML() (safehtml.HTML, error) {
	return cursorTemplate.ExecuteToHTML(c)
}
