// Package paging implements the pagination controls of a data table.
//
// Offset navigates by page number within a known total count,
// Cursor navigates sequentially by opaque continuation tokens
// returned from the backend. Both only dispatch user selections
// to the callbacks of the caller, they never fetch data themselves.
//
// The controls are rendered as HTML with github.com/google/safehtml/template
// so that all link targets are sanitized safehtml.URL values.
package paging

import (
	"errors"
	"net/url"

	"github.com/google/safehtml"
)

// Query parameter names used for pagination links
const (
	PageParam   = "page"
	CursorParam = "cursor"
)

var (
	// ErrLoading is returned for selections while the table is loading.
	ErrLoading = errors.New("pagination disabled while loading")
	// ErrPageOutOfRange is returned for page numbers outside [1..TotalPages].
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrNoCursor is returned if there is no cursor for the requested direction.
	ErrNoCursor = errors.New("no cursor")
)

// Link is a navigation element of a pagination control.
type Link struct {
	Label    string
	Page     int
	URL      safehtml.URL
	Current  bool
	Disabled bool
}

// SetQueryParam returns rawURL with the query parameter key set to value.
// Other query parameters are preserved.
func SetQueryParam(rawURL, key, value string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// RemoveQueryParam returns rawURL without the query parameter key.
func RemoveQueryParam(rawURL, key string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Del(key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func newLink(label string, rawURL string, err error) Link {
	if err != nil {
		return Link{Label: label, Disabled: true}
	}
	return Link{Label: label, URL: safehtml.URLSanitized(rawURL)}
}
