package nfttxns

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/domonda/go-datatable/format"
)

// PerPage is the number of transactions per page
// requested from the backend.
const PerPage = 25

// Order of the transactions by block timestamp.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Toggled returns the opposite order.
func (o Order) Toggled() Order {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

// Valid returns if o is OrderAsc or OrderDesc.
func (o Order) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// Names of the supported filters
const (
	FilterEvent    = "event"
	FilterInvolved = "involved"
)

// ErrUnknownFilter is returned for filter names
// other than FilterEvent and FilterInvolved.
var ErrUnknownFilter = errors.New("unknown filter")

// Filters narrow down the listed transactions.
type Filters struct {
	// Event filters by the transaction method.
	Event string `url:"event,omitempty"`
	// Involved filters by the involved account.
	Involved string `url:"involved,omitempty"`
}

// IsEmpty returns true if no filter is set.
func (f Filters) IsEmpty() bool {
	return f.Event == "" && f.Involved == ""
}

// FilterLabel is a set filter for display.
type FilterLabel struct {
	Name  string
	Value string
}

// Labels returns the set filters with capitalized names.
func (f Filters) Labels() []FilterLabel {
	var labels []FilterLabel
	if f.Event != "" {
		labels = append(labels, FilterLabel{Name: format.CapitalizeFirstLetter(FilterEvent), Value: f.Event})
	}
	if f.Involved != "" {
		labels = append(labels, FilterLabel{Name: format.CapitalizeFirstLetter(FilterInvolved), Value: f.Involved})
	}
	return labels
}

// Query is the view state of the NFT transactions of an account.
//
// Query is a value type, all modifying methods return a modified copy.
// Changing filters or the order resets the page to 1.
type Query struct {
	AccountID string `url:"-"`
	Filters
	Order   Order `url:"order"`
	Page    int   `url:"page"`
	PerPage int   `url:"per_page"`
	// ShowAge shows the age of transactions instead of the timestamp.
	ShowAge bool `url:"-"`
}

// NewQuery returns the initial Query for an account:
// no filters, descending order, first page, showing the age.
func NewQuery(accountID string) Query {
	return Query{
		AccountID: accountID,
		Order:     OrderDesc,
		Page:      1,
		PerPage:   PerPage,
		ShowAge:   true,
	}
}

// WithFilter returns a copy with the filter name set to value.
func (q Query) WithFilter(name, value string) (Query, error) {
	switch name {
	case FilterEvent:
		q.Event = value
	case FilterInvolved:
		q.Involved = value
	default:
		return q, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	q.Page = 1
	return q, nil
}

// ClearFilter returns a copy without the filter name.
// An empty name clears all filters.
func (q Query) ClearFilter(name string) (Query, error) {
	if name == "" {
		q.Filters = Filters{}
		q.Page = 1
		return q, nil
	}
	return q.WithFilter(name, "")
}

// ToggleOrder returns a copy with the opposite order.
func (q Query) ToggleOrder() Query {
	q.Order = q.Order.Toggled()
	q.Page = 1
	return q
}

// ToggleShowAge returns a copy switching between
// age and timestamp display.
func (q Query) ToggleShowAge() Query {
	q.ShowAge = !q.ShowAge
	return q
}

// WithPage returns a copy for page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// TxnsURL returns the backend URL of the current page of transactions.
func (q Query) TxnsURL(backendURL string) (string, error) {
	values, err := query.Values(q)
	if err != nil {
		return "", err
	}
	return q.accountURL(backendURL) + "/nft-txns?" + values.Encode(), nil
}

// CountURL returns the backend URL of the number of transactions
// matching the filters.
func (q Query) CountURL(backendURL string) (string, error) {
	values, err := query.Values(q.Filters)
	if err != nil {
		return "", err
	}
	u := q.accountURL(backendURL) + "/nft-txns/count"
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u, nil
}

func (q Query) accountURL(backendURL string) string {
	if backendURL != "" && !strings.HasSuffix(backendURL, "/") {
		backendURL += "/"
	}
	return backendURL + "account/" + url.PathEscape(q.AccountID)
}

// linkParams are the query parameters of page links.
type linkParams struct {
	Filters
	Order    Order `url:"order,omitempty"`
	Page     int   `url:"page,omitempty"`
	Datetime bool  `url:"datetime,omitempty"`
}

// Link returns the relative URL of the page showing q,
// starting with "?". See ParseQuery.
func (q Query) Link() string {
	values, err := query.Values(linkParams{
		Filters:  q.Filters,
		Order:    q.Order,
		Page:     q.Page,
		Datetime: !q.ShowAge,
	})
	if err != nil {
		return "?"
	}
	return "?" + values.Encode()
}

// ParseQuery parses the query parameters of a link returned
// by Query.Link for the transactions of accountID.
// Missing parameters keep the values of NewQuery.
func ParseQuery(accountID string, values url.Values) (Query, error) {
	q := NewQuery(accountID)
	q.Event = values.Get(FilterEvent)
	q.Involved = values.Get(FilterInvolved)
	if o := values.Get("order"); o != "" {
		q.Order = Order(o)
		if !q.Order.Valid() {
			return q, fmt.Errorf("invalid order %q", o)
		}
	}
	if p := values.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil || page < 1 {
			return q, fmt.Errorf("invalid page %q", p)
		}
		q.Page = page
	}
	if d := values.Get("datetime"); d != "" {
		datetime, err := strconv.ParseBool(d)
		if err != nil {
			return q, fmt.Errorf("invalid datetime %q: %w", d, err)
		}
		q.ShowAge = !datetime
	}
	return q, nil
}
