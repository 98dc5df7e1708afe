package preview

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	datatable "github.com/domonda/go-datatable"
	"github.com/domonda/go-datatable/csvexport"
	"github.com/domonda/go-datatable/format"
	"github.com/domonda/go-datatable/nfttxns"
	"github.com/domonda/go-datatable/paging"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="summary">{{.Summary}}</p>
{{- if .Filters}}
<p class="filters">Filtered By: {{range .Filters}}<span class="filter">{{.Name}}: <b>{{.Value}}</b></span> {{end}}<a href="{{.ClearURL}}">Clear</a></p>
{{- end}}
{{- if .ExportURL}}
<p><a class="export" href="{{.ExportURL}}">CSV Export</a></p>
{{- end}}
{{- if .RequestURL}}
<p class="request"><code>{{.RequestURL}}</code></p>
{{- end}}
{{.Table}}
</body>
</html>
`))

// Page is the data of the page template.
type Page struct {
	Title      string
	Summary    string
	Filters    []nfttxns.FilterLabel
	ClearURL   string
	ExportURL  string
	RequestURL string
	Table      template.HTML
}

// Renderer renders the NFT transactions of a Source.
type Renderer struct {
	Formats *format.Formats
	// Limit is the number of transactions per page.
	Limit        int
	PageLimit    int
	Compact      bool
	ErrorMessage string
	// BackendURL is used to display the backend request of a page.
	BackendURL string
	Charset    string
	Delimiter  rune
}

// Table returns the table for q.
func (r *Renderer) Table(q nfttxns.Query) *datatable.Table[nfttxns.Transaction] {
	table := nfttxns.NewTable(r.Formats, q).
		WithCompact(r.Compact).
		WithRowSubComponent(detailsRow)
	if r.ErrorMessage != "" {
		table = table.WithErrorMessage(r.ErrorMessage)
	}
	return table
}

func detailsRow(t nfttxns.Transaction, _ int) template.HTML {
	var b strings.Builder
	b.WriteString("<tr class='txn-details'><td colspan='9'><dl>")
	for _, field := range [][2]string{
		{"Transaction", t.TransactionHash},
		{"Affected", t.AffectedAccountID},
		{"Involved", t.InvolvedAccountID},
		{"Delta", string(t.DeltaAmount)},
		{"Status", t.StatusText()},
	} {
		fmt.Fprintf(&b, "<dt>%s</dt><dd>%s</dd>", field[0], template.HTMLEscapeString(field[1]))
	}
	b.WriteString("</dl></td></tr>")
	return datatable.Raw(b.String())
}

// WritePage writes the page of q with offset pagination to w.
// The rows at the expanded indexes show their details.
func (r *Renderer) WritePage(ctx context.Context, w io.Writer, src *Source, q nfttxns.Query, expanded []int) error {
	txns, count := src.Page(q)
	props := nfttxns.Props(txns, count, q, false)
	props.Offset.PageLimit = r.PageLimit
	props.Expanded = expanded

	requestURL, err := q.TxnsURL(r.BackendURL)
	if err != nil {
		return err
	}
	return r.writePage(ctx, w, q, count, props, requestURL, "nft-txns.csv"+q.Link())
}

// WriteCursorPage writes the page following cursor
// with cursor pagination to w.
// The links of the paginator are relative to linkURL.
func (r *Renderer) WriteCursorPage(ctx context.Context, w io.Writer, src *Source, q nfttxns.Query, cursor, linkURL string) error {
	txns, next, prev, err := src.CursorPage(q, cursor)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		txns = nil
	}
	apiURL, err := q.TxnsURL(r.BackendURL)
	if err != nil {
		return err
	}
	count := src.Count(q)
	props := datatable.Props[nfttxns.Transaction]{
		Data: txns,
		Cursor: &paging.Cursor{
			APIURL:     apiURL,
			BaseURL:    linkURL,
			Count:      count,
			Limit:      q.PerPage,
			Cursor:     next,
			PrevCursor: prev,
		},
	}
	requestURL := apiURL
	if cursor != "" {
		requestURL, err = paging.SetQueryParam(apiURL, paging.CursorParam, cursor)
		if err != nil {
			return err
		}
	}
	return r.writePage(ctx, w, q, count, props, requestURL, "")
}

func (r *Renderer) writePage(ctx context.Context, w io.Writer, q nfttxns.Query, count int, props datatable.Props[nfttxns.Transaction], requestURL, exportURL string) error {
	var table bytes.Buffer
	err := r.Table(q).WriteHTML(ctx, &table, props)
	if err != nil {
		return err
	}
	clearQuery, _ := q.ClearFilter("")
	return pageTemplate.Execute(w, &Page{
		Title:      "NFT Transactions of " + q.AccountID,
		Summary:    nfttxns.Summary(r.Formats, count),
		Filters:    q.Labels(),
		ClearURL:   clearQuery.Link(),
		ExportURL:  exportURL,
		RequestURL: requestURL,
		Table:      template.HTML(table.String()), //#nosec G203
	})
}

// WriteCSV writes all transactions matching q as CSV to w.
func (r *Renderer) WriteCSV(ctx context.Context, w io.Writer, src *Source, q nfttxns.Query) error {
	writer, err := r.csvWriter(q)
	if err != nil {
		return err
	}
	return writer.WriteTable(ctx, w, r.Table(q), src.filtered(q))
}

func (r *Renderer) csvWriter(q nfttxns.Query) (*csvexport.Writer[nfttxns.Transaction], error) {
	writer := csvexport.ForTable(r.Table(q))
	if r.Delimiter != 0 {
		writer = writer.WithDelimiter(r.Delimiter)
	}
	if r.Charset != "" && !strings.EqualFold(r.Charset, "UTF-8") {
		encoder, err := csvexport.CharsetEncoder(r.Charset)
		if err != nil {
			return nil, err
		}
		writer = writer.WithEncoder(encoder)
	}
	return writer, nil
}

func (r *Renderer) perPage() int {
	if r.Limit > 0 {
		return r.Limit
	}
	return nfttxns.PerPage
}

// Query returns the initial query for account
// with the configured number of transactions per page.
func (r *Renderer) Query(account string) nfttxns.Query {
	q := nfttxns.NewQuery(account)
	q.PerPage = r.perPage()
	return q
}
