package nfttxns

import (
	"fmt"
	"html/template"
	"net/url"

	datatable "github.com/domonda/go-datatable"
	"github.com/domonda/go-datatable/format"
	"github.com/domonda/go-datatable/paging"
)

// ErrorMessage is rendered if there are no transactions.
const ErrorMessage = "No transactions found!"

// DefaultPageLimit is the number of page links of the paginator.
const DefaultPageLimit = 7

// AccountTruncateLength is the number of runes of account IDs
// displayed before they are truncated.
const AccountTruncateLength = 15

const (
	tdClass     = "txn-cell"
	thClass     = "txn-header"
	systemLabel = "system"
)

// Columns returns the columns of the NFT transactions table.
// The header controls of the method, involved and age columns
// link to the modified q.
func Columns(formats *format.Formats, q Query) []datatable.Column[Transaction] {
	return []datatable.Column[Transaction]{
		{
			Header:  "",
			Title:   "Status",
			Cell:    datatable.CellFunc[Transaction](statusCell),
			TDClass: "txn-status-cell",
			Text:    func(t Transaction) string { return t.StatusText() },
		},
		{
			Header:  datatable.Text("TXN HASH"),
			Title:   "Txn Hash",
			Key:     "transaction_hash",
			Cell:    datatable.CellFunc[Transaction](hashCell),
			TDClass: tdClass,
			THClass: thClass,
		},
		{
			Header:  filterHeader("METHOD", FilterEvent, q),
			Title:   "Method",
			Key:     "cause",
			Cell:    datatable.CellFunc[Transaction](methodCell),
			TDClass: tdClass,
		},
		{
			Header:  datatable.Text("Affected"),
			Title:   "Affected",
			Key:     "affected_account_id",
			Cell:    datatable.CellFunc[Transaction](func(t Transaction, _ int) template.HTML { return accountLink(t.AffectedAccountID) }),
			TDClass: tdClass,
			THClass: thClass,
			Text:    func(t Transaction) string { return orSystem(t.AffectedAccountID) },
		},
		{
			Header:  "",
			Title:   "Direction",
			Cell:    datatable.CellFunc[Transaction](directionCell),
			TDClass: "text-center",
			Text:    func(t Transaction) string { return string(t.Direction()) },
		},
		{
			Header:  filterHeader("Involved", FilterInvolved, q),
			Title:   "Involved",
			Key:     "involved_account_id",
			Cell:    datatable.CellFunc[Transaction](func(t Transaction, _ int) template.HTML { return accountLink(t.InvolvedAccountID) }),
			TDClass: tdClass,
			Text:    func(t Transaction) string { return orSystem(t.InvolvedAccountID) },
		},
		{
			Header:  datatable.Text("Token ID"),
			Title:   "Token ID",
			Key:     "token_id",
			Cell:    datatable.CellFunc[Transaction](tokenIDCell),
			TDClass: tdClass + " truncate",
			THClass: thClass,
		},
		{
			Header:  datatable.Text("Token"),
			Title:   "Token",
			Cell:    datatable.CellFunc[Transaction](tokenCell),
			TDClass: tdClass,
			THClass: thClass,
			Text:    tokenText,
		},
		{
			Header:  ageHeader(q),
			Title:   "Date Time (UTC)",
			Key:     "block_timestamp",
			Cell:    ageCell(formats, q.ShowAge),
			TDClass: tdClass,
			THClass: "whitespace-nowrap",
			Text: func(t Transaction) string {
				if t.BlockTimestamp.IsZero() {
					return ""
				}
				return formats.FormatTimestamp(t.BlockTimestamp.Time())
			},
		},
	}
}

// NewTable returns the NFT transactions table for q.
func NewTable(formats *format.Formats, q Query) *datatable.Table[Transaction] {
	return datatable.NewTable(Columns(formats, q)...).
		WithTableClass("nft-txns").
		WithErrorMessage(ErrorMessage)
}

// Props returns the table props for a page of transactions
// and the total count of transactions matching q.
func Props(txns []Transaction, count int, q Query, isLoading bool) datatable.Props[Transaction] {
	return datatable.Props[Transaction]{
		IsLoading: isLoading,
		Data:      txns,
		Offset: &paging.Offset{
			Count:     count,
			Page:      q.Page,
			Limit:     q.PerPage,
			PageLimit: DefaultPageLimit,
			BaseURL:   q.Link(),
		},
	}
}

// Summary returns the total count text displayed above the table.
func Summary(formats *format.Formats, count int) string {
	return "A total of " + formats.LocalFormatInt(count) + " transactions found"
}

func statusCell(t Transaction, _ int) template.HTML {
	status := t.StatusText()
	return datatable.Raw(fmt.Sprintf(
		"<span class='txn-status %s' title='%s'></span>",
		status,
		format.CapitalizeFirstLetter(status),
	))
}

func hashCell(t Transaction, _ int) template.HTML {
	hash := template.HTMLEscapeString(t.TransactionHash)
	return datatable.Raw(fmt.Sprintf(
		"<span class='truncate' title='%s'><a href='/txns/%s'>%s</a></span>",
		hash,
		template.HTMLEscapeString(url.PathEscape(t.TransactionHash)),
		hash,
	))
}

func methodCell(t Transaction, _ int) template.HTML {
	cause := template.HTMLEscapeString(t.Cause)
	return datatable.Raw(fmt.Sprintf("<span class='method' title='%s'>%s</span>", cause, cause))
}

func accountLink(accountID string) template.HTML {
	if accountID == "" {
		return datatable.Text(systemLabel)
	}
	return datatable.Raw(fmt.Sprintf(
		"<a href='/address/%s' title='%s'>%s</a>",
		template.HTMLEscapeString(url.PathEscape(accountID)),
		template.HTMLEscapeString(accountID),
		template.HTMLEscapeString(format.Truncate(accountID, AccountTruncateLength, "...")),
	))
}

func orSystem(accountID string) string {
	if accountID == "" {
		return systemLabel
	}
	return accountID
}

func directionCell(t Transaction, _ int) template.HTML {
	dir := t.Direction()
	return datatable.Raw(fmt.Sprintf("<span class='direction %s'>%s</span>", dir, dir))
}

func tokenIDCell(t Transaction, _ int) template.HTML {
	contract := ""
	if t.NFT != nil {
		contract = t.NFT.Contract
	}
	return datatable.Raw(fmt.Sprintf(
		"<a href='/nft-token/%s/%s' title='%s'>%s</a>",
		template.HTMLEscapeString(url.PathEscape(contract)),
		template.HTMLEscapeString(url.PathEscape(t.TokenID)),
		template.HTMLEscapeString(t.TokenID),
		template.HTMLEscapeString(t.TokenID),
	))
}

func tokenCell(t Transaction, _ int) template.HTML {
	if t.NFT == nil {
		return ""
	}
	name := template.HTMLEscapeString(t.NFT.Name)
	html := fmt.Sprintf(
		"<a href='/nft-token/%s' title='%s'>%s</a>",
		template.HTMLEscapeString(url.PathEscape(t.NFT.Contract)),
		name,
		name,
	)
	if t.NFT.Symbol != "" {
		html += fmt.Sprintf(" <span class='symbol'>%s</span>", template.HTMLEscapeString(t.NFT.Symbol))
	}
	return datatable.Raw(html)
}

func tokenText(t Transaction) string {
	switch {
	case t.NFT == nil:
		return ""
	case t.NFT.Symbol == "":
		return t.NFT.Name
	}
	return t.NFT.Name + " (" + t.NFT.Symbol + ")"
}

func ageCell(formats *format.Formats, showAge bool) datatable.CellRenderer[Transaction] {
	return datatable.CellFunc[Transaction](func(t Transaction, _ int) template.HTML {
		if t.BlockTimestamp.IsZero() {
			return ""
		}
		var (
			ts        = t.BlockTimestamp.Time()
			age       = formats.TimeAgo(ts)
			timestamp = formats.FormatTimestamp(ts)
		)
		if showAge {
			return datatable.Raw("<span title='" + template.HTMLEscapeString(timestamp) + "'>" + template.HTMLEscapeString(age) + "</span>")
		}
		return datatable.Raw("<span title='" + template.HTMLEscapeString(age) + "'>" + template.HTMLEscapeString(timestamp) + "</span>")
	})
}

// filterHeader renders the header label with a filter form
// submitting the filter name as query parameter.
func filterHeader(label, name string, q Query) template.HTML {
	value := q.Event
	if name == FilterInvolved {
		value = q.Involved
	}
	clearQuery, _ := q.ClearFilter(name)
	return datatable.Raw(fmt.Sprintf(
		"<form class='filter' method='get'>%s"+
			"<input name='%s' value='%s' placeholder='Search by %s'>"+
			"<input type='hidden' name='order' value='%s'>"+
			"<button type='submit'>Filter</button>"+
			"<a class='clear' href='%s'>Clear</a></form>",
		template.HTMLEscapeString(label),
		name,
		template.HTMLEscapeString(value),
		name,
		template.HTMLEscapeString(string(q.Order)),
		template.HTMLEscapeString(clearQuery.Link()),
	))
}

// ageHeader renders the toggle between age and timestamp display
// and the order toggle.
func ageHeader(q Query) template.HTML {
	label, title := "AGE", "Click to show Datetime Format"
	if !q.ShowAge {
		label, title = "DATE TIME (UTC)", "Click to show Age Format"
	}
	return datatable.Raw(fmt.Sprintf(
		"<a class='toggle-age' href='%s' title='%s'>%s</a> <a class='sort %s' href='%s' title='Toggle order'></a>",
		template.HTMLEscapeString(q.ToggleShowAge().Link()),
		title,
		label,
		template.HTMLEscapeString(string(q.Order)),
		template.HTMLEscapeString(q.ToggleOrder().Link()),
	))
}
