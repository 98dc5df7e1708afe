// Package preview renders NFT transaction fixtures
// as complete HTML pages and serves them over HTTP.
package preview

import (
	"bytes"
	"cmp"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-datatable/nfttxns"
)

// ErrInvalidCursor is returned for cursors not issued by a Source.
var ErrInvalidCursor = errors.New("invalid cursor")

// Source answers page and cursor requests from a fixed list of
// transactions the way the backend does.
type Source struct {
	txns []nfttxns.Transaction
}

// NewSource returns a Source for txns.
func NewSource(txns []nfttxns.Transaction) *Source {
	return &Source{txns: txns}
}

// LoadSource reads a backend transactions response from file.
func LoadSource(file fs.File) (*Source, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	txns, err := nfttxns.DecodeTxns(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("can't load %s: %w", file.Name(), err)
	}
	return NewSource(txns), nil
}

// Len returns the number of transactions in the source.
func (s *Source) Len() int {
	return len(s.txns)
}

// Count returns the number of transactions matching the filters of q.
func (s *Source) Count(q nfttxns.Query) int {
	return len(s.filtered(q))
}

// filtered returns the transactions matching the filters of q
// sorted by q.Order.
func (s *Source) filtered(q nfttxns.Query) []nfttxns.Transaction {
	var txns []nfttxns.Transaction
	for _, t := range s.txns {
		if q.Event != "" && !strings.EqualFold(t.Cause, q.Event) {
			continue
		}
		if q.Involved != "" && t.InvolvedAccountID != q.Involved && t.AffectedAccountID != q.Involved {
			continue
		}
		txns = append(txns, t)
	}
	slices.SortStableFunc(txns, func(a, b nfttxns.Transaction) int {
		if q.Order == nfttxns.OrderAsc {
			return cmp.Compare(a.BlockTimestamp, b.BlockTimestamp)
		}
		return cmp.Compare(b.BlockTimestamp, a.BlockTimestamp)
	})
	return txns
}

// Page returns the transactions of the page of q
// and the count of all transactions matching q.
// Pages beyond the last one return nil.
func (s *Source) Page(q nfttxns.Query) (txns []nfttxns.Transaction, count int) {
	all := s.filtered(q)
	start := (q.Page - 1) * q.PerPage
	if q.Page < 1 || q.PerPage <= 0 || start >= len(all) {
		return nil, len(all)
	}
	end := min(start+q.PerPage, len(all))
	return all[start:end], len(all)
}

// CursorPage returns the transactions following cursor
// with the cursors of the next and previous page.
// An empty cursor starts at the first transaction,
// an empty next cursor means there are no more transactions.
func (s *Source) CursorPage(q nfttxns.Query, cursor string) (txns []nfttxns.Transaction, next, prev string, err error) {
	start, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", "", err
	}
	all := s.filtered(q)
	if start > len(all) {
		return nil, "", "", fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	end := min(start+q.PerPage, len(all))
	if end < len(all) {
		next = encodeCursor(end)
	}
	if start > 0 {
		prev = encodeCursor(max(start-q.PerPage, 0))
	}
	return all[start:end], next, prev, nil
}

func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	offset, err := strconv.Atoi(string(b))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	return offset, nil
}
