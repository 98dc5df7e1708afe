package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"
	"go.uber.org/goleak"

	"github.com/domonda/go-datatable/format"
	"github.com/domonda/go-datatable/nfttxns"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testTxns returns n transactions with ascending timestamps,
// every third one is a MINT involving bob.near.
func testTxns(n int) []nfttxns.Transaction {
	txns := make([]nfttxns.Transaction, n)
	for i := range txns {
		txns[i] = nfttxns.Transaction{
			TransactionHash:   fmt.Sprintf("hash%02d", i),
			Cause:             "TRANSFER",
			AffectedAccountID: "alice.near",
			InvolvedAccountID: "carol.near",
			DeltaAmount:       "-1",
			TokenID:           fmt.Sprint(i),
			BlockTimestamp:    nfttxns.Timestamp(int64(1709290800+i*60) * int64(time.Second)),
		}
		if i%3 == 0 {
			txns[i].Cause = "MINT"
			txns[i].InvolvedAccountID = "bob.near"
		}
	}
	return txns
}

func testRenderer() *Renderer {
	return &Renderer{
		Formats:   &format.Formats{Now: func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }},
		Limit:     5,
		PageLimit: 3,
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func hashes(txns []nfttxns.Transaction) []string {
	strs := make([]string, len(txns))
	for i := range txns {
		strs[i] = txns[i].TransactionHash
	}
	return strs
}

func TestSource_Page(t *testing.T) {
	src := NewSource(testTxns(12))
	q := testRenderer().Query("alice.near")

	txns, count := src.Page(q)
	require.Equal(t, 12, count)
	require.Equal(t, []string{"hash11", "hash10", "hash09", "hash08", "hash07"}, hashes(txns))

	txns, _ = src.Page(q.WithPage(3))
	require.Equal(t, []string{"hash01", "hash00"}, hashes(txns))

	txns, count = src.Page(q.WithPage(4))
	require.Nil(t, txns)
	require.Equal(t, 12, count)

	q, err := q.WithFilter(nfttxns.FilterEvent, "mint")
	require.NoError(t, err)
	txns, count = src.Page(q.ToggleOrder())
	require.Equal(t, 4, count)
	require.Equal(t, []string{"hash00", "hash03", "hash06", "hash09"}, hashes(txns))

	q, err = q.ClearFilter("")
	require.NoError(t, err)
	q, err = q.WithFilter(nfttxns.FilterInvolved, "nobody.near")
	require.NoError(t, err)
	txns, count = src.Page(q)
	require.Nil(t, txns)
	require.Zero(t, count)
}

func TestSource_CursorPage(t *testing.T) {
	src := NewSource(testTxns(12))
	q := testRenderer().Query("alice.near")

	txns, next, prev, err := src.CursorPage(q, "")
	require.NoError(t, err)
	require.Len(t, txns, 5)
	require.NotEmpty(t, next)
	require.Empty(t, prev)

	txns, next, prev, err = src.CursorPage(q, next)
	require.NoError(t, err)
	require.Equal(t, "hash06", txns[0].TransactionHash)
	require.NotEmpty(t, prev)

	txns, next, _, err = src.CursorPage(q, next)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	require.Empty(t, next, "last page")

	first, _, _, err := src.CursorPage(q, prev)
	require.NoError(t, err)
	require.Equal(t, "hash11", first[0].TransactionHash)

	for _, invalid := range []string{"!!!", encodeCursor(100), "LTE"} {
		_, _, _, err = src.CursorPage(q, invalid)
		require.ErrorIs(t, err, ErrInvalidCursor, invalid)
	}
}

func TestLoadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "txns.json")
	err := os.WriteFile(path, []byte(`{"txns": [{"transaction_hash": "abc", "block_timestamp": "1"}]}`), 0o600)
	require.NoError(t, err)

	src, err := LoadSource(fs.File(path))
	require.NoError(t, err)
	require.Equal(t, 1, src.Len())

	_, err = LoadSource(fs.File(filepath.Join(t.TempDir(), "missing.json")))
	require.Error(t, err)
}

func TestRenderer_WritePage(t *testing.T) {
	r := testRenderer()
	r.BackendURL = "https://api.example.com/v1/"
	src := NewSource(testTxns(12))

	var b bytes.Buffer
	err := r.WritePage(context.Background(), &b, src, r.Query("alice.near"), []int{1})
	require.NoError(t, err)
	html := b.String()
	require.Contains(t, html, "A total of 12 transactions found")
	require.Contains(t, html, "https://api.example.com/v1/account/alice.near/nft-txns?order=desc&amp;page=1&amp;per_page=5")
	require.Contains(t, html, "<dt>Transaction</dt><dd>hash10</dd>", "expanded row 1")
	require.NotContains(t, html, "<dd>hash11</dd>")
	require.Contains(t, html, `Page 1 of 3`)

	b.Reset()
	err = r.WritePage(context.Background(), &b, NewSource(nil), r.Query("alice.near"), nil)
	require.NoError(t, err)
	require.Contains(t, b.String(), nfttxns.ErrorMessage)
}

func TestRenderer_WriteCSV(t *testing.T) {
	r := testRenderer()
	r.Delimiter = ','
	q, err := r.Query("alice.near").WithFilter(nfttxns.FilterEvent, "MINT")
	require.NoError(t, err)

	var b bytes.Buffer
	err = r.WriteCSV(context.Background(), &b, NewSource(testTxns(4)), q)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(b.String(), "\r\n"), "\r\n")
	require.Equal(t, "Status,Txn Hash,Method,Affected,Direction,Involved,Token ID,Token,Date Time (UTC)", lines[0])
	require.Equal(t, "pending,hash03,MINT,alice.near,OUT,bob.near,3,,2024-03-01 11:03:00", lines[1])
	require.Len(t, lines, 3)

	r.Charset = "no-such-charset"
	require.Error(t, r.WriteCSV(context.Background(), &b, NewSource(nil), q))
}

func TestServer_Handler(t *testing.T) {
	s := NewServer(testRenderer(), NewSource(testTxns(12)), "alice.near", testLogger())
	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	rec := get("/")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/account/alice.near/nft-txns", rec.Header().Get("Location"))

	rec = get("/account/alice.near/nft-txns?page=2&expand=0,2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Page 2 of 3")
	require.Contains(t, rec.Body.String(), `href="?order=desc&amp;page=3"`)

	rec = get("/account/alice.near/nft-txns?page=4")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "page out of range")

	rec = get("/account/alice.near/nft-txns?page=3")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Page 3 of 3")

	rec = get("/account/alice.near/nft-txns?involved=nobody.near")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No transactions found!")

	rec = get("/account/alice.near/nft-txns/cursor")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `class="paginator cursor"`)
	require.Contains(t, rec.Body.String(), "About 12 results")

	rec = get("/account/alice.near/nft-txns.csv?event=MINT")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.Equal(t, 5, strings.Count(rec.Body.String(), "\r\n"))

	rec = get("/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status": "healthy", "transactions": 12}`, rec.Body.String())

	for _, target := range []string{
		"/account/alice.near/nft-txns?page=zero",
		"/account/alice.near/nft-txns?expand=x",
		"/account/alice.near/nft-txns/cursor?cursor=!!!",
	} {
		require.Equal(t, http.StatusBadRequest, get(target).Code, target)
	}
}

func TestServer_Serve(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(testRenderer(), NewSource(testTxns(3)), "alice.near", testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, listener)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-done)
}
