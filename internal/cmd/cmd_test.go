package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = `{"txns": [
	{"transaction_hash": "abc", "cause": "MINT", "affected_account_id": "alice.near", "involved_account_id": "bob.near", "delta_amount": "1", "token_id": "1", "block_timestamp": "1709290800000000000"},
	{"transaction_hash": "def", "cause": "TRANSFER", "affected_account_id": "alice.near", "involved_account_id": "carol.near", "delta_amount": "-1", "token_id": "2", "block_timestamp": "1709294400000000000"}
]}`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "txns.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = NewApp(&out, &errOut).Execute(context.Background(), args)
	return out.String(), err
}

func TestRender(t *testing.T) {
	path := writeFixture(t)

	html, err := execute(t, "render", path, "--account", "alice.near", "--datetime")
	require.NoError(t, err)
	require.Contains(t, html, "<title>NFT Transactions of alice.near</title>")
	require.Contains(t, html, "A total of 2 transactions found")
	require.Contains(t, html, ">2024-03-01 12:00:00</span>")
	require.Contains(t, html, "Page 1 of 1")

	html, err = execute(t, "render", path, "--account", "alice.near", "--cursor-mode", "--limit", "1")
	require.NoError(t, err)
	require.Contains(t, html, `class="paginator cursor"`)
	require.Contains(t, html, "?cursor=")

	output := filepath.Join(t.TempDir(), "page.html")
	stdout, err := execute(t, "render", path, "--account", "alice.near", "--event", "MINT", "-o", output)
	require.NoError(t, err)
	require.Empty(t, stdout)
	written, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(written), "A total of 1 transactions found")
	require.Contains(t, string(written), "Filtered By:")
}

func TestRender_Errors(t *testing.T) {
	path := writeFixture(t)
	for name, args := range map[string][]string{
		"no account":    {"render", path},
		"missing file":  {"render", filepath.Join(t.TempDir(), "missing.json"), "--account", "alice.near"},
		"invalid order": {"render", path, "--account", "alice.near", "--order", "up"},
		"invalid page":  {"render", path, "--account", "alice.near", "--page", "0"},
		"invalid level": {"render", path, "--account", "alice.near", "--log-level", "loud"},
		"no fixture":    {"render", "--account", "alice.near"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err, name)
	}
}

func TestRender_Env(t *testing.T) {
	t.Setenv("DATATABLE_ACCOUNT", "alice.near")
	t.Setenv("DATATABLE_ERROR_MESSAGE", "Nothing here")

	html, err := execute(t, "render", writeFixture(t), "--involved", "nobody.near")
	require.NoError(t, err)
	require.Contains(t, html, "Nothing here")
}

func TestExport(t *testing.T) {
	csv, err := execute(t, "export", writeFixture(t), "--account", "alice.near", "--delimiter", ",", "--order", "asc")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(csv, "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[1], "pending,abc,MINT,alice.near,IN,bob.near,1,,"), lines[1])
	require.True(t, strings.HasPrefix(lines[2], "pending,def,TRANSFER,alice.near,OUT,carol.near,2,,"), lines[2])
}
