package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(NewViper())
	require.NoError(t, err)
	require.Equal(t, "localhost:8080", cfg.Listen)
	require.Equal(t, 7, cfg.PageLimit)
	require.Equal(t, 25, cfg.Limit)
	require.Equal(t, "No transactions found!", cfg.ErrorMessage)
	require.Equal(t, ';', cfg.Delimiter)
	require.Equal(t, logrus.InfoLevel, cfg.Logger.Level)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DATATABLE_PAGE_LIMIT", "11")
	t.Setenv("DATATABLE_COMPACT", "true")
	t.Setenv("DATATABLE_LOGGER_LEVEL", "debug")
	t.Setenv("DATATABLE_CHARSET", "ISO-8859-1")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	require.Equal(t, 11, cfg.PageLimit)
	require.Equal(t, "ISO-8859-1", cfg.Charset)
	require.True(t, cfg.Compact)
	require.Equal(t, logrus.DebugLevel, cfg.Logger.Level)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datatable.yaml")
	err := os.WriteFile(path, []byte("limit: 10\ndelimiter: \",\"\nlogger:\n  format: json\n"), 0o600)
	require.NoError(t, err)

	v := NewViper()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Limit)
	require.Equal(t, ',', cfg.Delimiter)
	require.IsType(t, &logrus.JSONFormatter{}, cfg.Logger.NewLogger().Formatter)

	require.Error(t, ReadFile(NewViper(), filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestLoad_Invalid(t *testing.T) {
	for key, value := range map[string]any{
		"logger.level":  "loud",
		"logger.format": "xml",
		"delimiter":     ";;",
		"limit":         0,
		"charset":       "no-such-charset",
	} {
		v := NewViper()
		v.Set(key, value)
		_, err := Load(v)
		require.Error(t, err, key)
	}
}
