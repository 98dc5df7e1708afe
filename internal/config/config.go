// Package config loads the configuration of the datatable command
// from flags, DATATABLE_* environment variables and an optional config file.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	datatable "github.com/domonda/go-datatable"
	"github.com/domonda/go-datatable/csvexport"
	"github.com/domonda/go-datatable/nfttxns"
)

// EnvPrefix of the environment variables, e.g. DATATABLE_PAGE_LIMIT.
const EnvPrefix = "DATATABLE"

// Config of the datatable command.
type Config struct {
	// Listen is the address of the preview server.
	Listen string
	// Account is the account ID of the listed transactions.
	Account string
	// BackendURL is used to display the backend request URLs.
	BackendURL string
	// PageLimit is the maximum number of page links.
	PageLimit int
	// Limit is the number of rows per page.
	Limit int
	// Compact renders tables without row sub-components.
	Compact bool
	// ErrorMessage replaces the default message for missing data.
	ErrorMessage string
	// Charset of exported CSV files.
	Charset string
	// Delimiter of exported CSV files.
	Delimiter rune
	Logger    *Logger
}

// Logger config
type Logger struct {
	Level  logrus.Level
	Format string
}

// NewViper returns a viper.Viper with the defaults
// and environment variable bindings of Config.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen", "localhost:8080")
	v.SetDefault("account", "")
	v.SetDefault("backend_url", "")
	v.SetDefault("page_limit", nfttxns.DefaultPageLimit)
	v.SetDefault("limit", nfttxns.PerPage)
	v.SetDefault("compact", false)
	v.SetDefault("error_message", nfttxns.ErrorMessage)
	v.SetDefault("charset", "UTF-8")
	v.SetDefault("delimiter", ";")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	return v
}

// ReadFile merges the config file at path into v.
// An empty path is ignored.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load returns the validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	level, err := logrus.ParseLevel(v.GetString("logger.level"))
	if err != nil {
		return nil, fmt.Errorf("invalid logger.level: %w", err)
	}
	format := v.GetString("logger.format")
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("invalid logger.format %q, expected text or json", format)
	}
	delimiter := v.GetString("delimiter")
	if utf8.RuneCountInString(delimiter) != 1 {
		return nil, fmt.Errorf("invalid delimiter %q, expected a single character", delimiter)
	}
	delim, _ := utf8.DecodeRuneInString(delimiter)

	cfg := &Config{
		Listen:       v.GetString("listen"),
		Account:      v.GetString("account"),
		BackendURL:   v.GetString("backend_url"),
		PageLimit:    v.GetInt("page_limit"),
		Limit:        v.GetInt("limit"),
		Compact:      v.GetBool("compact"),
		ErrorMessage: v.GetString("error_message"),
		Charset:      v.GetString("charset"),
		Delimiter:    delim,
		Logger: &Logger{
			Level:  level,
			Format: format,
		},
	}
	if cfg.Charset != "" && !strings.EqualFold(cfg.Charset, "UTF-8") {
		if _, err := csvexport.CharsetEncoder(cfg.Charset); err != nil {
			return nil, fmt.Errorf("invalid charset: %w", err)
		}
	}
	if cfg.Limit <= 0 {
		return nil, fmt.Errorf("invalid limit %d", cfg.Limit)
	}
	if cfg.ErrorMessage == "" {
		cfg.ErrorMessage = datatable.DefaultErrorMessage
	}
	return cfg, nil
}

// NewLogger returns a logrus.Logger configured by c.
func (c *Logger) NewLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(c.Level)
	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{})
	}
	return l
}
