// Package cmd implements the commands of the datatable executable.
package cmd

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/domonda/go-datatable/format"
	"github.com/domonda/go-datatable/internal/config"
	"github.com/domonda/go-datatable/internal/preview"
)

// App holds the state shared by all commands.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	viper  *viper.Viper
	config *config.Config
	logger *logrus.Logger
}

// NewApp returns an App writing to stdout and stderr.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		Stdout: stdout,
		Stderr: stderr,
		viper:  config.NewViper(),
	}
}

// Execute runs the command line args.
func (app *App) Execute(ctx context.Context, args []string) error {
	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(app *App) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "datatable",
		Short: "Render NFT transaction fixtures as data tables",
		Long: `Renders backend NFT transaction responses as HTML data tables
with offset or cursor pagination, exports them as CSV
and serves a live preview.

Flags can also be set with DATATABLE_* environment variables
like DATATABLE_PAGE_LIMIT or in a config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(app.viper, configFile); err != nil {
				return err
			}
			cfg, err := config.Load(app.viper)
			if err != nil {
				return err
			}
			app.config = cfg
			app.logger = cfg.Logger.NewLogger()
			app.logger.SetOutput(app.Stderr)
			app.logger.WithField("command", cmd.Name()).Debug("Configuration loaded")
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.String("account", "", "account ID of the transactions")
	flags.Int("limit", 0, "transactions per page")
	flags.Int("page-limit", 0, "maximum number of page links")
	flags.Bool("compact", false, "render without row details")
	flags.String("error-message", "", "message rendered if there are no transactions")
	flags.String("backend-url", "", "backend URL of the displayed requests")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text or json)")
	for key, flag := range map[string]string{
		"account":       "account",
		"limit":         "limit",
		"page_limit":    "page-limit",
		"compact":       "compact",
		"error_message": "error-message",
		"backend_url":   "backend-url",
		"logger.level":  "log-level",
		"logger.format": "log-format",
	} {
		_ = app.viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		newRenderCmd(app),
		newExportCmd(app),
		newServeCmd(app),
	)
	return rootCmd
}

// renderer returns the preview.Renderer configured by app.
func (app *App) renderer() *preview.Renderer {
	return &preview.Renderer{
		Formats:      format.Default,
		Limit:        app.config.Limit,
		PageLimit:    app.config.PageLimit,
		Compact:      app.config.Compact,
		ErrorMessage: app.config.ErrorMessage,
		BackendURL:   app.config.BackendURL,
		Charset:      app.config.Charset,
		Delimiter:    app.config.Delimiter,
	}
}
