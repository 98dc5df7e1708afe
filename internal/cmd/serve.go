package cmd

import (
	"github.com/spf13/cobra"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-datatable/internal/preview"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve FIXTURE",
		Short: "Serve a live preview of a transactions response",
		Long: `Serves the transactions of a backend response as HTML pages:

  /account/<id>/nft-txns          offset pagination (?page=, ?expand=)
  /account/<id>/nft-txns/cursor   cursor pagination (?cursor=)
  /account/<id>/nft-txns.csv      CSV export

Filters and order are set with the event, involved and order parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := preview.LoadSource(fs.File(args[0]))
			if err != nil {
				return err
			}
			app.logger.WithField("transactions", src.Len()).Info("Fixture loaded")

			server := preview.NewServer(app.renderer(), src, app.config.Account, app.logger)
			return server.ListenAndServe(cmd.Context(), app.config.Listen)
		},
	}
	cmd.Flags().String("listen", "", "listen address of the preview server")
	_ = app.viper.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	return cmd
}
