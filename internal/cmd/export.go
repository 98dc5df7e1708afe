package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-datatable/internal/preview"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		qf     queryFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "export FIXTURE",
		Short: "Export all transactions of a response matching the filters as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := preview.LoadSource(fs.File(args[0]))
			if err != nil {
				return err
			}
			q, err := qf.query(app)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			err = app.renderer().WriteCSV(cmd.Context(), &buf, src, q)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = app.Stdout.Write(buf.Bytes())
				return err
			}
			err = fs.File(output).WriteAll(buf.Bytes())
			if err != nil {
				return fmt.Errorf("can't write %s: %w", output, err)
			}
			app.logger.WithField("file", output).WithField("charset", app.config.Charset).Info("CSV exported")
			return nil
		},
	}
	qf.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout if empty")
	cmd.Flags().String("charset", "", "character set of the CSV file")
	cmd.Flags().String("delimiter", "", "field delimiter of the CSV file")
	_ = app.viper.BindPFlag("charset", cmd.Flags().Lookup("charset"))
	_ = app.viper.BindPFlag("delimiter", cmd.Flags().Lookup("delimiter"))
	return cmd
}
