package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-datatable/internal/preview"
)

func newRenderCmd(app *App) *cobra.Command {
	var (
		qf         queryFlags
		output     string
		cursor     string
		cursorMode bool
		expanded   []int
	)
	cmd := &cobra.Command{
		Use:   "render FIXTURE",
		Short: "Render a page of a transactions response as HTML",
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
			r := app.renderer()
			if cursorMode || cursor != "" {
				err = r.WriteCursorPage(cmd.Context(), &buf, src, q, cursor, q.Link())
			} else {
				err = r.WritePage(cmd.Context(), &buf, src, q, expanded)
			}
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
			app.logger.WithField("file", output).WithField("bytes", buf.Len()).Info("Page written")
			return nil
		},
	}
	qf.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout if empty")
	cmd.Flags().StringVar(&cursor, "cursor", "", "cursor of the page, implies --cursor-mode")
	cmd.Flags().BoolVar(&cursorMode, "cursor-mode", false, "use cursor instead of offset pagination")
	cmd.Flags().IntSliceVar(&expanded, "expand", nil, "indexes of rows showing their details")
	return cmd
}
