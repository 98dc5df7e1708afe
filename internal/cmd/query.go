package cmd

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/domonda/go-datatable/nfttxns"
)

// queryFlags are the flags selecting the listed transactions.
type queryFlags struct {
	page     int
	order    string
	event    string
	involved string
	datetime bool
}

func (f *queryFlags) register(flags *pflag.FlagSet) {
	flags.IntVar(&f.page, "page", 1, "page number")
	flags.StringVar(&f.order, "order", string(nfttxns.OrderDesc), "order by timestamp (asc or desc)")
	flags.StringVar(&f.event, nfttxns.FilterEvent, "", "filter by method")
	flags.StringVar(&f.involved, nfttxns.FilterInvolved, "", "filter by involved account")
	flags.BoolVar(&f.datetime, "datetime", false, "show timestamps instead of the age")
}

// query returns the query for the flags.
func (f *queryFlags) query(app *App) (nfttxns.Query, error) {
	if app.config.Account == "" {
		return nfttxns.Query{}, errors.New("missing --account or DATATABLE_ACCOUNT")
	}
	q := app.renderer().Query(app.config.Account)
	q.Order = nfttxns.Order(f.order)
	if !q.Order.Valid() {
		return q, errors.New("--order must be asc or desc")
	}
	if f.page < 1 {
		return q, errors.New("--page must be greater zero")
	}
	q.Page = f.page
	q.Event = f.event
	q.Involved = f.involved
	q.ShowAge = !f.datetime
	return q, nil
}
