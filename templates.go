package datatable

import "html/template"

// Templates used by Fragment.WriteHTML.
// They can be replaced with Table.WithTemplates.
var (
	HeaderTemplate = template.Must(template.New("header").Parse("" +
		"<div class='datatable{{if .Compact}} compact{{end}}'>\n" +
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
		"  <thead>\n" +
		"    <tr>{{range .Header}}<th scope='col'{{if .Class}} class='{{.Class}}'{{end}}>{{.Content}}</th>{{end}}</tr>\n" +
		"  </thead>\n" +
		"  <tbody>\n",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"{{if .Raw}}" +
		"{{.Raw}}\n" +
		"{{else}}" +
		"    <tr data-kind='{{.Kind}}'>" +
		"{{range .Cells}}<td{{if .Class}} class='{{.Class}}'{{end}}{{if .ColSpan}} colspan='{{.ColSpan}}'{{end}}>{{.Content}}</td>{{end}}" +
		"</tr>\n" +
		"{{end}}",
	))

	FooterTemplate = template.Must(template.New("footer").Parse("" +
		"  </tbody>\n" +
		"</table>\n" +
		"</div>\n" +
		"{{.Pagination}}",
	))

	// SkeletonCell is the placeholder content of skeleton rows.
	SkeletonCell template.HTML = "<span class='skeleton'></span>"
)

// FooterTemplateContext is passed to the footer template.
type FooterTemplateContext struct {
	// Pagination holds the rendered pagination controls.
	Pagination template.HTML
}
