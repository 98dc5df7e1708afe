package paging

import "github.com/google/safehtml/template"

const (
	linkTemplateSrc = `{{define "link"}}` +
		`{{if .Current}}<span class="page-link current" aria-current="page">{{.Label}}</span>` +
		`{{else if .Disabled}}<span class="page-link disabled">{{.Label}}</span>` +
		`{{else}}<a class="page-link" href="{{.URL}}">{{.Label}}</a>{{end}}` +
		`{{end}}`

	offsetTemplateSrc = linkTemplateSrc +
		`{{if .Loading}}<nav class="paginator loading" aria-label="Pagination">` +
		`{{else}}<nav class="paginator" aria-label="Pagination">{{end}}` +
		`{{template "link" .First}}{{template "link" .Prev}}` +
		`{{range .Pages}}{{template "link" .}}{{end}}` +
		`{{template "link" .Next}}{{template "link" .Last}}` +
		`<span class="paginator-summary">Page {{.Page}} of {{.TotalPages}}</span>` +
		`</nav>` + "\n"

	cursorTemplateSrc = linkTemplateSrc +
		`{{if .Loading}}<nav class="paginator cursor loading" aria-label="Pagination">` +
		`{{else}}<nav class="paginator cursor" aria-label="Pagination">{{end}}` +
		`{{template "link" .First}}{{template "link" .Prev}}{{template "link" .Next}}` +
		`{{if .Count}}<span class="paginator-summary">About {{.Count}} results</span>{{end}}` +
		`</nav>` + "\n"
)

var (
	offsetTemplate = template.Must(template.New("offset").Parse(offsetTemplateSrc))
	cursorTemplate = template.Must(template.New("cursor").Parse(cursorTemplateSrc))
)
