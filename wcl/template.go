package wcl

import (
	"embed"
	"strconv"
	"strings"
	"text/template"
)

//go:embed query/*.tmpl
var queryFS embed.FS

var queryTmpl = template.Must(
	template.New("query").
		Funcs(template.FuncMap{
			"ints": joinInts,
		}).
		ParseFS(queryFS, "query/*.tmpl"),
)

var (
	tmplReportFights = mustLookup("tmplReportFights.tmpl")
	tmplReportRoster = mustLookup("tmplReportRoster.tmpl")
	tmplReportEvents = mustLookup("tmplReportEvents.tmpl")
	tmplReportTable  = mustLookup("tmplReportTable.tmpl")
	tmplReportActors = mustLookup("tmplReportActors.tmpl")
)

func mustLookup(name string) *template.Template {
	t := queryTmpl.Lookup(name)
	if t == nil {
		panic("missing query template: " + name)
	}
	return t
}

func joinInts(v []int) string {
	var sb strings.Builder
	for i, n := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}
