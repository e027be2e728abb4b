package chart

import (
	"embed"
	"html/template"
	"os"

	"github.com/pkg/errors"

	"wow_check/analysis"
	"wow_check/share"
	"wow_check/wow"
)

//go:embed template/index.tmpl.htm
var indexFS embed.FS

var tmplIndex = template.Must(
	template.New("index.tmpl.htm").
		Funcs(template.FuncMap(share.TemplateFuncMap)).
		ParseFS(indexFS, "template/index.tmpl.htm"),
)

type indexChart struct {
	Name string
	File string
}

type indexData struct {
	Encounter *wow.Encounter
	UpdatedAt string
	Sessions  []*analysis.ReportResult
	Charts    []indexChart
}

func writeIndex(path string, data *indexData) error {
	fs, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer fs.Close()

	return errors.WithStack(tmplIndex.Execute(fs, data))
}
