package report

import (
	_ "embed"
	"io"
	"text/template"

	"github.com/spigell/whoami-engine/internal/questionnaire"
)

//go:embed report.tmpl
var reportTemplateRaw string

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(reportTemplateRaw))

type view struct {
	*Report
	TraitOrder []string
}

// Render writes the text form of the report.
func (r *Report) Render(w io.Writer) error {
	order := append(append([]string(nil), questionnaire.BigFive...), questionnaire.ExtraScales...)
	return reportTemplate.Execute(w, view{Report: r, TraitOrder: order})
}
