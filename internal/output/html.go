package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter renders the markdown report to a standalone HTML page
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := markdown.Convert(md, &body); err != nil {
		return nil, err
	}

	data := struct {
		GeneratedAt time.Time
		OnTrack     bool
		Status      string
		Body        template.HTML // produced by goldmark from our own markdown
	}{
		GeneratedAt: report.GeneratedAt,
		OnTrack:     report.Results.Summary.RetirementGoalReached,
		Status:      report.StatusLine(),
		Body:        template.HTML(body.String()),
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
