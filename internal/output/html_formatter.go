package output

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter produces a standalone HTML page from the markdown report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Retirement Runway</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; color: #1f2937; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
th, td { border: 1px solid #d1d5db; padding: 4px 10px; }
th { background: #eff6ff; }
blockquote { border-left: 4px solid #dc2626; background: #fef2f2; margin: 1em 0; padding: 0.5em 1em; }
footer { color: #6b7280; font-size: 0.85em; }
</style>
</head>
<body>
{{.Body}}
<footer>Generated {{.Generated}} · amounts in {{.Currency}}</footer>
</body>
</html>
`))

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(r)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := markdown.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		Body      template.HTML
		Generated string
		Currency  string
	}{
		// raw HTML in the source is dropped by goldmark unless WithUnsafe is set
		Body:      template.HTML(body.String()),
		Generated: r.GeneratedAt.Format("2 January 2006 15:04"),
		Currency:  r.Currency,
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
