// Package export packages rendered portfolio markup into deliverable files:
// a standalone HTML document, a fully offline variant with inlined styles,
// and a printed PDF.
package export

import (
	_ "embed"
	"html/template"
	"strings"
)

//go:embed offline.css
var offlineCSS string

// Meta feeds the document head; both fields may be empty.
type Meta struct {
	FullName string
	Title    string
}

var standaloneTmpl = template.Must(template.New("standalone").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.FullName}} - {{.Title}}</title>
    <meta name="description" content="Portfolio of {{.FullName}} - {{.Title}}">
    <meta name="author" content="{{.FullName}}">
    <meta property="og:title" content="{{.FullName}} - {{.Title}}">
    <meta property="og:description" content="Professional portfolio of {{.FullName}}">
    <meta property="og:type" content="website">
    <script src="https://cdn.tailwindcss.com"></script>
    <link rel="preconnect" href="https://fonts.googleapis.com">
    <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
    <link href="https://fonts.googleapis.com/css2?family=Outfit:wght@300;400;500;600;700;800&display=swap" rel="stylesheet">
    <style>
        * { font-family: 'Outfit', sans-serif; }
        html { scroll-behavior: smooth; }
    </style>
</head>
<body>
{{.Body}}
</body>
</html>`))

// Standalone wraps rendered portfolio markup into a complete HTML document
// that pulls styles from CDNs.
func Standalone(body string, meta Meta) (string, error) {
	if meta.FullName == "" {
		meta.FullName = "My Portfolio"
	}
	if meta.Title == "" {
		meta.Title = "Professional Portfolio"
	}

	var sb strings.Builder
	err := standaloneTmpl.Execute(&sb, struct {
		Meta
		// Body is already rendered and escaped markup.
		Body template.HTML
	}{Meta: meta, Body: template.HTML(body)})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Filename derives the download name from the person's name.
func Filename(fullName string, offline bool) string {
	if strings.TrimSpace(fullName) == "" {
		fullName = "my portfolio"
	}
	name := strings.Join(strings.Fields(strings.ToLower(fullName)), "-")
	if offline {
		return name + "-portfolio-offline.html"
	}
	return name + "-portfolio.html"
}
