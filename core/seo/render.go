package seo

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/pkg/errors"
)

var headTmpl = template.Must(template.New("head").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
{{- with .Keywords}}
<meta name="keywords" content="{{join . ", "}}">
{{- end}}
{{- with .Author}}
<meta name="author" content="{{.}}">
{{- end}}
<meta name="robots" content="{{.Robots}}">
{{- with .ThemeColor}}
<meta name="theme-color" content="{{.}}">
{{- end}}
<link rel="canonical" href="{{.Canonical}}">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:type" content="{{.Type}}">
<meta property="og:url" content="{{.Canonical}}">
{{- with .SiteName}}
<meta property="og:site_name" content="{{.}}">
{{- end}}
{{- with .Locale}}
<meta property="og:locale" content="{{.}}">
{{- end}}
{{- with .Image}}
<meta property="og:image" content="{{.}}">
{{- end}}
<meta name="twitter:card" content="{{.TwitterCard}}">
{{- with .TwitterHandle}}
<meta name="twitter:site" content="{{.}}">
{{- end}}
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
{{- with .Image}}
<meta name="twitter:image" content="{{.}}">
{{- end}}
`))

// HTML renders m as the tags of a document's <head>.
func (m Meta) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := headTmpl.Execute(&buf, m); err != nil {
		return "", errors.Wrap(err, "rendering head tags")
	}
	return template.HTML(buf.String()), nil
}
