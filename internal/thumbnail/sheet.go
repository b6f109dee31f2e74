package thumbnail

import (
	"fmt"
	"html/template"
	"io"
)

var sheetTmpl = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; background: #fafafa; color: #222; margin: 2em; }
body.dark-theme { background: #1b1b1b; color: #ddd; }
.strip { display: flex; gap: 8px; flex-wrap: wrap; }
.frame { text-align: center; }
.frame img { width: {{.Width}}px; height: {{.Height}}px; border: 2px solid #888; border-radius: 4px; }
body.dark-theme .frame img { border-color: #555; }
.frame span { display: block; font-size: 0.85em; margin-top: 4px; color: #e5a00d; }
</style>
</head>
<body class="{{.BodyClass}}">
<h1>{{.Title}}</h1>
<div class="strip">
{{- range .Frames}}
<div class="frame"><img src="{{.Src}}" alt="{{.Label}}"><span>{{.Label}}</span></div>
{{- end}}
</div>
</body>
</html>
`))

type sheetFrame struct {
	Src   template.URL
	Label string
}

// WriteSheet renders entries as a standalone HTML page. bodyClass is applied to
// <body> so the page follows the caller's theme.
func WriteSheet(w io.Writer, title, bodyClass string, entries []Entry) error {
	frames := make([]sheetFrame, 0, len(entries))
	for _, e := range entries {
		if _, _, err := DataURIBytes(e.Image); err != nil {
			return fmt.Errorf("frame at %s: %w", e.Label(), err)
		}
		frames = append(frames, sheetFrame{Src: template.URL(e.Image), Label: e.Label()})
	}
	return sheetTmpl.Execute(w, struct {
		Title     string
		BodyClass string
		Width     int
		Height    int
		Frames    []sheetFrame
	}{title, bodyClass, Width, Height, frames})
}
