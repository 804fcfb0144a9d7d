package server

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"github.com/matzehuels/pathviz/pkg/pipeline"
	"github.com/matzehuels/pathviz/pkg/render/svg"
	"github.com/matzehuels/pathviz/pkg/search"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>pathviz: {{.Start}} to {{.End}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
form { margin-bottom: 1rem; }
.summary { opacity: 0; animation: reveal 0.2s ease-in {{.RevealAt}}s forwards; }
@keyframes reveal { to { opacity: 1; } }
</style>
</head>
<body>
<form method="get" action="/">
<label>from <select name="from">{{range .Nodes}}<option{{if eq . $.Start}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<label>to <select name="to">{{range .Nodes}}<option{{if eq . $.End}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<label>style <select name="style">{{range .Styles}}<option{{if eq . $.Style}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<button type="submit">run</button>
</form>
{{.SVG}}
<p class="summary">
{{- if .Result.Found}}Shortest path: {{range $i, $id := .Result.Path}}{{if $i}} &rarr; {{end}}{{$id}}{{end}} (distance {{.Result.Distance}})
{{- else}}No path from {{.Start}} to {{.End}}{{end -}}
</p>
</body>
</html>
`))

type pageData struct {
	Start, End, Style string
	Nodes             []string
	Styles            []string
	SVG               template.HTML
	Result            *search.Result
	RevealAt          string
}

// handlePage renders the animated drawing for one query with a summary that
// appears once the path has finished highlighting.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	opts := s.options(r, pipeline.FormatSVG)
	opts.Animated = true
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), s.graph, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	end := pipeline.Timeline(res.Search, opts.StartupDelay).End() + opts.Interval
	data := pageData{
		Start:    opts.Start,
		End:      opts.End,
		Style:    opts.Style,
		Nodes:    s.graph.IDs(),
		Styles:   svg.Styles(),
		SVG:      template.HTML(res.Artifacts[pipeline.FormatSVG]),
		Result:   res.Search,
		RevealAt: strconv.FormatFloat(end.Seconds(), 'f', -1, 64),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Pathviz-Run", res.RunID)
	_, _ = buf.WriteTo(w)
}
