package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/observability"
	"github.com/matzehuels/pathviz/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatNodelink: "image/svg+xml",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatPDF:      "application/pdf",
	pipeline.FormatPNG:      "image/png",
}

// Handler returns the HTTP routes:
//
//	GET /                 animated page, ?from=&to=&style=
//	GET /render/{format}  one artifact, same query parameters plus animate=1
//	GET /api/graph        the graph as JSON
//	GET /api/path         the search result as JSON
//	GET /healthz          liveness
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handlePage)
	r.Get("/render/{format}", s.handleRender)
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/path", s.handlePath)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
	})
	return r
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("http", "method", r.Method, "path", r.URL.Path, "status", status,
			"duration", elapsed, "request_id", middleware.GetReqID(r.Context()))
	})
}

// options merges query parameters over the server defaults.
func (s *Server) options(r *http.Request, formats ...string) pipeline.Options {
	opts := s.defaults
	opts.Formats = formats
	opts.Logger = s.logger
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		opts.Start = v
	}
	if v := q.Get("to"); v != "" {
		opts.End = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v, err := strconv.ParseBool(q.Get("animate")); err == nil {
		opts.Animated = v
	}
	if v, err := strconv.ParseBool(q.Get("pinned")); err == nil {
		opts.Pinned = v
	}
	return opts
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), s.graph, s.options(r, format))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Pathviz-Run", res.RunID)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, graph.Export(s.graph))
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	res, err := s.runner.Execute(r.Context(), s.graph, s.options(r, pipeline.FormatJSON))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Pathviz-Run", res.RunID)
	writeJSON(w, http.StatusOK, res.Search)
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrCodeUnknownNode):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		status = http.StatusNotImplemented
	case errors.IsInput(err):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
