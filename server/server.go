/*
Package server implements an HTTP service rendering text to SVG.

	GET /service?text=Hello&font=roboto&color=ff0000

All query parameters are optional; defaults are taken from the configuration. Fonts
are selected by registry key. Colors are hex RGB literals, the leading '#' may be
omitted. Errors are reported as JSON objects of the form {"error": "..."}.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/txt2svg"
	"github.com/npillmayer/txt2svg/config"
	"github.com/npillmayer/txt2svg/fpmath"
	"github.com/npillmayer/txt2svg/internal/fontload"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'txt2svg.server'
func tracer() tracing.Trace {
	return tracing.Select("txt2svg.server")
}

// ServicePath is the path of the rendering endpoint.
const ServicePath = "/service"

// Service renders SVG documents for HTTP requests. It is safe for concurrent use.
type Service struct {
	fonts  *fontload.Registry
	conf   config.Config
	render []txt2svg.Option
}

// New creates a service rendering with fonts from a registry.
func New(fonts *fontload.Registry, conf *config.Config) *Service {
	if conf == nil {
		conf = config.Default()
	}
	s := &Service{fonts: fonts, conf: *conf}
	rc := conf.Render
	s.render = []txt2svg.Option{
		txt2svg.WithBackend(rc.Backend),
		txt2svg.WithPixelHeight(rc.PixelHeight),
		txt2svg.WithFlatness(rc.Flatness),
		txt2svg.WithBufferSize(int(rc.BufferSize.Bytes())),
	}
	if rc.Approx {
		s.render = append(s.render, txt2svg.WithNumeric(fpmath.Approx{}))
	}
	return s
}

// Handler returns an HTTP handler serving ServicePath.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(ServicePath, s)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	return mux
}

// ServeHTTP implements http.Handler.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	q := r.URL.Query()
	text := param(q.Get("text"), s.conf.Render.Text)
	fontKey := strings.ToLower(param(q.Get("font"), s.conf.Render.Font))
	color := param(q.Get("color"), s.conf.Render.Color)
	if limit := int(s.conf.Server.MaxText.Bytes()); limit > 0 && len(text) > limit {
		writeError(w, http.StatusBadRequest, "Text too long")
		return
	}
	color, err := txt2svg.NormalizeColor(color)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid color: "+q.Get("color"))
		return
	}
	data, err := s.fonts.Lookup(fontKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported font: "+fontKey)
		return
	}
	tracer().Debugf("render request: text=%q, font=%s, color=%s", text, fontKey, color)
	f, err := txt2svg.Parse(data, s.render...)
	if err != nil {
		tracer().Errorf("font %s: %v", fontKey, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	svg, err := txt2svg.Render(norm.NFC.String(text), f, color, s.render...)
	if err != nil {
		tracer().Errorf("rendering %q: %v", text, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(svg) == 0 {
		writeError(w, http.StatusInternalServerError, "Generated SVG is empty")
		return
	}
	h := w.Header()
	h.Set("Content-Type", "image/svg+xml")
	h.Set("Access-Control-Allow-Origin", "*")
	if cc := s.conf.Server.CacheControl; cc != "" {
		h.Set("Cache-Control", cc)
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		if _, err := w.Write(svg); err != nil {
			tracer().Debugf("writing response: %v", err)
		}
	}
}

func param(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg}); err != nil {
		tracer().Debugf("writing error response: %v", err)
	}
}
