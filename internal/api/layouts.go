package api

import (
	"net/http"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
)

// Cache status headers on one-shot responses.
const (
	headerLayoutCache = "X-Layout-Cache"
	headerRenderCache = "X-Render-Cache"
)

type healthResponse struct {
	Status  string         `json:"status"`
	Version buildinfo.Info `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Get()})
}

// handleLayout places the request's tags and returns the layout JSON.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	opts.Formats = []string{sink.FormatJSON}

	l, hit, err := s.layout(r, &opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	data, err := cloud.Marshal(l)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.Header().Set(headerLayoutCache, cacheStatus(hit))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleRender places the request's tags and returns one artifact in
// the format given by the "format" query parameter (default svg).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	format := formatParam(r)
	opts.Formats = []string{format}

	l, layoutHit, err := s.layout(r, &opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.Header().Set(headerLayoutCache, cacheStatus(layoutHit))
	s.writeArtifact(w, r, l, opts)
}

// layout validates opts and computes the layout through the runner.
func (s *Server) layout(r *http.Request, opts *pipeline.Options) (cloud.Layout, bool, error) {
	if len(opts.Tags) == 0 {
		return cloud.Layout{}, false, errors.New(errors.ErrCodeInvalidInput, "tags is required")
	}
	opts.Logger = s.logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return cloud.Layout{}, false, err
	}
	if err := opts.Tags.Validate(); err != nil {
		return cloud.Layout{}, false, err
	}
	return s.runner.GenerateLayoutWithCacheInfo(r.Context(), opts.Tags, *opts)
}

// writeArtifact renders l in opts.Formats[0] and writes the bytes.
func (s *Server) writeArtifact(w http.ResponseWriter, r *http.Request, l cloud.Layout, opts pipeline.Options) {
	if err := opts.ValidateForRender(); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set(headerRenderCache, cacheStatus(hit))
	w.Header().Set("Content-Type", sink.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func formatParam(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	return pipeline.DefaultFormat
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
