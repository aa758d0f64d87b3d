package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/docsplit/internal/pipeline"
	"github.com/dgallion1/docsplit/internal/section"
)

type splitRequest struct {
	Text      string `json:"text"`
	Structure bool   `json:"structure"`
}

// handleSplit splits text supplied in the request body and returns the
// sections synchronously.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req splitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sections, err := s.orchestrator.SplitText(r.Context(), req.Text, req.Structure)
	if errors.Is(err, pipeline.ErrStructuringDisabled) {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		s.log.Error("split failed", "error", err)
		jsonError(w, "split failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sections": pipeline.DescribeSections(sections),
		"count":    len(sections),
	})
}

// handleSectionInfo reports the heading titles carried by one section.
func (s *Server) handleSectionInfo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req struct {
		Section string `json:"section"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"titles": section.SectionInfo(req.Section).Map(),
	})
}
