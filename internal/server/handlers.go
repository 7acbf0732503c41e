package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"interlink/internal/core"
	"interlink/internal/linker"
	"interlink/internal/render"
)

// maxBodyBytes bounds request bodies on the JSON endpoints.
const maxBodyBytes = 2 << 20

// Health check response
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Status response
type StatusResponse struct {
	Version string         `json:"version"`
	Uptime  string         `json:"uptime"`
	Catalog map[string]int `json:"catalog"`
}

// SuggestRequest is the body of POST /api/links/suggest
type SuggestRequest struct {
	Content  string `json:"content"`
	Topic    string `json:"topic"`
	MaxLinks *int   `json:"max_links,omitempty"`
}

// SuggestResponse lists suggestions best first
type SuggestResponse struct {
	Suggestions []core.LinkSuggestion `json:"suggestions"`
}

// PlaceRequest is the body of POST /api/links/place
type PlaceRequest struct {
	Content     string                `json:"content"`
	Suggestions []core.LinkSuggestion `json:"suggestions"`
}

// ContentResponse carries transformed content
type ContentResponse struct {
	Content string `json:"content"`
}

// ValidateRequest is the body of POST /api/links/validate
type ValidateRequest struct {
	Content string `json:"content"`
}

// DocumentRequest is the body of POST /api/links/document
type DocumentRequest struct {
	Content            string  `json:"content"`
	DefaultTopic       *string `json:"default_topic,omitempty"`
	MaxLinksPerSection *int    `json:"max_links_per_section,omitempty"`
}

// PromptRequest is the body of POST /api/links/prompt
type PromptRequest struct {
	Suggestions []core.LinkSuggestion `json:"suggestions"`
}

// PromptResponse carries generation instructions
type PromptResponse struct {
	Prompt string   `json:"prompt"`
	Lines  []string `json:"lines"`
}

// RenderRequest is the body of POST /api/render/html
type RenderRequest struct {
	Content string `json:"content"`
}

// RenderResponse carries rendered HTML
type RenderResponse struct {
	HTML string `json:"html"`
}

// ErrorResponse is returned for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

var serverStartTime = time.Now()

// Version is reported by /api/status
var Version = "dev"

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	// An empty catalog is reported but does not fail the check.
	if s.linker.Catalog().Len() > 0 {
		checks["catalog"] = "ok"
	} else {
		checks["catalog"] = "empty"
	}

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Checks: checks,
	})
}

// handleStatus handles the /api/status endpoint
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, StatusResponse{
		Version: Version,
		Uptime:  time.Since(serverStartTime).String(),
		Catalog: s.linker.CatalogStatistics(),
	})
}

// handleCatalogStats handles GET /api/catalog/stats
func (s *Server) handleCatalogStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.linker.CatalogStatistics())
}

// handleFindByKeyword handles GET /api/catalog/keywords/{keyword}
func (s *Server) handleFindByKeyword(w http.ResponseWriter, r *http.Request) {
	keyword := chi.URLParam(r, "keyword")
	s.respondJSON(w, http.StatusOK, map[string]any{
		"keyword": keyword,
		"entries": s.linker.Catalog().FindByKeyword(keyword),
	})
}

// handleFindByCategory handles GET /api/catalog/categories/{category}
func (s *Server) handleFindByCategory(w http.ResponseWriter, r *http.Request) {
	category := core.Category(chi.URLParam(r, "category"))
	if !slices.Contains(core.Categories, category) {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("unknown category %q", category))
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"entries":  s.linker.Catalog().FindByCategory(category),
	})
}

// handleSuggest handles POST /api/links/suggest
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	maxLinks := s.linker.Options().MaxSuggestions
	if req.MaxLinks != nil {
		maxLinks = *req.MaxLinks
	}

	suggestions, err := s.linker.SuggestLinks(req.Content, req.Topic, maxLinks)
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}

	s.respondJSON(w, http.StatusOK, SuggestResponse{Suggestions: suggestions})
}

// handlePlace handles POST /api/links/place
func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.respondJSON(w, http.StatusOK, ContentResponse{
		Content: s.linker.PlaceLinks(req.Content, req.Suggestions),
	})
}

// handleValidate handles POST /api/links/validate
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.respondJSON(w, http.StatusOK, s.linker.ValidatePlacement(req.Content))
}

// handleLinkDocument handles POST /api/links/document
func (s *Server) handleLinkDocument(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	opts := s.linker.Options()
	topic, perSection := opts.DefaultTopic, opts.LinksPerSection
	if req.DefaultTopic != nil {
		topic = *req.DefaultTopic
	}
	if req.MaxLinksPerSection != nil {
		perSection = *req.MaxLinksPerSection
	}

	report, err := s.linker.LinkDocumentWith(req.Content, topic, perSection)
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

// handlePrompt handles POST /api/links/prompt
func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req PromptRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	lines := make([]string, 0, len(req.Suggestions))
	for _, sug := range req.Suggestions {
		lines = append(lines, linker.FormatForPrompt(sug.Entry, sug.AnchorText))
	}
	s.respondJSON(w, http.StatusOK, PromptResponse{
		Prompt: linker.PromptSection(req.Suggestions),
		Lines:  lines,
	})
}

// handleRenderHTML handles POST /api/render/html
func (s *Server) handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.respondJSON(w, http.StatusOK, RenderResponse{HTML: render.HTML(req.Content)})
}

// decodeJSON reads the request body into v, answering 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func statusFor(err error) int {
	if errors.Is(err, core.ErrInvalidMaxLinks) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	s.respondJSON(w, status, ErrorResponse{Error: err.Error()})
}
