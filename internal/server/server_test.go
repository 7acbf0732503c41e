package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"interlink/internal/catalog"
	"interlink/internal/config"
	"interlink/internal/core"
	"interlink/internal/linker"
	"interlink/internal/metrics"
)

const longCDN = "Modern websites serve visitors across many regions, and a CDN keeps pages fast by storing copies of assets close to every user around the world."

func newTestServer(t *testing.T, entries ...core.LinkEntry) *Server {
	t.Helper()
	m := metrics.New()
	opts := linker.DefaultOptions()
	opts.Metrics = m
	l := linker.New(catalog.New(entries), opts)
	return New(l, m, config.Server{Host: "localhost", Port: 0})
}

func cdnEntry() core.LinkEntry {
	return core.NewLinkEntry("/cdn", "Cdn", core.CategoryProductService, "network",
		[]string{"cdn", "content delivery"}, []string{"cdn", "latency", "caching"}, 5)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		entries []core.LinkEntry
		catalog string
	}{
		{"populated", []core.LinkEntry{cdnEntry()}, "ok"},
		{"empty", nil, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t, tt.entries...), http.MethodGet, "/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			resp := decode[HealthResponse](t, rec)
			if resp.Status != "ok" || resp.Checks["catalog"] != tt.catalog {
				t.Errorf("response = %+v", resp)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("security headers missing")
			}
		})
	}
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t, cdnEntry())

	stats := decode[map[string]int](t, do(t, s, http.MethodGet, "/api/catalog/stats", ""))
	if stats["total_links"] != 1 || stats["product_services"] != 1 {
		t.Errorf("stats = %v", stats)
	}

	byKeyword := decode[struct {
		Entries []core.LinkEntry `json:"entries"`
	}](t, do(t, s, http.MethodGet, "/api/catalog/keywords/Latency", ""))
	if len(byKeyword.Entries) != 1 || byKeyword.Entries[0].URL != "/cdn" {
		t.Errorf("keyword lookup = %+v", byKeyword)
	}

	if rec := do(t, s, http.MethodGet, "/api/catalog/categories/learning", ""); rec.Code != http.StatusOK {
		t.Errorf("category lookup status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/catalog/categories/unknown", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown category status = %d", rec.Code)
	}
}

func TestSuggestPlaceValidateFlow(t *testing.T) {
	s := newTestServer(t, cdnEntry())

	body, _ := json.Marshal(SuggestRequest{Content: longCDN})
	rec := do(t, s, http.MethodPost, "/api/links/suggest", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("suggest status = %d: %s", rec.Code, rec.Body.String())
	}
	suggested := decode[SuggestResponse](t, rec)
	if len(suggested.Suggestions) != 1 || suggested.Suggestions[0].AnchorText != "CDN" {
		t.Fatalf("suggestions = %+v", suggested.Suggestions)
	}

	body, _ = json.Marshal(PlaceRequest{Content: longCDN, Suggestions: suggested.Suggestions})
	placed := decode[ContentResponse](t, do(t, s, http.MethodPost, "/api/links/place", string(body)))
	if !strings.Contains(placed.Content, "[CDN](/cdn)") {
		t.Fatalf("placed content = %q", placed.Content)
	}

	body, _ = json.Marshal(ValidateRequest{Content: placed.Content})
	result := decode[core.PlacementResult](t, do(t, s, http.MethodPost, "/api/links/validate", string(body)))
	if result.TotalLinks != 1 || result.Valid {
		t.Errorf("validation = %+v", result)
	}

	metricsRec := do(t, s, http.MethodGet, "/metrics", "")
	if !strings.Contains(metricsRec.Body.String(), "interlink_links_placed_total 1") {
		t.Errorf("metrics missing placed counter:\n%s", metricsRec.Body.String())
	}
}

func TestSuggestBadRequests(t *testing.T) {
	s := newTestServer(t, cdnEntry())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"content": `},
		{"negative max links", `{"content": "cdn", "max_links": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/links/suggest", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if resp := decode[ErrorResponse](t, rec); resp.Error == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestLinkDocumentEndpoint(t *testing.T) {
	s := newTestServer(t, cdnEntry())

	topic := "Performance"
	body, _ := json.Marshal(DocumentRequest{Content: longCDN + "\n\n## More\n\nshort", DefaultTopic: &topic})
	rec := do(t, s, http.MethodPost, "/api/links/document", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	report := decode[core.LinkReport](t, rec)
	if report.ID == "" || len(report.Sections) != 2 {
		t.Errorf("report = %+v", report)
	}
	if !strings.Contains(report.Content, "[CDN](/cdn)") || !strings.Contains(report.Content, "## More") {
		t.Errorf("content = %q", report.Content)
	}
}

func TestPromptAndRenderEndpoints(t *testing.T) {
	s := newTestServer(t, cdnEntry())

	body, _ := json.Marshal(PromptRequest{Suggestions: []core.LinkSuggestion{{Entry: cdnEntry(), AnchorText: "CDN solution", Score: 0.8}}})
	prompt := decode[PromptResponse](t, do(t, s, http.MethodPost, "/api/links/prompt", string(body)))
	if !strings.Contains(prompt.Prompt, "Internal Links to Include") || len(prompt.Lines) != 1 {
		t.Errorf("prompt = %+v", prompt)
	}

	body, _ = json.Marshal(RenderRequest{Content: "See the [CDN](/cdn)."})
	rendered := decode[RenderResponse](t, do(t, s, http.MethodPost, "/api/render/html", string(body)))
	if !strings.Contains(rendered.HTML, `<a href="/cdn">CDN</a>`) {
		t.Errorf("html = %q", rendered.HTML)
	}
}
