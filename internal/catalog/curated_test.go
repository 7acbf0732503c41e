package catalog

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"interlink/internal/core"
)

const sampleCuratedYAML = `links:
  - url: /learning/what-is-edge-computing
    title: What is edge computing
    category: learning
    subcategory: concept
    keywords: [edge computing, edge]
    priority: 4
  - url: /cdn/video-streaming
    category: product_solution
    keywords: [video streaming]
    relevance_keywords: [streaming, video]
`

func TestParseCurated(t *testing.T) {
	entries, err := ParseCurated(strings.NewReader(sampleCuratedYAML))
	if err != nil {
		t.Fatalf("ParseCurated() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	edge := entries[0]
	if edge.Title != "What is edge computing" || edge.Category != core.CategoryLearning ||
		edge.Subcategory != "concept" || edge.Priority != 4 {
		t.Errorf("unexpected entry %+v", edge)
	}
	if !reflect.DeepEqual(edge.RelevanceKeywords, []string{"edge computing", "edge"}) {
		t.Errorf("RelevanceKeywords = %v, want keywords", edge.RelevanceKeywords)
	}

	video := entries[1]
	if video.Title != "Video Streaming" || video.Subcategory != "general" || video.Priority != curatedDefaultPriority {
		t.Errorf("defaults not applied: %+v", video)
	}
	if !reflect.DeepEqual(video.RelevanceKeywords, []string{"streaming", "video"}) {
		t.Errorf("RelevanceKeywords = %v", video.RelevanceKeywords)
	}
}

func TestParseCuratedInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		parsed  int
		wantErr string
	}{
		{
			name:    "missing url",
			yaml:    "links:\n  - category: learning\n",
			wantErr: "missing url",
		},
		{
			name:    "unknown category",
			yaml:    "links:\n  - url: /a\n    category: learning\n  - url: /b\n    category: blog\n",
			parsed:  1,
			wantErr: `unknown category "blog"`,
		},
		{
			name:    "priority out of range",
			yaml:    "links:\n  - url: /a\n    category: learning\n    priority: 9\n",
			wantErr: "priority 9 out of range",
		},
		{
			name:    "not yaml",
			yaml:    "links: [unclosed",
			wantErr: "failed to decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseCurated(strings.NewReader(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
			}
			if len(entries) != tt.parsed {
				t.Errorf("kept %d entries, want %d", len(entries), tt.parsed)
			}
		})
	}
}

func TestParseCuratedEmpty(t *testing.T) {
	entries, err := ParseCurated(strings.NewReader(""))
	if err != nil || len(entries) != 0 {
		t.Errorf("ParseCurated(\"\") = %v, %v", entries, err)
	}
}

func TestLoadWithCuratedSource(t *testing.T) {
	dir := t.TempDir()
	products := writeFile(t, dir, "sitemap.csv", sampleSitemapCSV)
	learning := writeFile(t, dir, "learning.txt", "what-is-dns\n")
	curated := writeFile(t, dir, "curated.yaml", sampleCuratedYAML)

	c := Load(products, learning, Options{HostPrefix: "https://gcore.com", CuratedSource: curated})

	report := c.Report()
	if report.CuratedEntries != 2 || len(report.Warnings) != 0 {
		t.Errorf("unexpected report %+v", report)
	}
	if got := c.FindByKeyword("edge computing"); len(got) != 1 || got[0].URL != "/learning/what-is-edge-computing" {
		t.Errorf("curated entry not indexed: %+v", got)
	}
	if stats := c.Statistics(); stats.LearningContent != 2 || stats.ProductSolutions != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestLoadMissingCuratedSource(t *testing.T) {
	dir := t.TempDir()
	learning := writeFile(t, dir, "learning.txt", "what-is-dns\n")

	c := Load("", learning, Options{CuratedSource: filepath.Join(dir, "missing.yaml")})
	if c.Report().CuratedEntries != 0 {
		t.Errorf("unexpected curated entries")
	}
	if n := len(c.Report().Warnings); n != 2 {
		t.Errorf("expected product and curated warnings, got %v", c.Report().Warnings)
	}
}
