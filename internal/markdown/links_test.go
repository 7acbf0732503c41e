package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     int // number of links expected
	}{
		{
			name:     "single link",
			markdown: "A good [CDN](/cdn) reduces latency.",
			want:     1,
		},
		{
			name:     "multiple links",
			markdown: "Use [DNS hosting](/dns) and [cloud platform](/cloud) together.",
			want:     2,
		},
		{
			name:     "absolute url",
			markdown: "See [docs](https://gcore.com/docs) for more.",
			want:     1,
		},
		{
			name:     "brackets without target",
			markdown: "This [note] is not a link.",
			want:     0,
		},
		{
			name:     "no links",
			markdown: "This text has no links at all.",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := ExtractLinks(tt.markdown)
			if len(links) != tt.want {
				t.Errorf("ExtractLinks() = %d links, want %d", len(links), tt.want)
			}
			if got := CountLinks(tt.markdown); got != tt.want {
				t.Errorf("CountLinks() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExtractLinksDetails(t *testing.T) {
	markdown := "Intro text. A good [CDN](/cdn) reduces latency and [DDoS protection](/ddos) blocks attacks."
	links := ExtractLinks(markdown)

	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d", len(links))
	}

	first := links[0]
	if first.Anchor != "CDN" || first.URL != "/cdn" {
		t.Errorf("first link = %+v", first)
	}
	if first.Offset != strings.Index(markdown, "[CDN]") {
		t.Errorf("first offset = %d, want %d", first.Offset, strings.Index(markdown, "[CDN]"))
	}
	if !strings.Contains(first.Context, "[CDN](/cdn)") {
		t.Errorf("context %q does not contain the link", first.Context)
	}

	if links[1].Anchor != "DDoS protection" || links[1].URL != "/ddos" {
		t.Errorf("second link = %+v", links[1])
	}
}

func TestFormatLink(t *testing.T) {
	if got := FormatLink("CDN", "/cdn"); got != "[CDN](/cdn)" {
		t.Errorf("FormatLink() = %q", got)
	}
	if links := ExtractLinks(FormatLink("edge computing", "/learning/what-is-edge-computing")); len(links) != 1 {
		t.Errorf("formatted link not recognised: %v", links)
	}
}

func TestSplitParagraphsRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"one paragraph",
		"first\n\nsecond\n\n\nthird",
		"- item\n- item\n\ntext",
	}
	for _, in := range inputs {
		if got := JoinParagraphs(SplitParagraphs(in)); got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}
	}

	if got := SplitParagraphs("a\n\nb"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("SplitParagraphs() = %q", got)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("  A CDN\treduces\nlatency  "); got != 4 {
		t.Errorf("WordCount() = %d, want 4", got)
	}
}

func TestSplitSections(t *testing.T) {
	doc := "Intro paragraph.\n\n# Title\nBody one.\n\n## Setup steps\nBody two.\n#### Not a section\n### Last"

	sections := SplitSections(doc)
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d: %+v", len(sections), sections)
	}

	tests := []struct {
		heading string
		title   string
		level   int
		body    string
	}{
		{"", "", 0, "Intro paragraph.\n\n"},
		{"# Title\n", "Title", 1, "Body one.\n\n"},
		{"## Setup steps\n", "Setup steps", 2, "Body two.\n#### Not a section\n"},
		{"### Last", "Last", 3, ""},
	}

	for i, tt := range tests {
		s := sections[i]
		if s.Heading != tt.heading || s.Title() != tt.title || s.Level != tt.level || s.Body != tt.body {
			t.Errorf("section %d = %+v (title %q), want %+v", i, s, s.Title(), tt)
		}
	}

	if got := JoinSections(sections); got != doc {
		t.Errorf("JoinSections() = %q, want %q", got, doc)
	}
}

func TestSplitSectionsWithoutHeadings(t *testing.T) {
	sections := SplitSections("just text")
	if len(sections) != 1 || sections[0].Body != "just text" || sections[0].Heading != "" {
		t.Errorf("SplitSections() = %+v", sections)
	}
}
