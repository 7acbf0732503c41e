// Package placement inserts suggested links into Markdown paragraphs and
// audits the result.
package placement

import (
	"strings"

	"interlink/internal/core"
	"interlink/internal/markdown"
	"interlink/internal/textmatch"
)

// Placement defaults
const (
	DefaultMaxLinks          = 3
	DefaultMinParagraphWords = 20

	// guardWindow is how many bytes either side of a match are checked for
	// existing link markup.
	guardWindow = 10
)

// Placer inserts at most one link per paragraph and at most MaxLinks per call.
// It does not enforce spacing between links; Validator reports density instead.
type Placer struct {
	MaxLinks          int
	MinParagraphWords int
}

// NewPlacer returns a Placer with the default limits.
func NewPlacer() *Placer {
	return &Placer{
		MaxLinks:          DefaultMaxLinks,
		MinParagraphWords: DefaultMinParagraphWords,
	}
}

// Stats summarises one Place call.
type Stats struct {
	Paragraphs int // Paragraphs in the content
	Eligible   int // Paragraphs long enough and not list items
	Placed     int // Links inserted
	Skipped    int // Matching suggestions rejected by the markup guard
}

// Place returns content with suggestions linked in order of preference.
func (p *Placer) Place(content string, suggestions []core.LinkSuggestion) string {
	out, _ := p.PlaceWithStats(content, suggestions)
	return out
}

// PlaceWithStats is Place plus a summary of what happened.
func (p *Placer) PlaceWithStats(content string, suggestions []core.LinkSuggestion) (string, Stats) {
	paragraphs := markdown.SplitParagraphs(content)
	stats := Stats{Paragraphs: len(paragraphs)}

	for i, paragraph := range paragraphs {
		if stats.Placed >= p.MaxLinks {
			break
		}
		if !p.eligible(paragraph) {
			continue
		}
		stats.Eligible++

		for _, s := range suggestions {
			if s.AnchorText == "" || !textmatch.ContainsFold(paragraph, s.AnchorText) {
				continue
			}
			linked, ok := PlaceInParagraph(paragraph, s.Entry.URL, s.AnchorText)
			if !ok {
				stats.Skipped++
				continue
			}
			paragraphs[i] = linked
			stats.Placed++
			break
		}
	}

	return markdown.JoinParagraphs(paragraphs), stats
}

func (p *Placer) eligible(paragraph string) bool {
	if markdown.WordCount(paragraph) < p.MinParagraphWords {
		return false
	}
	return !IsListItem(paragraph)
}

// IsListItem reports whether a paragraph starts with a bullet marker.
func IsListItem(paragraph string) bool {
	trimmed := strings.TrimSpace(paragraph)
	return strings.HasPrefix(trimmed, "•") ||
		strings.HasPrefix(trimmed, "-") ||
		strings.HasPrefix(trimmed, "*")
}

// PlaceInParagraph wraps one occurrence of anchor in a link to url. With
// several occurrences the one starting closest to the middle of the paragraph
// is used, earliest on ties. The visible text keeps the paragraph's casing.
// It reports false and returns the paragraph unchanged when anchor is absent
// or the chosen occurrence touches existing link markup.
func PlaceInParagraph(paragraph, url, anchor string) (string, bool) {
	matches := textmatch.IndexAllFold(paragraph, anchor)
	if len(matches) == 0 {
		return paragraph, false
	}

	start := matches[0]
	if len(matches) > 1 {
		mid := len(paragraph) / 2
		for _, m := range matches[1:] {
			if abs(m-mid) < abs(start-mid) {
				start = m
			}
		}
	}
	end := start + len(anchor)

	if insideMarkup(paragraph, start, end) {
		return paragraph, false
	}

	return paragraph[:start] + markdown.FormatLink(paragraph[start:end], url) + paragraph[end:], true
}

// insideMarkup reports whether [start, end) is next to or inside an existing
// link.
func insideMarkup(paragraph string, start, end int) bool {
	before := paragraph[max(0, start-guardWindow):start]
	after := paragraph[end:min(len(paragraph), end+guardWindow)]
	if strings.Contains(before, "](") || strings.Contains(after, "](http") {
		return true
	}

	for _, link := range markdown.ExtractLinks(paragraph) {
		linkEnd := link.Offset + len(markdown.FormatLink(link.Anchor, link.URL))
		if start < linkEnd && end > link.Offset {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
