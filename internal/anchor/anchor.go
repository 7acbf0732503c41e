// Package anchor chooses the visible text for an internal link.
package anchor

import (
	"strings"

	"interlink/internal/core"
	"interlink/internal/textmatch"
)

// productPhrases maps product path prefixes to fixed anchor phrases. First
// match wins.
var productPhrases = []struct {
	prefix string
	phrase string
}{
	{"/cdn", "CDN solution"},
	{"/cloud", "cloud platform"},
	{"/ddos", "DDoS protection"},
	{"/dns", "DNS hosting"},
	{"/hosting", "hosting services"},
}

// Resolve looks for anchor text that already occurs in content. It tries each
// relevance keyword as a whole word, then the lower-cased title, then the
// last URL segment. The match is returned with the content's own casing.
func Resolve(entry core.LinkEntry, content string) (string, bool) {
	for _, keyword := range entry.RelevanceKeywords {
		if i := textmatch.IndexWordFold(content, keyword); i >= 0 {
			return content[i : i+len(keyword)], true
		}
	}

	for _, candidate := range fallbackCandidates(entry) {
		if candidate == "" {
			continue
		}
		if i := textmatch.IndexFold(content, candidate); i >= 0 {
			return content[i : i+len(candidate)], true
		}
	}

	return "", false
}

func fallbackCandidates(entry core.LinkEntry) []string {
	slug := entry.URL
	if i := strings.LastIndex(slug, "/"); i >= 0 {
		slug = slug[i+1:]
	}
	return []string{
		strings.ToLower(entry.Title),
		strings.ReplaceAll(slug, "-", " "),
	}
}

// Synthesize builds anchor text from the entry alone, for when nothing in
// the content matches.
func Synthesize(entry core.LinkEntry) string {
	switch {
	case entry.Category.IsProduct():
		for _, p := range productPhrases {
			if strings.Contains(entry.URL, p.prefix) {
				return p.phrase
			}
		}

	case entry.Category == core.CategoryLearning:
		switch {
		case strings.Contains(entry.URL, "what-is"):
			topic := "this concept"
			if _, rest, ok := strings.Cut(entry.URL, "what-is-"); ok {
				topic = strings.ReplaceAll(rest, "-", " ")
			}
			return "what " + topic + " is"
		case strings.Contains(entry.URL, "how-to"), strings.Contains(entry.URL, "configure"):
			return "how to do this"
		case strings.Contains(entry.URL, "guide"):
			return "complete guide"
		}
	}

	return strings.ToLower(entry.Title)
}

// ForEntry returns the natural anchor when one exists, otherwise a
// synthesized one.
func ForEntry(entry core.LinkEntry, content string) string {
	if text, ok := Resolve(entry, content); ok {
		return text
	}
	return Synthesize(entry)
}
