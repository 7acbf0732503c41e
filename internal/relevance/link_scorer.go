package relevance

import (
	"math"
	"strings"

	"interlink/internal/core"
)

// topicalRule grants the topical bonus when the content mentions a term and
// the entry belongs to the matching bucket.
type topicalRule struct {
	name    string
	term    string
	matches func(e core.LinkEntry) bool
}

var topicalRules = []topicalRule{
	{"cloud", "cloud", func(e core.LinkEntry) bool { return e.Subcategory == "cloud" }},
	{"cdn", "cdn", func(e core.LinkEntry) bool { return e.Subcategory == "network" }},
	{"security", "security", func(e core.LinkEntry) bool { return e.Subcategory == "security" }},
	{"streaming", "streaming", func(e core.LinkEntry) bool { return strings.Contains(e.URL, "streaming") }},
}

var factorOrder = []string{"content_keywords", "topic_keywords", "topical_bonus", "priority"}

// CatalogMatchScore is the coarse, unbounded additive score used to shortlist
// catalog entries. Compare it against CatalogMatchCutoff only.
func CatalogMatchScore(entry core.LinkEntry, content, topic string) float64 {
	contentLower := strings.ToLower(content)
	topicLower := strings.ToLower(topic)
	padded := " " + contentLower + " "

	score := 0.0
	for _, keyword := range entry.RelevanceKeywords {
		kw := strings.ToLower(keyword)
		if strings.Contains(contentLower, kw) {
			score += 2.0
			if strings.Contains(padded, " "+kw+" ") {
				score += 1.0
			}
		}
	}

	for _, keyword := range entry.Keywords {
		if strings.Contains(topicLower, strings.ToLower(keyword)) {
			score += 3.0
		}
	}

	score += float64(entry.Priority) * 0.5

	if entry.Category.IsProduct() {
		score += 1.0
	}

	return score
}

// NormalizedRelevanceScore is the weighted 0-1 score used by the suggestion
// flow. Compare it against MinNormalizedRelevance only.
func NormalizedRelevanceScore(entry core.LinkEntry, content, topic string) float64 {
	return Explain(entry, content, topic).Value
}

// Explain computes the normalized relevance score and reports how each factor
// contributed.
func Explain(entry core.LinkEntry, content, topic string) Breakdown {
	contentLower := strings.ToLower(content)
	topicLower := strings.ToLower(topic)

	b := Breakdown{
		Factors:        make(map[string]float64, 4),
		MatchedContent: []string{},
		MatchedTopic:   []string{},
	}

	for _, keyword := range entry.RelevanceKeywords {
		if strings.Contains(contentLower, strings.ToLower(keyword)) {
			b.MatchedContent = append(b.MatchedContent, keyword)
		}
	}
	if len(entry.RelevanceKeywords) > 0 {
		b.Factors["content_keywords"] = float64(len(b.MatchedContent)) / float64(len(entry.RelevanceKeywords)) * WeightContentKeywords
	}

	for _, keyword := range entry.Keywords {
		if strings.Contains(topicLower, strings.ToLower(keyword)) {
			b.MatchedTopic = append(b.MatchedTopic, keyword)
		}
	}
	if len(entry.Keywords) > 0 {
		b.Factors["topic_keywords"] = float64(len(b.MatchedTopic)) / float64(len(entry.Keywords)) * WeightTopicKeywords
	}

	for _, rule := range topicalRules {
		if strings.Contains(contentLower, rule.term) && rule.matches(entry) {
			b.Factors["topical_bonus"] = WeightTopicalBonus
			b.TopicalBonusFor = rule.name
			break
		}
	}

	b.Factors["priority"] = float64(entry.Priority) / 5.0 * WeightPriority

	// Fixed summation order keeps the result bit-for-bit reproducible.
	sum := 0.0
	for _, name := range factorOrder {
		sum += b.Factors[name]
	}
	b.Value = math.Max(0.0, math.Min(sum, 1.0))
	return b
}
