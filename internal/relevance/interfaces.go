package relevance

import "interlink/internal/core"

// EntrySource supplies the candidates to rank, in catalog order.
type EntrySource interface {
	Entries() []core.LinkEntry
}

// Thresholds tuned to each scoring scale. They are not interchangeable.
const (
	// CatalogMatchCutoff is exclusive: entries must score strictly above it.
	CatalogMatchCutoff = 2.0
	// MinNormalizedRelevance is inclusive: suggestions need at least this score.
	MinNormalizedRelevance = 0.35
)

// Weights of the normalized relevance score. They sum to 1.0.
const (
	WeightContentKeywords = 0.40
	WeightTopicKeywords   = 0.30
	WeightTopicalBonus    = 0.15
	WeightPriority        = 0.15
)

// ScoredEntry pairs an entry with its catalog match score.
type ScoredEntry struct {
	Entry core.LinkEntry `json:"entry"`
	Score float64        `json:"score"`
}

// Breakdown explains a normalized relevance score factor by factor.
type Breakdown struct {
	Value           float64            `json:"value"`            // Final clamped score (0.0-1.0)
	Factors         map[string]float64 `json:"factors"`          // Weighted contribution of each factor
	MatchedContent  []string           `json:"matched_content"`  // Relevance keywords found in the content
	MatchedTopic    []string           `json:"matched_topic"`    // Keywords found in the topic
	TopicalBonusFor string             `json:"topical_bonus_for"` // Which topical rule fired, if any
}
