package core

import (
	"errors"
	"strings"
)

// Sentinel errors shared across the linking packages
var (
	ErrInvalidMaxLinks = errors.New("max links must not be negative")
	ErrSourceNotFound  = errors.New("catalog source not found")
)

// Category classifies a catalog entry. It drives the scoring bonus and the
// style of synthesized anchor text.
type Category string

const (
	CategoryProductService  Category = "product_service"
	CategoryProductSolution Category = "product_solution"
	CategoryProductFeature  Category = "product_feature"
	CategoryLearning        Category = "learning"
)

// Categories lists every category in reporting order.
var Categories = []Category{
	CategoryProductService,
	CategoryProductSolution,
	CategoryProductFeature,
	CategoryLearning,
}

// IsProduct reports whether the category is one of the product_* categories.
func (c Category) IsProduct() bool {
	return strings.HasPrefix(string(c), "product")
}

// EntryKey identifies a LinkEntry. Two entries with the same URL but
// different categories are distinct.
type EntryKey struct {
	URL      string
	Category Category
}

// LinkEntry is one internal-link candidate. Entries are values and must not
// be mutated after construction; the slices are shared between copies.
type LinkEntry struct {
	URL               string   `json:"url"`                // Relative path, e.g. "/cdn"
	Title             string   `json:"title"`              // Human-readable label
	Category          Category `json:"category"`           // product_service, product_solution, product_feature, learning
	Subcategory       string   `json:"subcategory"`        // Coarse topic bucket, "general" by default
	Keywords          []string `json:"keywords"`           // Terms describing the URL itself (matched against topics)
	RelevanceKeywords []string `json:"relevance_keywords"` // Terms describing content the link fits (matched against body text)
	Priority          int      `json:"priority"`           // 1-5, higher is more important
}

// NewLinkEntry builds an entry with normalised keyword sets: lower-cased,
// trimmed, de-duplicated, first occurrence order preserved.
func NewLinkEntry(url, title string, category Category, subcategory string, keywords, relevanceKeywords []string, priority int) LinkEntry {
	if subcategory == "" {
		subcategory = "general"
	}
	return LinkEntry{
		URL:               url,
		Title:             title,
		Category:          category,
		Subcategory:       subcategory,
		Keywords:          KeywordSet(keywords),
		RelevanceKeywords: KeywordSet(relevanceKeywords),
		Priority:          priority,
	}
}

// Key returns the identity of the entry.
func (e LinkEntry) Key() EntryKey {
	return EntryKey{URL: e.URL, Category: e.Category}
}

// AllKeywords returns the union of Keywords and RelevanceKeywords.
func (e LinkEntry) AllKeywords() []string {
	all := make([]string, 0, len(e.Keywords)+len(e.RelevanceKeywords))
	all = append(all, e.Keywords...)
	all = append(all, e.RelevanceKeywords...)
	return KeywordSet(all)
}

// KeywordSet lower-cases, trims and de-duplicates keywords. Empty strings are dropped.
func KeywordSet(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	set := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		set = append(set, kw)
	}
	return set
}

// LinkSuggestion is a scored, anchor-resolved candidate returned before placement.
type LinkSuggestion struct {
	Entry      LinkEntry `json:"entry"`
	AnchorText string    `json:"anchor_text"`
	Score      float64   `json:"score"` // 0.0-1.0
}

// Link quality labels reported by the validator
const (
	QualityGood       = "good"
	QualityAcceptable = "acceptable"
)

// LinkPosition locates one placed link inside the document.
type LinkPosition struct {
	Anchor         string  `json:"anchor"`
	URL            string  `json:"url"`
	ParagraphIndex int     `json:"paragraph_index"` // Zero-based
	PositionRatio  float64 `json:"position_ratio"`  // Offset within paragraph / paragraph length
	Quality        string  `json:"quality"`         // good or acceptable
}

// PlacementResult is the advisory outcome of validating placed links.
type PlacementResult struct {
	Valid         bool           `json:"valid"`
	TotalLinks    int            `json:"total_links"`
	Issues        []string       `json:"issues"`
	LinkPositions []LinkPosition `json:"link_positions"`
}

// SectionReport describes the linking outcome for one document section.
type SectionReport struct {
	Heading     string           `json:"heading"` // Empty for the introduction
	Topic       string           `json:"topic"`
	Suggestions []LinkSuggestion `json:"suggestions"`
	LinksAdded  int              `json:"links_added"`
}

// LinkReport is the result of linking a whole Markdown document.
type LinkReport struct {
	ID         string          `json:"id"`
	Content    string          `json:"content"`
	Sections   []SectionReport `json:"sections"`
	Validation PlacementResult `json:"validation"`
}
