// Package linker is the entry point of the internal-link engine. It ties the
// catalog, scorers, anchor resolution, placement and validation together.
package linker

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"interlink/internal/anchor"
	"interlink/internal/catalog"
	"interlink/internal/config"
	"interlink/internal/core"
	"interlink/internal/logger"
	"interlink/internal/markdown"
	"interlink/internal/metrics"
	"interlink/internal/placement"
	"interlink/internal/relevance"
)

// Options tunes a Linker. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	MinRelevance        float64
	MaxSuggestions      int // Used by callers that do not pass a limit
	MaxLinksPerDocument int
	MinParagraphWords   int
	MinWordsPerLink     int
	LinksPerSection     int
	DefaultTopic        string
	Metrics             *metrics.Metrics // Optional
}

// DefaultOptions returns the production thresholds.
func DefaultOptions() Options {
	return Options{
		MinRelevance:        relevance.MinNormalizedRelevance,
		MaxSuggestions:      5,
		MaxLinksPerDocument: placement.DefaultMaxLinks,
		MinParagraphWords:   placement.DefaultMinParagraphWords,
		MinWordsPerLink:     placement.DefaultMinWordsPerLink,
		LinksPerSection:     2,
	}
}

// OptionsFromConfig maps the linking configuration onto Options.
func OptionsFromConfig(cfg config.Linking) Options {
	return Options{
		MinRelevance:        cfg.MinRelevance,
		MaxSuggestions:      cfg.DefaultMaxLinks,
		MaxLinksPerDocument: cfg.MaxLinksPerDocument,
		MinParagraphWords:   cfg.MinParagraphWords,
		MinWordsPerLink:     cfg.MinWordsBetweenLinks,
		LinksPerSection:     cfg.LinksPerSection,
		DefaultTopic:        cfg.DefaultTopic,
	}
}

// LoadCatalog reads the product and learning sources with the default host
// prefix. Either path may be empty. Problems are logged, never returned.
func LoadCatalog(productPath, learningPath string) *catalog.Catalog {
	return catalog.Load(productPath, learningPath, catalog.DefaultOptions())
}

// Linker suggests, places and validates internal links against one catalog.
// It holds no mutable state and is safe for concurrent use.
type Linker struct {
	catalog   *catalog.Catalog
	opts      Options
	placer    *placement.Placer
	validator *placement.Validator
}

// New creates a Linker over c.
func New(c *catalog.Catalog, opts Options) *Linker {
	if c == nil {
		c = catalog.New(nil)
	}
	opts.Metrics.SetCatalogCounts(categoryCounts(c))

	return &Linker{
		catalog: c,
		opts:    opts,
		placer: &placement.Placer{
			MaxLinks:          opts.MaxLinksPerDocument,
			MinParagraphWords: opts.MinParagraphWords,
		},
		validator: &placement.Validator{MinWordsPerLink: opts.MinWordsPerLink},
	}
}

func categoryCounts(c *catalog.Catalog) map[core.Category]int {
	counts := make(map[core.Category]int, len(core.Categories))
	for _, category := range core.Categories {
		counts[category] = len(c.FindByCategory(category))
	}
	return counts
}

// Catalog returns the catalog the linker works on.
func (l *Linker) Catalog() *catalog.Catalog {
	return l.catalog
}

// Options returns the linker configuration.
func (l *Linker) Options() Options {
	return l.opts
}

// SuggestLinks returns up to maxLinks anchor-resolved suggestions for the
// content, best first. Candidates are shortlisted with the catalog match
// score and then kept only if their normalized relevance reaches the
// configured minimum. An empty result is normal.
func (l *Linker) SuggestLinks(content, topic string, maxLinks int) ([]core.LinkSuggestion, error) {
	if maxLinks < 0 {
		return nil, core.ErrInvalidMaxLinks
	}

	candidates, err := relevance.FindRelevant(l.catalog, content, topic, maxLinks*2)
	if err != nil {
		return nil, err
	}
	if len(candidates) > maxLinks {
		candidates = candidates[:maxLinks]
	}

	suggestions := make([]core.LinkSuggestion, 0, len(candidates))
	for _, entry := range candidates {
		score := relevance.NormalizedRelevanceScore(entry, content, topic)
		if score < l.opts.MinRelevance {
			logger.Debug("Candidate below relevance threshold", "url", entry.URL, "score", score)
			continue
		}
		suggestions = append(suggestions, core.LinkSuggestion{
			Entry:      entry,
			AnchorText: anchor.ForEntry(entry, content),
			Score:      score,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > maxLinks {
		suggestions = suggestions[:maxLinks]
	}

	l.opts.Metrics.ObserveSuggestions(len(suggestions))
	logger.Debug("Suggested links", "topic", topic, "candidates", len(candidates), "suggestions", len(suggestions))
	return suggestions, nil
}

// PlaceLinks inserts suggestions into content. Suggestions whose anchor text
// does not occur, or that would overlap existing links, are skipped.
func (l *Linker) PlaceLinks(content string, suggestions []core.LinkSuggestion) string {
	out, stats := l.placer.PlaceWithStats(content, suggestions)
	l.opts.Metrics.ObservePlacement(stats.Placed, stats.Skipped)
	logger.Debug("Placed links",
		"paragraphs", stats.Paragraphs,
		"eligible", stats.Eligible,
		"placed", stats.Placed,
		"skipped", stats.Skipped)
	return out
}

// ValidatePlacement audits links in content. The content is not modified.
func (l *Linker) ValidatePlacement(content string) core.PlacementResult {
	result := l.validator.Validate(content)
	l.opts.Metrics.ObserveValidation(result)
	return result
}

// CatalogStatistics returns catalog counts keyed for reporting.
func (l *Linker) CatalogStatistics() map[string]int {
	return l.catalog.Statistics().Map()
}

// LinkDocument links a Markdown document section by section using the
// configured default topic and per-section limit.
func (l *Linker) LinkDocument(content string) core.LinkReport {
	report, _ := l.LinkDocumentWith(content, l.opts.DefaultTopic, l.opts.LinksPerSection)
	return report
}

// LinkDocumentWith splits content on level 1-3 headings and links every
// non-blank section on its own. The introduction uses defaultTopic; other
// sections use their heading text. Headings are kept verbatim and the joined
// result is validated once.
func (l *Linker) LinkDocumentWith(content, defaultTopic string, perSection int) (core.LinkReport, error) {
	if perSection < 0 {
		return core.LinkReport{}, core.ErrInvalidMaxLinks
	}

	report := core.LinkReport{
		ID:       uuid.New().String(),
		Sections: []core.SectionReport{},
	}

	sections := markdown.SplitSections(content)
	for i, section := range sections {
		topic := defaultTopic
		if section.Heading != "" {
			topic = section.Title()
		}
		if strings.TrimSpace(section.Body) == "" {
			continue
		}

		suggestions, err := l.SuggestLinks(section.Body, topic, perSection)
		if err != nil {
			return core.LinkReport{}, err
		}

		placed := section.Body
		if len(suggestions) > 0 {
			placed = l.PlaceLinks(section.Body, suggestions)
		}
		sections[i].Body = placed

		report.Sections = append(report.Sections, core.SectionReport{
			Heading:     section.Title(),
			Topic:       topic,
			Suggestions: suggestions,
			LinksAdded:  countLinked(placed, suggestions),
		})
	}

	report.Content = markdown.JoinSections(sections)
	report.Validation = l.ValidatePlacement(report.Content)

	logger.Info("Document linked",
		"report_id", report.ID,
		"sections", len(report.Sections),
		"links", report.Validation.TotalLinks,
		"valid", report.Validation.Valid)
	return report, nil
}

// countLinked counts suggestions that ended up as a link target in text.
func countLinked(text string, suggestions []core.LinkSuggestion) int {
	n := 0
	for _, s := range suggestions {
		if strings.Contains(text, "]("+s.Entry.URL+")") {
			n++
		}
	}
	return n
}
