// Package catalog holds the read-only index of internal-link candidates.
package catalog

import (
	"strings"

	"interlink/internal/core"
)

// Catalog is built once and never mutated afterwards, so a single instance
// may be shared by concurrent callers.
type Catalog struct {
	entries    []core.LinkEntry
	byCategory map[core.Category][]core.LinkEntry
	byKeyword  map[string][]core.LinkEntry
	report     LoadReport
}

// Stats summarises a catalog for diagnostics.
type Stats struct {
	TotalLinks       int `json:"total_links"`
	ProductServices  int `json:"product_services"`
	ProductSolutions int `json:"product_solutions"`
	ProductFeatures  int `json:"product_features"`
	LearningContent  int `json:"learning_content"`
	UniqueKeywords   int `json:"unique_keywords"`
}

// Map returns the statistics keyed the way the UI layer expects.
func (s Stats) Map() map[string]int {
	return map[string]int{
		"total_links":       s.TotalLinks,
		"product_services":  s.ProductServices,
		"product_solutions": s.ProductSolutions,
		"product_features":  s.ProductFeatures,
		"learning_content":  s.LearningContent,
		"unique_keywords":   s.UniqueKeywords,
	}
}

// New indexes the given entries in order.
func New(entries []core.LinkEntry) *Catalog {
	c := &Catalog{
		entries:    append([]core.LinkEntry(nil), entries...),
		byCategory: make(map[core.Category][]core.LinkEntry),
		byKeyword:  make(map[string][]core.LinkEntry),
	}
	c.buildIndices()
	return c
}

func (c *Catalog) buildIndices() {
	for _, entry := range c.entries {
		c.byCategory[entry.Category] = append(c.byCategory[entry.Category], entry)

		for _, keyword := range entry.AllKeywords() {
			if containsKey(c.byKeyword[keyword], entry.Key()) {
				continue
			}
			c.byKeyword[keyword] = append(c.byKeyword[keyword], entry)
		}
	}
}

func containsKey(entries []core.LinkEntry, key core.EntryKey) bool {
	for _, e := range entries {
		if e.Key() == key {
			return true
		}
	}
	return false
}

// Entries returns the catalog entries in load order.
func (c *Catalog) Entries() []core.LinkEntry {
	return append([]core.LinkEntry(nil), c.entries...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// FindByKeyword performs a case-insensitive exact lookup in the keyword index.
func (c *Catalog) FindByKeyword(keyword string) []core.LinkEntry {
	found := c.byKeyword[strings.ToLower(strings.TrimSpace(keyword))]
	return append([]core.LinkEntry{}, found...)
}

// FindByCategory returns every entry of the category.
func (c *Catalog) FindByCategory(category core.Category) []core.LinkEntry {
	return append([]core.LinkEntry{}, c.byCategory[category]...)
}

// Statistics counts entries per category and distinct index keywords.
func (c *Catalog) Statistics() Stats {
	return Stats{
		TotalLinks:       len(c.entries),
		ProductServices:  len(c.byCategory[core.CategoryProductService]),
		ProductSolutions: len(c.byCategory[core.CategoryProductSolution]),
		ProductFeatures:  len(c.byCategory[core.CategoryProductFeature]),
		LearningContent:  len(c.byCategory[core.CategoryLearning]),
		UniqueKeywords:   len(c.byKeyword),
	}
}

// Report returns the diagnostics collected while loading.
func (c *Catalog) Report() LoadReport {
	r := c.report
	r.Warnings = append([]string(nil), c.report.Warnings...)
	return r
}
