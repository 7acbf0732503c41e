package catalog

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"interlink/internal/core"
)

const curatedDefaultPriority = 3

// CuratedEntry is one hand-maintained link in a curated YAML source:
//
//	links:
//	  - url: /learning/what-is-edge-computing
//	    title: What is edge computing
//	    category: learning
//	    subcategory: concept
//	    keywords: [edge computing, edge]
//	    priority: 4
type CuratedEntry struct {
	URL               string   `yaml:"url"`
	Title             string   `yaml:"title"`
	Category          string   `yaml:"category"`
	Subcategory       string   `yaml:"subcategory"`
	Keywords          []string `yaml:"keywords"`
	RelevanceKeywords []string `yaml:"relevance_keywords"` // Defaults to Keywords
	Priority          int      `yaml:"priority"`           // 1-5, defaults to 3
}

type curatedFile struct {
	Links []CuratedEntry `yaml:"links"`
}

// ParseCurated reads a curated YAML source. On an invalid entry the entries
// before it are returned with the error.
func ParseCurated(r io.Reader) ([]core.LinkEntry, error) {
	var file curatedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode curated links: %w", err)
	}

	entries := make([]core.LinkEntry, 0, len(file.Links))
	for i, link := range file.Links {
		entry, err := link.toEntry()
		if err != nil {
			return entries, fmt.Errorf("link %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c CuratedEntry) toEntry() (core.LinkEntry, error) {
	url := strings.TrimSpace(c.URL)
	if url == "" {
		return core.LinkEntry{}, fmt.Errorf("missing url")
	}

	category := core.Category(strings.TrimSpace(c.Category))
	if !validCategory(category) {
		return core.LinkEntry{}, fmt.Errorf("unknown category %q for %s", c.Category, url)
	}

	priority := c.Priority
	if priority == 0 {
		priority = curatedDefaultPriority
	}
	if priority < 1 || priority > 5 {
		return core.LinkEntry{}, fmt.Errorf("priority %d out of range 1-5 for %s", c.Priority, url)
	}

	title := strings.TrimSpace(c.Title)
	if title == "" {
		if segments := urlSegments(url); len(segments) > 0 {
			title = slugTitle(segments[len(segments)-1])
		}
	}

	relevance := c.RelevanceKeywords
	if len(relevance) == 0 {
		relevance = c.Keywords
	}

	return core.NewLinkEntry(url, title, category, c.Subcategory, c.Keywords, relevance, priority), nil
}

func validCategory(category core.Category) bool {
	for _, c := range core.Categories {
		if c == category {
			return true
		}
	}
	return false
}
