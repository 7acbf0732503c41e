package relevance

import (
	"sort"

	"interlink/internal/core"
)

// FindRelevant returns up to max distinct entries whose catalog match score
// exceeds CatalogMatchCutoff, best first. Ties keep catalog order.
func FindRelevant(src EntrySource, content, topic string, max int) ([]core.LinkEntry, error) {
	scored, err := FindRelevantScored(src, content, topic, max)
	if err != nil {
		return nil, err
	}

	entries := make([]core.LinkEntry, len(scored))
	for i, s := range scored {
		entries[i] = s.Entry
	}
	return entries, nil
}

// FindRelevantScored is FindRelevant with the scores attached.
func FindRelevantScored(src EntrySource, content, topic string, max int) ([]ScoredEntry, error) {
	if max < 0 {
		return nil, core.ErrInvalidMaxLinks
	}
	if max == 0 || src == nil {
		return []ScoredEntry{}, nil
	}

	var scored []ScoredEntry
	for _, entry := range src.Entries() {
		score := CatalogMatchScore(entry, content, topic)
		if score > CatalogMatchCutoff {
			scored = append(scored, ScoredEntry{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	results := make([]ScoredEntry, 0, max)
	seen := make(map[core.EntryKey]bool)
	for _, s := range scored {
		if len(results) >= max {
			break
		}
		if seen[s.Entry.Key()] {
			continue
		}
		seen[s.Entry.Key()] = true
		results = append(results, s)
	}
	return results, nil
}
