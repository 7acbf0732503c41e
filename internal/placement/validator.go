package placement

import (
	"fmt"
	"strings"

	"interlink/internal/core"
	"interlink/internal/markdown"
)

// Validation defaults
const (
	DefaultMinWordsPerLink = 100

	minPositionRatio = 0.1
	goodRatioLow     = 0.3
	goodRatioHigh    = 0.7
	sentenceWindow   = 50
	sentenceEndMarks = ".!?"
)

// Validator audits placed links. It never modifies content.
type Validator struct {
	MinWordsPerLink int
}

// NewValidator returns a Validator with the default density limit.
func NewValidator() *Validator {
	return &Validator{MinWordsPerLink: DefaultMinWordsPerLink}
}

// Validate reports link positions and placement issues. Links too close to a
// paragraph start and excessive link density make the result invalid; a link
// with no sentence punctuation nearby is reported without affecting validity.
func (v *Validator) Validate(content string) core.PlacementResult {
	links := markdown.ExtractLinks(content)
	result := core.PlacementResult{
		Valid:         true,
		TotalLinks:    len(links),
		Issues:        []string{},
		LinkPositions: []core.LinkPosition{},
	}

	paragraphs := markdown.SplitParagraphs(content)

	for _, link := range links {
		cursor := 0
		for idx, paragraph := range paragraphs {
			paraStart := cursor
			paraEnd := cursor + len(paragraph)
			cursor = paraEnd + len(markdown.ParagraphSeparator)

			if link.Offset < paraStart || link.Offset >= paraEnd {
				continue
			}

			rel := link.Offset - paraStart
			ratio := float64(rel) / float64(len(paragraph))

			if ratio < minPositionRatio {
				result.Issues = append(result.Issues,
					fmt.Sprintf("Link \"%s\" is too close to paragraph start", link.Anchor))
				result.Valid = false
			}

			window := paragraph[max(0, rel-sentenceWindow):min(len(paragraph), rel+sentenceWindow)]
			if !strings.ContainsAny(window, sentenceEndMarks) {
				result.Issues = append(result.Issues,
					fmt.Sprintf("Link \"%s\" may not be within a proper sentence", link.Anchor))
			}

			quality := core.QualityAcceptable
			if ratio >= goodRatioLow && ratio <= goodRatioHigh {
				quality = core.QualityGood
			}

			result.LinkPositions = append(result.LinkPositions, core.LinkPosition{
				Anchor:         link.Anchor,
				URL:            link.URL,
				ParagraphIndex: idx,
				PositionRatio:  ratio,
				Quality:        quality,
			})
			break
		}
	}

	if result.TotalLinks > 0 {
		wordsPerLink := float64(markdown.WordCount(content)) / float64(result.TotalLinks)
		if wordsPerLink < float64(v.MinWordsPerLink) {
			result.Issues = append(result.Issues,
				fmt.Sprintf("Link density too high: %.0f words per link (minimum: %d)", wordsPerLink, v.MinWordsPerLink))
			result.Valid = false
		}
	}

	return result
}
