// Package markdown provides utilities for Markdown links, paragraphs and
// heading sections.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// ParagraphSeparator divides paragraphs in placed and validated content.
const ParagraphSeparator = "\n\n"

var (
	linkPattern    = regexp.MustCompile(`\[([^\]]+)\]\(([^\)]+)\)`)
	headingPattern = regexp.MustCompile(`(?m)^(#{1,3})[ \t]+.+$`)
)

// LinkReference represents an inline link extracted from markdown
type LinkReference struct {
	Anchor  string // Visible text between the brackets
	URL     string // Target URL
	Offset  int    // Byte offset of the opening bracket
	Context string // Surrounding text (for context)
}

// ExtractLinks parses markdown text and returns every [text](url) link in
// document order.
func ExtractLinks(markdown string) []LinkReference {
	matches := linkPattern.FindAllStringSubmatchIndex(markdown, -1)
	links := make([]LinkReference, 0, len(matches))
	for _, m := range matches {
		links = append(links, LinkReference{
			Anchor:  markdown[m[2]:m[3]],
			URL:     markdown[m[4]:m[5]],
			Offset:  m[0],
			Context: extractContext(markdown, m[0], m[1]),
		})
	}
	return links
}

// CountLinks returns the number of inline links in markdown text
func CountLinks(markdown string) int {
	return len(linkPattern.FindAllStringIndex(markdown, -1))
}

// FormatLink renders an inline link.
// Example: ("CDN", "/cdn") -> "[CDN](/cdn)"
func FormatLink(anchor, url string) string {
	return fmt.Sprintf("[%s](%s)", anchor, url)
}

// extractContext returns up to 100 bytes either side of a link, trimmed to
// sentence boundaries where possible.
func extractContext(text string, start, end int) string {
	from := max(start-100, 0)
	to := min(end+100, len(text))

	context := strings.TrimSpace(text[from:to])

	if from > 0 {
		if idx := strings.Index(context, ". "); idx > 0 && idx < 50 {
			context = context[idx+2:]
		}
	}
	if to < len(text) {
		if idx := strings.LastIndex(context, ". "); idx > len(context)-50 && idx > 0 {
			context = context[:idx+1]
		}
	}

	return context
}

// SplitParagraphs splits content on blank-line boundaries. Joining the result
// with ParagraphSeparator restores the input exactly.
func SplitParagraphs(content string) []string {
	return strings.Split(content, ParagraphSeparator)
}

// JoinParagraphs is the inverse of SplitParagraphs.
func JoinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, ParagraphSeparator)
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Section is a slice of a document that starts at a level 1-3 heading, or
// the introduction before the first heading.
type Section struct {
	Heading string // Raw heading line including its line break; empty for the introduction
	Level   int    // Number of leading '#', 0 for the introduction
	Body    string // Text up to the next heading
}

// Title returns the heading text without markers, e.g. "## Setup" -> "Setup".
func (s Section) Title() string {
	return strings.TrimSpace(strings.ReplaceAll(s.Heading, "#", ""))
}

// SplitSections splits a document on '#', '##' and '###' heading lines.
// The first section is always the introduction, possibly with an empty body.
// Concatenating Heading and Body of every section restores the input.
func SplitSections(content string) []Section {
	matches := headingPattern.FindAllStringSubmatchIndex(content, -1)

	sections := make([]Section, 0, len(matches)+1)
	introEnd := len(content)
	if len(matches) > 0 {
		introEnd = matches[0][0]
	}
	sections = append(sections, Section{Body: content[:introEnd]})

	for i, m := range matches {
		headingEnd := m[1]
		if headingEnd < len(content) && content[headingEnd] == '\n' {
			headingEnd++
		}
		bodyEnd := len(content)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		sections = append(sections, Section{
			Heading: content[m[0]:headingEnd],
			Level:   m[3] - m[2],
			Body:    content[headingEnd:bodyEnd],
		})
	}

	return sections
}

// JoinSections reassembles sections produced by SplitSections.
func JoinSections(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(s.Heading)
		b.WriteString(s.Body)
	}
	return b.String()
}
