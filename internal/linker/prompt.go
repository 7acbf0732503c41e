package linker

import (
	"fmt"
	"strings"

	"interlink/internal/core"
)

// maxPromptLinks caps how many suggestions go into a generation prompt.
const maxPromptLinks = 3

// linkContexts describes when a link fits, keyed by URL fragment. First match
// wins.
var linkContexts = []struct {
	fragment string
	context  string
}{
	{"/cdn", "content delivery or website performance"},
	{"/cloud", "cloud computing or infrastructure"},
	{"/ddos", "security threats or DDoS attacks"},
	{"/dns", "domain management or DNS services"},
	{"/hosting", "server hosting or dedicated servers"},
	{"/streaming", "video streaming or live broadcasting"},
	{"/edge", "edge computing or low latency"},
	{"learning", "technical concepts or implementation details"},
}

// LinkContext returns a short phrase describing when entry should be linked.
func LinkContext(entry core.LinkEntry) string {
	for _, c := range linkContexts {
		if strings.Contains(entry.URL, c.fragment) {
			return c.context
		}
	}
	if len(entry.Keywords) > 0 {
		return entry.Keywords[0] + " or related topics"
	}
	return "relevant topics"
}

// PromptSection renders instructions asking a text generator to include the
// top suggestions. It returns "" when there is nothing to include.
func PromptSection(suggestions []core.LinkSuggestion) string {
	if len(suggestions) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n**Internal Links to Include:**\n")
	b.WriteString("Include these internal links naturally within the content. ")
	b.WriteString("Place them mid-paragraph where they fit contextually:\n\n")

	for _, s := range suggestions[:min(len(suggestions), maxPromptLinks)] {
		fmt.Fprintf(&b, "• When discussing %s, link to \"%s\" using the exact anchor text \"%s\"\n",
			LinkContext(s.Entry), s.Entry.URL, s.AnchorText)
	}

	b.WriteString("\n**Link Placement Rules:**\n")
	b.WriteString("- Place links naturally within sentences, NOT at the beginning\n")
	b.WriteString("- Ensure the anchor text flows with the sentence\n")
	b.WriteString("- Space links throughout the content (not clustered)\n")
	b.WriteString("- Only include if contextually relevant\n")

	return b.String()
}

// FormatForPrompt renders a single link instruction line.
func FormatForPrompt(entry core.LinkEntry, anchorText string) string {
	preview := "related topics"
	if len(entry.Keywords) > 0 {
		preview = strings.Join(entry.Keywords[:min(len(entry.Keywords), 3)], ", ")
	}
	return fmt.Sprintf("- Link to \"%s\" with anchor text \"%s\" when discussing %s", entry.URL, anchorText, preview)
}
