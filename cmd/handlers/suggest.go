package handlers

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"interlink/internal/core"
	"interlink/internal/linker"
	"interlink/internal/relevance"
)

// explainFactors is the display order for --explain.
var explainFactors = []string{"content_keywords", "topic_keywords", "topical_bonus", "priority"}

// NewSuggestCmd creates the suggest command
func NewSuggestCmd() *cobra.Command {
	var (
		topic    string
		maxLinks int
		explain  bool
		prompt   bool
	)

	cmd := &cobra.Command{
		Use:   "suggest [file]",
		Short: "Suggest internal links for a piece of content",
		Long: `Score the catalog against the content and print the best link
suggestions with their anchor text. Content is read from the file argument
or from stdin.

Examples:
  # Suggest links for a draft section
  interlink suggest draft.md --topic "Edge caching"

  # Show how each suggestion was scored
  interlink suggest draft.md --explain

  # Print the suggestions as a writing brief
  interlink suggest draft.md --prompt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}

			l := newLinker(linkerOptions())
			if !cmd.Flags().Changed("max") {
				maxLinks = l.Options().MaxSuggestions
			}
			if !cmd.Flags().Changed("topic") {
				topic = l.Options().DefaultTopic
			}

			suggestions, err := l.SuggestLinks(content, topic, maxLinks)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if prompt {
				fmt.Fprint(w, linker.PromptSection(suggestions))
				return nil
			}
			printSuggestions(w, suggestions)
			if explain {
				printExplanations(w, suggestions, content, topic)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "heading or topic of the content")
	cmd.Flags().IntVarP(&maxLinks, "max", "n", 0, "maximum number of suggestions (default from config)")
	cmd.Flags().BoolVar(&explain, "explain", false, "show the score breakdown for each suggestion")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "print suggestions as a writing brief")

	return cmd
}

func printSuggestions(w io.Writer, suggestions []core.LinkSuggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, warnStyle.Render("No relevant links found."))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-3s %-6s %-28s %s", "#", "SCORE", "ANCHOR", "URL")))
	for i, s := range suggestions {
		fmt.Fprintf(w, "%-3d %-6.2f %-28s %s\n", i+1, s.Score, s.AnchorText, s.Entry.URL)
	}
}

func printExplanations(w io.Writer, suggestions []core.LinkSuggestion, content, topic string) {
	for _, s := range suggestions {
		b := relevance.Explain(s.Entry, content, topic)

		fmt.Fprintf(w, "\n%s %s\n", headerStyle.Render(s.Entry.Title), labelStyle.Render(string(s.Entry.Category)))
		for _, name := range explainFactors {
			fmt.Fprintf(w, "  %-18s %.3f\n", name, b.Factors[name])
		}
		if len(b.MatchedContent) > 0 {
			fmt.Fprintf(w, "  %-18s %v\n", "content matches", b.MatchedContent)
		}
		if len(b.MatchedTopic) > 0 {
			fmt.Fprintf(w, "  %-18s %v\n", "topic matches", b.MatchedTopic)
		}
		if b.TopicalBonusFor != "" {
			fmt.Fprintf(w, "  %-18s %s\n", "topical bonus", b.TopicalBonusFor)
		}
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
