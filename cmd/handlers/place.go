package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"interlink/internal/core"
)

// ErrInvalidPlacement is returned by validate --strict when issues make the
// placement invalid.
var ErrInvalidPlacement = errors.New("link placement is invalid")

// NewPlaceCmd creates the place command
func NewPlaceCmd() *cobra.Command {
	var (
		topic    string
		maxLinks int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "place [file]",
		Short: "Suggest links and insert them into the content",
		Long: `Suggest links for the whole content and insert them into eligible
paragraphs. At most one link goes into a paragraph and the per-document cap
from the configuration applies. The linked content is written to --output or
stdout, followed by a validation summary on stderr.`,
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
			placed := l.PlaceLinks(content, suggestions)

			if err := writeOutput(cmd, output, placed); err != nil {
				return err
			}
			printValidation(cmd.ErrOrStderr(), l.ValidatePlacement(placed))
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "heading or topic of the content")
	cmd.Flags().IntVarP(&maxLinks, "max", "n", 0, "maximum number of suggestions to consider (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write linked content to this file")

	return cmd
}

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check link placement in Markdown content",
		Long: `Report every Markdown link with its paragraph and relative position,
plus placement issues: links too close to a paragraph start, links outside a
sentence, and excessive link density. The content is never modified.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}

			result := newLinker(linkerOptions()).ValidatePlacement(content)
			printValidation(cmd.OutOrStdout(), result)

			if strict && !result.Valid {
				return ErrInvalidPlacement
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when the placement is invalid")

	return cmd
}

func printValidation(w io.Writer, result core.PlacementResult) {
	status := okStyle.Render("valid")
	if !result.Valid {
		status = warnStyle.Render("invalid")
	}
	fmt.Fprintf(w, "%s %s (%d links)\n", headerStyle.Render("Placement:"), status, result.TotalLinks)

	for _, pos := range result.LinkPositions {
		fmt.Fprintf(w, "  [%s](%s) paragraph %d at %.0f%% %s\n",
			pos.Anchor, pos.URL, pos.ParagraphIndex, pos.PositionRatio*100, labelStyle.Render(pos.Quality))
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("issue:"), issue)
	}
}
