package handlers

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"interlink/internal/tui"
)

// NewReviewCmd creates the interactive review command
func NewReviewCmd() *cobra.Command {
	var (
		topic    string
		maxLinks int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "review <file>",
		Short: "Review link suggestions in a terminal UI before placing them",
		Long: `Open a terminal UI listing the link suggestions for a file. Toggle
suggestions with space and press enter to place the kept ones. Press q to
quit without changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, args[0])
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

			kept, err := tui.Review(suggestions)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Review aborted, no changes made.")
				return nil
			}
			if err != nil {
				return err
			}

			placed := l.PlaceLinks(content, kept)
			if err := writeOutput(cmd, output, placed); err != nil {
				return err
			}
			printValidation(cmd.ErrOrStderr(), l.ValidatePlacement(placed))
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "heading or topic of the content")
	cmd.Flags().IntVarP(&maxLinks, "max", "n", 0, "maximum number of suggestions (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write linked content to this file")

	return cmd
}
