package handlers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"interlink/internal/core"
	"interlink/internal/render"
)

// NewLinkCmd creates the link command for whole documents
func NewLinkCmd() *cobra.Command {
	var (
		topic      string
		perSection int
		output     string
		inPlace    bool
		asHTML     bool
		reportJSON bool
	)

	cmd := &cobra.Command{
		Use:   "link <file>",
		Short: "Link a Markdown document section by section",
		Long: `Split a Markdown document on its level 1-3 headings and link each
section against its own heading. The introduction before the first heading
uses --topic. Headings are kept verbatim.

Examples:
  # Link a document and print the result
  interlink link article.md

  # Rewrite the file with links added
  interlink link article.md --in-place

  # Write an HTML rendering of the linked document
  interlink link article.md --html -o article.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			l := newLinker(linkerOptions())
			if !cmd.Flags().Changed("topic") {
				topic = l.Options().DefaultTopic
			}
			if !cmd.Flags().Changed("per-section") {
				perSection = l.Options().LinksPerSection
			}

			report, err := l.LinkDocumentWith(content, topic, perSection)
			if err != nil {
				return err
			}

			if reportJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			out := report.Content
			if asHTML {
				out = render.HTML(report.Content)
			}
			if inPlace {
				output = args[0]
			}
			if err := writeOutput(cmd, output, out); err != nil {
				return err
			}

			printLinkReport(cmd.ErrOrStderr(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "topic for the introduction (default from config)")
	cmd.Flags().IntVar(&perSection, "per-section", 0, "maximum links suggested per section (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the linked document to this file")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "overwrite the input file")
	cmd.Flags().BoolVar(&asHTML, "html", false, "render the linked document as HTML")
	cmd.Flags().BoolVar(&reportJSON, "json", false, "print the full link report as JSON")
	cmd.MarkFlagsMutuallyExclusive("output", "in-place")

	return cmd
}

func printLinkReport(w io.Writer, report core.LinkReport) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Link report"), labelStyle.Render(report.ID))
	for _, section := range report.Sections {
		heading := section.Heading
		if heading == "" {
			heading = "(introduction)"
		}
		fmt.Fprintf(w, "  %-40s %d/%d linked\n", heading, section.LinksAdded, len(section.Suggestions))
	}
	printValidation(w, report.Validation)
}
