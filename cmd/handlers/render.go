package handlers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"interlink/internal/render"
)

// NewRenderCmd creates the render command
func NewRenderCmd() *cobra.Command {
	var (
		to     string
		full   bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Convert between Markdown and HTML",
		Long: `Render Markdown as HTML, or with --to markdown extract the article
text of an HTML page as Markdown ready for linking. --full converts the whole
fragment and keeps inline formatting.

Examples:
  # Preview a linked document as HTML
  interlink render linked.md -o linked.html

  # Import an existing article
  interlink render page.html --to markdown -o page.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, firstArg(args))
			if err != nil {
				return err
			}

			var out string
			switch strings.ToLower(to) {
			case "html":
				out = render.HTML(content)
			case "markdown", "md":
				if full {
					out, err = render.FullMarkdown(content)
				} else {
					out, err = render.MarkdownFromHTML(strings.NewReader(content))
				}
				if err != nil {
					return err
				}
				out += "\n"
			default:
				return fmt.Errorf("unknown output format %q (supported: html, markdown)", to)
			}

			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().StringVar(&to, "to", "html", "output format: html or markdown")
	cmd.Flags().BoolVar(&full, "full", false, "keep emphasis, code and tables when converting to markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file")

	return cmd
}
