package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"interlink/internal/fetch"
)

// NewFetchCmd creates the fetch command for importing existing articles
func NewFetchCmd() *cobra.Command {
	var (
		timeout  time.Duration
		readable bool
		link     bool
		topic    string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Import a published article as Markdown",
		Long: `Download an article, strip navigation and other page chrome, and
print its headings, paragraphs and list items as Markdown. With --link the
imported document is linked section by section before it is written.

Examples:
  # Import an article
  interlink fetch https://example.com/blog/edge-caching -o edge-caching.md

  # Import and add internal links in one step
  interlink fetch https://example.com/blog/edge-caching --link`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			fetcher := fetch.New(timeout)
			fetcher.Readability = readable
			page, err := fetcher.Fetch(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", headerStyle.Render("Fetched"), page.Title)

			out := page.Markdown + "\n"
			if link {
				l := newLinker(linkerOptions())
				if !cmd.Flags().Changed("topic") {
					topic = page.Title
				}
				report, err := l.LinkDocumentWith(out, topic, l.Options().LinksPerSection)
				if err != nil {
					return err
				}
				out = report.Content
				defer printLinkReport(cmd.ErrOrStderr(), report)
			}

			return writeOutput(cmd, output, out)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout")
	cmd.Flags().BoolVar(&readable, "readability", false, "extract the article with go-readability")
	cmd.Flags().BoolVar(&link, "link", false, "link the imported document")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "topic for the introduction (default: page title)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the Markdown to this file")

	return cmd
}
