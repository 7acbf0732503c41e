// Package render converts between HTML articles and the Markdown the linker
// works on.
package render

import (
	"fmt"
	"io"
	"strings"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	nethtml "golang.org/x/net/html"

	linkmd "interlink/internal/markdown"
)

// Elements that never carry article text
const noiseSelector = "script, style, nav, footer, header, aside, form, iframe, noscript, .sidebar, #sidebar, .ad, .advertisement, .cookie-banner"

// Containers tried in order before falling back to <body>
var mainContentSelectors = []string{"article", "main", "[role='main']", ".content", "#content"}

// MarkdownFromHTML extracts headings (h1-h3), paragraphs and list items from
// an HTML page as Markdown blocks separated by blank lines. Existing anchors
// are kept as [text](href) links.
func MarkdownFromHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	root := doc.Find("body")
	for _, selector := range mainContentSelectors {
		if s := doc.Find(selector).First(); s.Length() > 0 {
			root = s
			break
		}
	}

	var blocks []string
	root.Find("h1, h2, h3, p, li").Each(func(_ int, item *goquery.Selection) {
		if goquery.NodeName(item) == "p" && item.ParentsFiltered("li").Length() > 0 {
			return
		}

		text := inlineMarkdown(item)
		if text == "" {
			return
		}

		switch name := goquery.NodeName(item); name {
		case "h1", "h2", "h3":
			blocks = append(blocks, strings.Repeat("#", int(name[1]-'0'))+" "+text)
		case "li":
			blocks = append(blocks, "- "+text)
		default:
			blocks = append(blocks, text)
		}
	})

	return linkmd.JoinParagraphs(blocks), nil
}

// inlineMarkdown flattens an element's content to one line, turning anchors
// with an href into Markdown links.
func inlineMarkdown(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		switch {
		case node.Type == nethtml.TextNode:
			b.WriteString(node.Data)
		case goquery.NodeName(child) == "a":
			text := collapseSpace(child.Text())
			href, ok := child.Attr("href")
			if !ok || href == "" || text == "" {
				b.WriteString(text)
				return
			}
			b.WriteString(linkmd.FormatLink(text, href))
		case goquery.NodeName(child) == "br":
			b.WriteString(" ")
		default:
			b.WriteString(inlineMarkdown(child))
		}
	})
	return collapseSpace(b.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FullMarkdown converts an HTML fragment as a whole, keeping emphasis, code
// blocks and tables that MarkdownFromHTML flattens. It suits article HTML that
// has already been stripped of page chrome.
func FullMarkdown(fragment string) (string, error) {
	out, err := htmltomd.NewConverter("", true, nil).ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// HTML renders Markdown with the common extensions and automatic heading IDs.
// Relative links are left as they are.
func HTML(md string) string {
	if md == "" {
		return ""
	}

	mdParser := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags,
	})

	return string(markdown.ToHTML([]byte(md), mdParser, renderer))
}
