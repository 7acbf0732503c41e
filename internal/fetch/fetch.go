// Package fetch imports existing articles from the web as Markdown.
package fetch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"interlink/internal/logger"
	"interlink/internal/render"
)

// maxPageBytes caps how much of a response body is read.
const maxPageBytes = 10 << 20

// urlRegex finds http(s) URLs in a line of text.
var urlRegex = regexp.MustCompile(`https?://[^\s)]+`)

// Page is an article fetched from a URL and converted to Markdown.
type Page struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Markdown  string    `json:"markdown"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fetcher downloads pages with a shared HTTP client.
type Fetcher struct {
	Client    *http.Client
	UserAgent string

	// Readability distils the page with go-readability and converts the
	// article with render.FullMarkdown instead of the block extractor.
	Readability bool
}

// New returns a Fetcher with a client that times out after timeout.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: "interlink/1.0",
	}
}

// Fetch downloads rawURL and extracts its article text as Markdown.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	if err := validateURL(rawURL); err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("failed to fetch URL %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("failed to fetch URL %s: status code %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return Page{}, fmt.Errorf("failed to read response body from %s: %w", rawURL, err)
	}

	title := extractTitle(body)

	var md string
	if f.Readability {
		var article []byte
		article, title = distil(rawURL, body, title)
		md, err = render.FullMarkdown(string(article))
	} else {
		md, err = render.MarkdownFromHTML(bytes.NewReader(body))
	}
	if err != nil {
		return Page{}, fmt.Errorf("failed to convert %s: %w", rawURL, err)
	}

	page := Page{
		URL:       rawURL,
		Title:     title,
		Markdown:  md,
		FetchedAt: time.Now().UTC(),
	}
	logger.Debug("Fetched page", "url", rawURL, "title", page.Title, "bytes", len(body))
	return page, nil
}

// distil returns the readability article body and title. The original body
// and fallback title are kept when readability finds no content.
func distil(rawURL string, body []byte, fallbackTitle string) ([]byte, string) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return body, fallbackTitle
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), pageURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		logger.Debug("Readability found no article, using full page", "url", rawURL)
		return body, fallbackTitle
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = fallbackTitle
	}
	return []byte(article.Content), title
}

// extractTitle tries <title>, then og:title, then the first h1.
func extractTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return title
	}
	if og, _ := doc.Find("meta[property='og:title']").Attr("content"); strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func validateURL(rawURL string) error {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}
	return nil
}

// ReadURLs reads http(s) URLs from a text or Markdown file, one or more per
// line, in order of first appearance. Invalid and duplicate URLs are skipped.
func ReadURLs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file %s: %w", path, err)
	}
	defer file.Close()

	var urls []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		for _, found := range urlRegex.FindAllString(scanner.Text(), -1) {
			if validateURL(found) != nil || seen[found] {
				continue
			}
			seen[found] = true
			urls = append(urls, found)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading URL file %s: %w", path, err)
	}

	return urls, nil
}
