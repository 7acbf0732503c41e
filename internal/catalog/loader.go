package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"interlink/internal/core"
	"interlink/internal/logger"
)

// Options tunes how catalog sources are interpreted.
type Options struct {
	HostPrefix      string // Stripped from product URLs, e.g. "https://gcore.com"
	SitemapFallback string // Raw URL list scanned for /learning/ pages when the learning source is absent
	CuratedSource   string // Optional YAML file of hand-maintained links
}

// DefaultOptions returns the options used in production.
func DefaultOptions() Options {
	return Options{HostPrefix: "https://gcore.com"}
}

// LoadReport records what each source contributed.
type LoadReport struct {
	ProductEntries      int      `json:"product_entries"`
	LearningEntries     int      `json:"learning_entries"`
	LearningFromSitemap bool     `json:"learning_from_sitemap"`
	CuratedEntries      int      `json:"curated_entries"`
	Warnings            []string `json:"warnings"`
}

// Load reads the product and learning sources and indexes them. It never
// fails: an unreadable or malformed source is skipped with a warning and the
// catalog holds whatever loaded successfully. Empty paths count as absent.
func Load(productPath, learningPath string, opts Options) *Catalog {
	var (
		entries []core.LinkEntry
		report  LoadReport
	)

	warn := func(source, path string, err error) {
		msg := fmt.Sprintf("%s source %q skipped: %v", source, path, err)
		report.Warnings = append(report.Warnings, msg)
		logger.Warn("Catalog source skipped", "source", source, "path", path, "error", err.Error())
	}

	products, err := loadProductFile(productPath, opts.HostPrefix)
	if err != nil {
		warn("product", productPath, err)
	}
	entries = append(entries, products...)
	report.ProductEntries = len(products)

	learning, err := loadLearningFile(learningPath)
	switch {
	case errors.Is(err, core.ErrSourceNotFound):
		logger.Warn("Learning topics not found, scanning sitemap for /learning/ URLs",
			"path", learningPath, "fallback", opts.SitemapFallback)
		report.LearningFromSitemap = true
		learning, err = loadSitemapFile(opts.SitemapFallback)
		if err != nil {
			warn("sitemap", opts.SitemapFallback, err)
		}
	case err != nil:
		warn("learning", learningPath, err)
	}
	entries = append(entries, learning...)
	report.LearningEntries = len(learning)

	if opts.CuratedSource != "" {
		curated, err := loadCuratedFile(opts.CuratedSource)
		if err != nil {
			warn("curated", opts.CuratedSource, err)
		}
		entries = append(entries, curated...)
		report.CuratedEntries = len(curated)
	}

	c := New(entries)
	c.report = report

	logger.Info("Catalog loaded",
		"total", c.Len(),
		"products", report.ProductEntries,
		"learning", report.LearningEntries,
		"curated", report.CuratedEntries,
		"warnings", len(report.Warnings))
	return c
}

func openSource(path string) (*os.File, error) {
	if path == "" {
		return nil, core.ErrSourceNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

func loadProductFile(path, hostPrefix string) ([]core.LinkEntry, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseProducts(f, hostPrefix)
}

func loadLearningFile(path string) ([]core.LinkEntry, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLearningTopics(f)
}

func loadCuratedFile(path string) ([]core.LinkEntry, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCurated(f)
}

func loadSitemapFile(path string) ([]core.LinkEntry, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSitemapLearning(f)
}

// ParseProducts reads sitemap CSV rows with url, service_category and
// content_type columns. Rows outside the allow-lists are ignored. On a
// malformed row the entries parsed so far are returned with the error.
func ParseProducts(r io.Reader, hostPrefix string) ([]core.LinkEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []string{"url", "service_category", "content_type"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var entries []core.LinkEntry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return entries, fmt.Errorf("line %d: %w", line, err)
		}

		serviceCategory := field(record, "service_category")
		contentType := field(record, "content_type")
		if !includedServiceCategories[serviceCategory] || !includedContentTypes[contentType] {
			continue
		}

		url := field(record, "url")
		if hostPrefix != "" {
			url = strings.ReplaceAll(url, hostPrefix, "")
		}
		entries = append(entries, productEntry(url, serviceCategory, contentType))
	}

	return entries, nil
}

func productEntry(url, serviceCategory, contentType string) core.LinkEntry {
	var keywords []string
	for _, rule := range productKeywordRules {
		if strings.Contains(url, rule.pattern) {
			keywords = append(keywords, rule.keywords...)
			break
		}
	}
	for _, part := range urlSegments(url) {
		keywords = append(keywords, strings.ReplaceAll(part, "-", " "))
	}

	priority := productPriority
	for _, prefix := range flagshipPrefixes {
		if strings.Contains(url, prefix) {
			priority = flagshipPriority
			break
		}
	}

	return core.NewLinkEntry(url, productTitle(url), productCategory(contentType),
		serviceCategory, keywords, keywords, priority)
}

func productCategory(contentType string) core.Category {
	switch {
	case strings.Contains(contentType, "service-page"):
		return core.CategoryProductService
	case strings.Contains(contentType, "solution"):
		return core.CategoryProductSolution
	default:
		return core.CategoryProductFeature
	}
}

func productTitle(url string) string {
	segments := urlSegments(url)
	if len(segments) == 0 {
		return defaultServiceTitle
	}
	return slugTitle(segments[len(segments)-1])
}

// urlSegments returns the non-empty path segments, skipping scheme and host
// remnants.
func urlSegments(url string) []string {
	var parts []string
	for _, part := range strings.Split(url, "/") {
		if part == "" || part == "https:" || part == "http:" || strings.Contains(part, "gcore") {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

// ParseLearningTopics reads one slug per line.
func ParseLearningTopics(r io.Reader) ([]core.LinkEntry, error) {
	var entries []core.LinkEntry
	err := scanLines(r, func(slug string) {
		entries = append(entries, learningEntry(slug))
	})
	return entries, err
}

func learningEntry(slug string) core.LinkEntry {
	keywords := strings.Split(slug, "-")
	relevance := append([]string(nil), keywords...)

	subcategory := "general"
	for _, rule := range learningSubcategoryRules {
		if containsAny(slug, rule.keywords) {
			subcategory = rule.pattern
			break
		}
	}

	for _, expansion := range learningTopicExpansions {
		if containsAny(slug, expansion.triggers) {
			relevance = append(relevance, expansion.adds...)
		}
	}

	return core.NewLinkEntry(learningPathPrefix+slug, slugTitle(slug), core.CategoryLearning,
		subcategory, keywords, relevance, learningPriority)
}

// ParseSitemapLearning scans a raw URL list and keeps the /learning/ pages
// as minimal learning entries.
func ParseSitemapLearning(r io.Reader) ([]core.LinkEntry, error) {
	var entries []core.LinkEntry
	err := scanLines(r, func(line string) {
		idx := strings.Index(line, learningPathPrefix)
		if idx < 0 {
			return
		}
		rest := line[idx+len(learningPathPrefix):]
		if next := strings.Index(rest, learningPathPrefix); next >= 0 {
			rest = rest[:next]
		}
		slug := strings.Trim(rest, "/")
		if slug == "" {
			return
		}
		keywords := strings.Split(slug, "-")
		entries = append(entries, core.NewLinkEntry(learningPathPrefix+slug, slugTitle(slug),
			core.CategoryLearning, "general", keywords, keywords, learningPriority))
	})
	return entries, err
}

func scanLines(r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fn(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan lines: %w", err)
	}
	return nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// slugTitle turns "edge-computing" into "Edge Computing".
func slugTitle(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}
