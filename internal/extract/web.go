package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/nadzzz/duocast/internal/source"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"
	maxPageSize      = 10 << 20
)

// Web extracts the main text of a web page.
type Web struct {
	client  *http.Client
	cleaner Cleaner
}

// NewWeb creates a web extractor. A nil cleaner keeps the readable text as is.
func NewWeb(client *http.Client, cleaner Cleaner) *Web {
	if client == nil {
		client = http.DefaultClient
	}
	return &Web{client: client, cleaner: cleaner}
}

// Kind returns source.KindWeb.
func (w *Web) Kind() source.Kind { return source.KindWeb }

// Extract fetches ref.Origin and returns its article text.
func (w *Web) Extract(ctx context.Context, ref Ref) (*Document, error) {
	u, err := url.Parse(strings.TrimSpace(ref.Origin))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fail(source.KindWeb, ref.Origin, fmt.Errorf("invalid URL"))
	}

	html, err := w.fetch(ctx, u.String())
	if err != nil {
		return nil, fail(source.KindWeb, ref.Origin, err)
	}

	title, text := readableText(html, u)
	if text == "" {
		return nil, fail(source.KindWeb, ref.Origin, ErrNoContent)
	}

	markdown := text
	if title != "" {
		markdown = "# " + title + "\n\n" + text
	}
	if w.cleaner != nil {
		cleaned, err := w.cleaner.Clean(ctx, text)
		if err != nil {
			return nil, fail(source.KindWeb, ref.Origin, err)
		}
		if cleaned = strings.TrimSpace(cleaned); cleaned != "" {
			markdown = cleaned
		}
	}

	slog.Debug("web page extracted", "url", u.String(), "title", title, "length", len(markdown))
	return &Document{Title: title, Markdown: markdown, Pages: 1}, nil
}

func (w *Web) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	return body, nil
}

// readableText returns the page title and main text. Readability is tried
// first; pages it cannot parse fall back to all visible text.
func readableText(html []byte, pageURL *url.URL) (title, text string) {
	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err == nil {
		title = strings.TrimSpace(article.Title)
		text = collapseWhitespace(article.TextContent)
	}
	if text != "" {
		return title, text
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return title, ""
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	doc.Find("script, style, noscript").Remove()
	return title, collapseWhitespace(doc.Find("body").Text())
}

// collapseWhitespace trims every line, splits runs separated by double
// spaces, and joins the non-empty pieces with single spaces.
func collapseWhitespace(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				parts = append(parts, phrase)
			}
		}
	}
	return strings.Join(parts, " ")
}
