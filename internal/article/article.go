// Package article fetches and extracts long-form X article content. Article
// bodies are not exposed through the public API, so the extractor pulls the
// rendered page and walks the article markup directly.
package article

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kestrelsec/xward/internal/model"
)

// Article is the extracted content of one long-form post.
type Article struct {
	Title   string `json:"title"`
	Author  string `json:"author,omitempty"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Fetcher retrieves article pages over HTTP.
type Fetcher struct {
	http   *http.Client
	logger *zap.Logger
}

func NewFetcher(logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// Selector fallbacks, most specific first. Article markup changes often, so
// each field tries several shapes before giving up.
var (
	titleSelectors   = []string{`div[data-testid="twitter-article-title"]`, `article h1`, `meta[property="og:title"]`, `title`}
	authorSelectors  = []string{`div[data-testid="User-Name"] span`, `meta[name="author"]`}
	contentSelectors = []string{`div[data-testid="twitter-article-content"]`, `article`, `main`, `body`}
)

// Fetch downloads an article page and extracts its title, author, and body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, model.NewInvalidConfiguration("invalid article url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; xward/1.0)")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, model.NewUpstream(http.StatusBadGateway, fmt.Sprintf("fetch article: %v", err), nil)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, model.NewUpstream(resp.StatusCode, fmt.Sprintf("article page returned %d", resp.StatusCode), map[string]any{"url": parsed.String()})
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, model.NewUpstream(http.StatusBadGateway, fmt.Sprintf("parse article page: %v", err), nil)
	}

	art := &Article{
		Title:   firstText(doc, titleSelectors),
		Author:  firstText(doc, authorSelectors),
		Content: firstText(doc, contentSelectors),
		URL:     parsed.String(),
	}
	if art.Content == "" {
		return nil, model.NewUpstream(http.StatusBadGateway, "no article content found on page", map[string]any{"url": parsed.String()})
	}

	f.logger.Debug("article extracted",
		zap.String("url", parsed.String()),
		zap.Int("content_length", len(art.Content)))
	return art, nil
}

// firstText returns the first selector with non-empty text. Meta tags yield
// their content attribute instead of inner text.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		var text string
		if strings.HasPrefix(sel, "meta") {
			text, _ = node.Attr("content")
		} else {
			text = node.Text()
		}
		text = strings.Join(strings.Fields(text), " ")
		if text != "" {
			return text
		}
	}
	return ""
}
