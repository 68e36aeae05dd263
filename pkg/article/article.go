// Package article fetches a web page and extracts its readable text with
// go-readability, dropping ruby annotations first so readings embedded in
// the page do not end up duplicated in the extracted text.
package article

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const (
	defaultMaxBodySize = 10 * 1024 * 1024 // 10 MB
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Article is the extracted content of a page.
type Article struct {
	URL         string
	Title       string
	Byline      string
	SiteName    string
	TextContent string
}

// Fetcher downloads and extracts articles. The zero value is usable.
type Fetcher struct {
	Client       *http.Client
	UserAgent    string
	MaxBodyBytes int64
}

// NewFetcher returns a Fetcher with the given timeout, user agent and body limit.
func NewFetcher(timeout time.Duration, userAgent string, maxBody int64) *Fetcher {
	return &Fetcher{
		Client:       &http.Client{Timeout: timeout},
		UserAgent:    userAgent,
		MaxBodyBytes: maxBody,
	}
}

// Fetch downloads rawURL and extracts its article text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Article, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return Article{}, fmt.Errorf("parse url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return Article{}, fmt.Errorf("unsupported url scheme %q", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Article{}, fmt.Errorf("create request: %w", err)
	}
	// Some news sites block non-browser agents.
	req.Header.Set("User-Agent", f.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-TW,zh;q=0.9,ja;q=0.8,en-US;q=0.7")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("fetch url: unexpected status %d", resp.StatusCode)
	}

	limit := f.maxBody()
	if resp.ContentLength > limit {
		return Article{}, fmt.Errorf("content-length %d exceeds limit of %d bytes", resp.ContentLength, limit)
	}
	// Read one byte past the limit to tell a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return Article{}, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return Article{}, fmt.Errorf("response body exceeded maximum size of %d bytes", limit)
	}

	return Extract(body, parsedURL)
}

// Extract runs readability over an HTML document.
func Extract(html []byte, pageURL *url.URL) (Article, error) {
	parsed, err := readability.FromReader(bytes.NewReader(SanitizeRuby(html)), pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}
	a := Article{
		Title:       parsed.Title,
		Byline:      parsed.Byline,
		SiteName:    parsed.SiteName,
		TextContent: strings.TrimSpace(parsed.TextContent),
	}
	if pageURL != nil {
		a.URL = pageURL.String()
	}
	return a, nil
}

func (f *Fetcher) userAgent() string {
	if f.UserAgent != "" {
		return f.UserAgent
	}
	return defaultUserAgent
}

func (f *Fetcher) maxBody() int64 {
	if f.MaxBodyBytes > 0 {
		return f.MaxBodyBytes
	}
	return defaultMaxBodySize
}

// rubyAnnotation matches an <rt> or <rp> element and its content, across
// line breaks and in any letter case.
var rubyAnnotation = regexp.MustCompile(`(?is)<rt\b[^>]*>.*?</rt\s*>|<rp\b[^>]*>.*?</rp\s*>`)

// SanitizeRuby drops ruby annotations (<rt> readings and <rp> fallback
// parentheses) and keeps the base text, so "<ruby>漢字<rt>かんじ</rt></ruby>"
// extracts as "漢字" rather than "漢字かんじ".
func SanitizeRuby(content []byte) []byte {
	return rubyAnnotation.ReplaceAll(content, nil)
}
