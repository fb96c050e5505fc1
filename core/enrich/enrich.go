// Package enrich fetches link metadata and page text to ground the intent
// resolver's prompt. Everything here is best-effort: a slow, unreachable or
// malformed page yields nil, never an error.
package enrich

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mudler/xlog"
	"jaytaylor.com/html2text"

	"github.com/actually-app/actually/core/types"
)

const (
	DefaultMetadataTimeout = 6 * time.Second
	DefaultContentTimeout  = 8 * time.Second

	maxBodyBytes   = 2 << 20
	maxContentRune = 5000
)

var (
	titleRx   = regexp.MustCompile(`(?is)<title[^>]*>([^<]*)</title>`)
	descRx    = regexp.MustCompile(`(?is)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`)
	ogDescRx  = regexp.MustCompile(`(?is)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)
	ogImageRx = regexp.MustCompile(`(?is)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
	spaceRx   = regexp.MustCompile(`\s+`)
)

type Fetcher struct {
	client *http.Client

	MetadataTimeout time.Duration
	ContentTimeout  time.Duration
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client:          &http.Client{},
		MetadataTimeout: DefaultMetadataTimeout,
		ContentTimeout:  DefaultContentTimeout,
	}
}

// FetchMetadata retrieves title, description and og:image for a URL within a
// 6 second budget. Returns nil on any failure.
func (f *Fetcher) FetchMetadata(ctx context.Context, rawURL string) *types.LinkMetadata {
	ctx, cancel := context.WithTimeout(ctx, f.MetadataTimeout)
	defer cancel()

	html, ok := f.get(ctx, rawURL)
	if !ok {
		return nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	title := matchMeta(html, titleRx)
	if title == "" {
		title = rawURL
	}
	description := matchMeta(html, descRx)
	if description == "" {
		description = matchMeta(html, ogDescRx)
	}

	return &types.LinkMetadata{
		URL:         rawURL,
		Title:       title,
		Description: description,
		Image:       matchMeta(html, ogImageRx),
		Domain:      parsed.Hostname(),
	}
}

// FetchPageContent retrieves a plain-text excerpt of the page within an
// 8 second budget, truncated to 5000 characters. Returns nil on any failure.
func (f *Fetcher) FetchPageContent(ctx context.Context, rawURL string) *types.PageContent {
	ctx, cancel := context.WithTimeout(ctx, f.ContentTimeout)
	defer cancel()

	html, ok := f.get(ctx, rawURL)
	if !ok {
		return nil
	}

	text, err := html2text.FromString(html, html2text.Options{TextOnly: true})
	if err != nil {
		xlog.Debug("Page text extraction failed", "url", rawURL, "error", err)
		return nil
	}
	text = strings.TrimSpace(spaceRx.ReplaceAllString(text, " "))
	if runes := []rune(text); len(runes) > maxContentRune {
		text = string(runes[:maxContentRune])
	}

	return &types.PageContent{
		Title:       matchMeta(html, titleRx),
		Description: matchMeta(html, descRx),
		Text:        text,
	}
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false
	}

	res, err := f.client.Do(req)
	if err != nil {
		xlog.Debug("Link fetch failed", "url", rawURL, "error", err)
		return "", false
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return "", false
	}
	return string(body), true
}

func matchMeta(html string, rx *regexp.Regexp) string {
	m := rx.FindStringSubmatch(html)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
