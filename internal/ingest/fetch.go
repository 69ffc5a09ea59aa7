// Package ingest retrieves job posting text from URLs so users can point the
// generator at a listing instead of pasting its description. Static pages are
// fetched over plain HTTP; JavaScript-rendered postings fall back to a
// headless browser.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeForge/1.0)"

// jobContentSelectors are tried in order when locating the posting body.
// Generic job boards tend to mark the description with one of these.
var jobContentSelectors = []string{
	".job-description",
	".jobDescriptionContent",
	"[data-testid='jobDescriptionText']",
	".description",
	"article",
	"main",
}

// FetchError represents an error retrieving a job posting.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Options configures fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// BrowserTimeout bounds headless rendering when the fallback kicks in.
	BrowserTimeout time.Duration
	// DisableBrowser skips the headless fallback entirely.
	DisableBrowser bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		BrowserTimeout: 60 * time.Second,
	}
}

// JobDescription fetches a job posting URL and returns its description text.
// When plain HTTP yields too little text the page is re-rendered in a
// headless browser before extraction.
func JobDescription(ctx context.Context, urlStr string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	html, err := fetchHTML(ctx, urlStr, opts)
	if err != nil {
		return "", err
	}

	text, err := ExtractPostingText(html)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to extract posting text", Cause: err}
	}

	if ShouldUseBrowser(text) && !opts.DisableBrowser {
		rendered, browserErr := renderWithBrowser(ctx, urlStr, opts.BrowserTimeout)
		if browserErr == nil {
			if renderedText, extractErr := ExtractPostingText(rendered); extractErr == nil && len(renderedText) > len(text) {
				text = renderedText
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", &FetchError{URL: urlStr, Message: "page contains no extractable text"}
	}
	return text, nil
}

func fetchHTML(ctx context.Context, urlStr string, opts *Options) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &FetchError{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return string(body), nil
}

// ExtractPostingText parses HTML and returns the job posting body text. Noise
// elements are stripped first; if no known description container matches, the
// whole body is used.
func ExtractPostingText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .sidebar, .cookie-banner, .popup").Remove()

	for _, selector := range jobContentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return CleanText(sel.Text()), nil
		}
	}
	return CleanText(doc.Find("body").Text()), nil
}

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
)

// CleanText collapses runs of whitespace left behind by HTML extraction.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	}
	joined := strings.Join(lines, "\n")
	joined = blankLines.ReplaceAllString(joined, "\n\n")
	return strings.TrimSpace(joined)
}
