package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() *Options {
	return &Options{
		Timeout:        5 * time.Second,
		UserAgent:      DefaultUserAgent,
		DisableBrowser: true,
	}
}

func TestJobDescription_ExtractsFromDescriptionContainer(t *testing.T) {
	body := `<html><body>
		<nav>Home | Jobs</nav>
		<div class="job-description">Senior Go engineer. ` + strings.Repeat("Build distributed systems. ", 30) + `</div>
		<footer>Copyright</footer>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	text, err := JobDescription(context.Background(), srv.URL, testOptions())
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Go engineer")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Copyright")
}

func TestJobDescription_FallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + strings.Repeat("plain posting text ", 50) + "</p></body></html>"))
	}))
	defer srv.Close()

	text, err := JobDescription(context.Background(), srv.URL, testOptions())
	require.NoError(t, err)
	assert.Contains(t, text, "plain posting text")
}

func TestJobDescription_InvalidURL(t *testing.T) {
	_, err := JobDescription(context.Background(), "not-a-url", testOptions())
	var fErr *FetchError
	require.ErrorAs(t, err, &fErr)
	assert.Contains(t, fErr.Message, "invalid URL")
}

func TestJobDescription_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := JobDescription(context.Background(), srv.URL, testOptions())
	var fErr *FetchError
	require.ErrorAs(t, err, &fErr)
	assert.Contains(t, fErr.Message, "404")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("short snippet"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", 600)))
}

func TestExtractPostingText_StripsNoise(t *testing.T) {
	html := `<html><body>
		<script>var x = 1;</script>
		<div class="cookie-banner">Accept cookies</div>
		<main>Role description here</main>
	</body></html>`

	text, err := ExtractPostingText(html)
	require.NoError(t, err)
	assert.Equal(t, "Role description here", text)
}

func TestCleanText(t *testing.T) {
	input := "  Line one   has \t spaces  \n\n\n\n Line two \n"
	assert.Equal(t, "Line one has spaces\n\nLine two", CleanText(input))
}
