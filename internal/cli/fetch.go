package cli

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/runnerr0/linkpad/internal/config"
)

// titleRe extracts the contents of the first <title> element.
var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// maxTitleBytes bounds how much of a page is read looking for a title.
const maxTitleBytes = 256 << 10

// newFetchClient builds the HTTP client used for title fetching.
func newFetchClient(cfg *config.Config) *http.Client {
	timeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// fetchTitle downloads a webpage and extracts its <title> text.
func fetchTitle(client *http.Client, rawURL, userAgent string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTitleBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}

	m := titleRe.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("no title element in %s", rawURL)
	}

	return collapseWhitespace(html.UnescapeString(string(m[1]))), nil
}

// collapseWhitespace trims and squeezes runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
