package helpers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	scrapererrors "sjsage522/contactscraper/pkg/errors"

	"golang.org/x/net/html/charset"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36"

// NewClient returns an HTTP client with the given per-request timeout
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

// FetchPage sends a single GET request and returns the body converted to UTF-8
// along with the response status code. Any status other than 200 is returned as
// a status error with a nil body; transport failures carry status 0.
func FetchPage(ctx context.Context, client *http.Client, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, scrapererrors.NewNetwork(url, "failed to create request", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-CA,fr;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, scrapererrors.NewNetwork(url, "failed to fetch URL", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, scrapererrors.NewStatus(url, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, scrapererrors.NewNetwork(url, "failed to read response body", err)
	}

	// Determine the encoding from Content-Type header and body content
	encoding, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))
	if name == "utf-8" || name == "UTF-8" {
		return bodyBytes, resp.StatusCode, nil
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes))); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read converted UTF-8 body: %w", err)
	}

	return buf.Bytes(), resp.StatusCode, nil
}
