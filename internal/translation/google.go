package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultGoogleURL is the public endpoint used by the Google Translate web widget.
const DefaultGoogleURL = "https://translate.googleapis.com"

// GoogleClient queries the keyless "gtx" Google Translate endpoint.
type GoogleClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogleClient creates a client for baseURL (DefaultGoogleURL when empty).
func NewGoogleClient(baseURL string, timeout time.Duration) *GoogleClient {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	return &GoogleClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

// Translate implements Provider. Only the first segment of the answer is used.
func (c *GoogleClient) Translate(ctx context.Context, text, source, target string) (*Result, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	reqURL := c.baseURL + "/translate_a/single?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ProviderError{
			Provider: c.Name(),
			Code:     strconv.Itoa(resp.StatusCode),
			Message:  strings.TrimSpace(string(body)),
		}
	}

	var payload []any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	translation, ok := firstSegment(payload)
	if !ok {
		return nil, &ProviderError{Provider: c.Name(), Message: "unexpected response shape"}
	}
	return &Result{Text: translation}, nil
}

// Name returns the provider name
func (c *GoogleClient) Name() string {
	return "google"
}

// firstSegment extracts payload[0][0][0] as a non-empty string.
func firstSegment(payload []any) (string, bool) {
	if len(payload) == 0 {
		return "", false
	}
	segments, ok := payload[0].([]any)
	if !ok || len(segments) == 0 {
		return "", false
	}
	segment, ok := segments[0].([]any)
	if !ok || len(segment) == 0 {
		return "", false
	}
	text, ok := segment[0].(string)
	if !ok || text == "" {
		return "", false
	}
	return text, true
}
