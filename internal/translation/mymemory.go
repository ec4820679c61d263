package translation

import (
	"bytes"
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

// DefaultMyMemoryURL is the public MyMemory endpoint.
const DefaultMyMemoryURL = "https://api.mymemory.translated.net"

// MyMemoryClient queries the MyMemory translation memory service.
type MyMemoryClient struct {
	baseURL    string
	httpClient *http.Client
}

// myMemoryResponse represents the API response structure
type myMemoryResponse struct {
	ResponseData *struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus statusCode `json:"responseStatus"`
	Matches        []struct {
		Translation string `json:"translation"`
	} `json:"matches"`
}

// statusCode accepts both 200 and "200"; the service is not consistent.
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid responseStatus %q: %w", data, err)
	}
	*s = statusCode(n)
	return nil
}

// NewMyMemoryClient creates a client for baseURL (DefaultMyMemoryURL when empty).
func NewMyMemoryClient(baseURL string, timeout time.Duration) *MyMemoryClient {
	if baseURL == "" {
		baseURL = DefaultMyMemoryURL
	}
	return &MyMemoryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

// Translate implements Provider
func (c *MyMemoryClient) Translate(ctx context.Context, text, source, target string) (*Result, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", source+"|"+target)

	reqURL := c.baseURL + "/get?" + params.Encode()
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

	var mmResp myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&mmResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var alternates []string
	for _, match := range mmResp.Matches {
		if match.Translation != "" {
			alternates = append(alternates, match.Translation)
		}
	}

	if mmResp.ResponseStatus != http.StatusOK || mmResp.ResponseData == nil {
		return nil, &ProviderError{
			Provider:   c.Name(),
			Code:       strconv.Itoa(int(mmResp.ResponseStatus)),
			Message:    "unsuccessful response",
			Alternates: alternates,
		}
	}
	if mmResp.ResponseData.TranslatedText == "" {
		return nil, &ProviderError{Provider: c.Name(), Message: "empty translation", Alternates: alternates}
	}

	result := &Result{Text: mmResp.ResponseData.TranslatedText, Alternates: alternates}
	return result, nil
}

// Name returns the provider name
func (c *MyMemoryClient) Name() string {
	return "mymemory"
}
