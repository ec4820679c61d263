package image

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Download fetches the picture at url and attaches it with the same checks
// as FromBytes. maxBytes <= 0 means MaxSizeBytes.
func Download(ctx context.Context, client *http.Client, rawURL string, maxBytes int64) (*Attachment, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 || maxBytes > MaxSizeBytes {
		maxBytes = MaxSizeBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	data, err := readLimited(resp.Body, maxBytes)
	if err != nil {
		return nil, err
	}
	return FromBytes(fileNameFromURL(rawURL), data)
}

// fileNameFromURL returns the last path element of rawURL, or "" when it
// does not look like a file name.
func fileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if !strings.Contains(name, ".") || name == "." {
		return ""
	}
	return name
}
