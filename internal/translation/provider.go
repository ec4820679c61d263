package translation

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Language codes understood by both providers.
const (
	LangEnglish = "en"
	LangKorean  = "ko"
)

const defaultTimeout = 10 * time.Second

// Result is a single provider answer.
type Result struct {
	Text       string   // Primary translation
	Alternates []string // Additional candidate translations, best first
}

// Provider translates text between two languages.
type Provider interface {
	// Translate returns the translation of text from source to target language
	Translate(ctx context.Context, text, source, target string) (*Result, error)

	// Name returns the provider name
	Name() string
}

// ProviderError represents an unusable response from a translation provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string

	// Alternates found in an otherwise unusable answer
	Alternates []string
}

func (e *ProviderError) Error() string {
	if e.Code == "" {
		return e.Provider + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (status %s)", e.Provider, e.Message, e.Code)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
