package translation

import "sync"

// TranslationCache stores resolved senses in memory for the session
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string][]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string][]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(text string, senses []string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[text] = append([]string(nil), senses...)
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(text string) ([]string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	senses, ok := tc.translations[text]
	if !ok {
		return nil, false
	}
	return append([]string(nil), senses...), true
}

// Len returns the number of cached entries
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.translations)
}
