package translation

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed senses.yaml
var sensesYAML []byte

// SenseDictionary maps a lower-cased English headword to extra Korean senses.
// It is read-only once loaded.
type SenseDictionary struct {
	entries map[string][]string
}

var (
	defaultDictOnce sync.Once
	defaultDict     *SenseDictionary
	defaultDictErr  error
)

// DefaultDictionary returns the built-in dictionary, decoding it on first use.
func DefaultDictionary() (*SenseDictionary, error) {
	defaultDictOnce.Do(func() {
		defaultDict, defaultDictErr = ParseDictionary(sensesYAML)
	})
	return defaultDict, defaultDictErr
}

// MustDefaultDictionary is like DefaultDictionary but panics if the embedded
// table is malformed.
func MustDefaultDictionary() *SenseDictionary {
	dict, err := DefaultDictionary()
	if err != nil {
		panic(err)
	}
	return dict
}

// ParseDictionary decodes a YAML mapping of headword to sense list.
func ParseDictionary(data []byte) (*SenseDictionary, error) {
	raw := make(map[string][]string)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse sense dictionary: %w", err)
	}

	d := &SenseDictionary{
		entries: make(map[string][]string, len(raw)),
	}
	for word, senses := range raw {
		key := d.key(word)
		if key == "" {
			continue
		}
		d.entries[key] = append([]string(nil), senses...)
	}
	return d, nil
}

// Lookup returns a copy of the senses listed for word.
func (d *SenseDictionary) Lookup(word string) ([]string, bool) {
	if d == nil {
		return nil, false
	}
	senses, ok := d.entries[d.key(word)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), senses...), true
}

// Len returns the number of headwords.
func (d *SenseDictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// key normalises a headword. A Caser is not safe for concurrent use, so each
// call gets its own.
func (d *SenseDictionary) key(word string) string {
	return cases.Lower(language.English).String(strings.TrimSpace(word))
}
