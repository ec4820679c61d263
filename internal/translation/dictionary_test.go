package translation

import (
	"reflect"
	"testing"
)

func TestDefaultDictionary(t *testing.T) {
	dict, err := DefaultDictionary()
	if err != nil {
		t.Fatalf("DefaultDictionary() error = %v", err)
	}

	if dict.Len() != 80 {
		t.Errorf("Expected 80 headwords, got %d", dict.Len())
	}

	again := MustDefaultDictionary()
	if again != dict {
		t.Error("Expected the dictionary to be loaded only once")
	}
}

func TestDictionaryLookup(t *testing.T) {
	dict := MustDefaultDictionary()

	tests := []struct {
		name     string
		word     string
		expected []string
		found    bool
	}{
		{"exact", "run", []string{"달리다", "운영하다", "작동하다", "흐르다"}, true},
		{"upper case", "RUN", []string{"달리다", "운영하다", "작동하다", "흐르다"}, true},
		{"padded", "  kill ", []string{"죽이다", "살해하다", "끄다", "시간을 보내다"}, true},
		{"missing", "apple", nil, false},
		{"empty", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dict.Lookup(tt.word)
			if ok != tt.found {
				t.Fatalf("Lookup(%q) found = %v, want %v", tt.word, ok, tt.found)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Lookup(%q) = %v, want %v", tt.word, got, tt.expected)
			}
		})
	}
}

func TestDictionaryLookupReturnsCopy(t *testing.T) {
	dict := MustDefaultDictionary()

	senses, _ := dict.Lookup("play")
	senses[0] = "modified"

	again, _ := dict.Lookup("play")
	if again[0] != "놀다" {
		t.Error("Dictionary was modified through returned slice")
	}
}

func TestParseDictionary(t *testing.T) {
	dict, err := ParseDictionary([]byte("Jump: [\"뛰다\", \"점프하다\"]\n\"\": [\"x\"]\n"))
	if err != nil {
		t.Fatalf("ParseDictionary() error = %v", err)
	}
	if dict.Len() != 1 {
		t.Errorf("Expected 1 headword, got %d", dict.Len())
	}
	if got, ok := dict.Lookup("jump"); !ok || len(got) != 2 {
		t.Errorf("Lookup(jump) = %v, %v", got, ok)
	}

	if _, err := ParseDictionary([]byte("run: {not: [a list")); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestNilDictionary(t *testing.T) {
	var dict *SenseDictionary
	if _, ok := dict.Lookup("run"); ok {
		t.Error("Expected nil dictionary lookups to miss")
	}
	if dict.Len() != 0 {
		t.Error("Expected nil dictionary to be empty")
	}
}
