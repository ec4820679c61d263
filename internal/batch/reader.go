package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one line of a batch file.
type Entry struct {
	Text string
	// Senses given in the file; empty means the text still needs resolving
	Senses []string
}

// NeedsResolve reports whether the entry came without senses.
func (e Entry) NeedsResolve() bool {
	return len(e.Senses) == 0
}

// ReadBatchFile reads one word or sentence per line.
// Supports formats:
// - Text only: "run" or "사과" (senses are resolved online)
// - With senses: "run = 달리다, 운영하다" (used as given)
// Blank lines and lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Parse(string(content)), nil
}

// Parse reads batch entries from s.
func Parse(s string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		text, senses, found := strings.Cut(line, "=")
		if !found {
			entries = append(entries, Entry{Text: line})
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			// Ignore lines with an empty text part
			continue
		}
		entries = append(entries, Entry{Text: text, Senses: splitSenses(senses)})
	}
	return entries
}

// Texts returns the text of every entry.
func Texts(entries []Entry) []string {
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	return texts
}

func splitSenses(s string) []string {
	var senses []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			senses = append(senses, part)
		}
	}
	return senses
}
