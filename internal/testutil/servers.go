package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// TranslationStub is a fake translation endpoint. Answers are keyed by
// "<langpair or sl|tl>:<text>"; unknown keys get a 500.
type TranslationStub struct {
	Server *httptest.Server

	mu    sync.Mutex
	calls []string
}

// Calls returns the keys requested so far
func (s *TranslationStub) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// URL returns the stub base URL
func (s *TranslationStub) URL() string {
	return s.Server.URL
}

func (s *TranslationStub) record(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, key)
}

// MyMemoryAnswer describes one MyMemory reply
type MyMemoryAnswer struct {
	Status     any // responseStatus value, 200 when nil
	Text       string
	Alternates []string
	Raw        string // sent verbatim when set
}

// NewMyMemoryStub starts a fake MyMemory server
func NewMyMemoryStub(t *testing.T, answers map[string]MyMemoryAnswer) *TranslationStub {
	t.Helper()

	stub := &TranslationStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get" {
			http.NotFound(w, r)
			return
		}
		key := r.URL.Query().Get("langpair") + ":" + r.URL.Query().Get("q")
		stub.record(key)

		answer, ok := answers[key]
		if !ok {
			http.Error(w, "no stubbed answer", http.StatusInternalServerError)
			return
		}
		if answer.Raw != "" {
			w.Write([]byte(answer.Raw))
			return
		}

		status := answer.Status
		if status == nil {
			status = 200
		}
		matches := make([]map[string]any, 0, len(answer.Alternates))
		for _, alt := range answer.Alternates {
			matches = append(matches, map[string]any{"translation": alt, "quality": "74"})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"responseData":   map[string]any{"translatedText": answer.Text, "match": 1},
			"responseStatus": status,
			"matches":        matches,
		})
	}))
	t.Cleanup(stub.Server.Close)
	return stub
}

// NewGoogleStub starts a fake Google gtx server. Answers map to the
// translated text, or to a raw body when the value starts with '['.
func NewGoogleStub(t *testing.T, answers map[string]string) *TranslationStub {
	t.Helper()

	stub := &TranslationStub{}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate_a/single" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		key := q.Get("sl") + "|" + q.Get("tl") + ":" + q.Get("q")
		stub.record(key)

		answer, ok := answers[key]
		if !ok || q.Get("client") != "gtx" {
			http.Error(w, "no stubbed answer", http.StatusInternalServerError)
			return
		}
		if len(answer) > 0 && answer[0] == '[' {
			w.Write([]byte(answer))
			return
		}
		json.NewEncoder(w).Encode([]any{
			[]any{[]any{answer, q.Get("q"), nil, nil, 10}},
			nil,
			q.Get("sl"),
		})
	}))
	t.Cleanup(stub.Server.Close)
	return stub
}
