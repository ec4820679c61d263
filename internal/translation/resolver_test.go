package translation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"codeberg.org/snonux/flashpage/internal/testutil"
)

// fakeProvider answers from a map keyed by "<source>|<target>:<text>".
type fakeProvider struct {
	name    string
	answers map[string]*Result

	mu    sync.Mutex
	calls []string
}

func (f *fakeProvider) Translate(ctx context.Context, text, source, target string) (*Result, error) {
	key := source + "|" + target + ":" + text
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	if res, ok := f.answers[key]; ok {
		return res, nil
	}
	return nil, errors.New("no answer for " + key)
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_WordAggregation(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		primary  map[string]*Result
		fallback map[string]*Result
		expected []string
	}{
		{
			name:     "run merges dictionary senses",
			word:     "run",
			primary:  map[string]*Result{"en|ko:run": {Text: "달리다"}},
			fallback: map[string]*Result{"en|ko:run": {Text: "달리다"}},
			expected: []string{"달리다", "운영하다", "작동하다", "흐르다"},
		},
		{
			name: "alternates filtered by containment",
			word: "run",
			primary: map[string]*Result{"en|ko:run": {
				Text:       "달리기 운영하다",
				Alternates: []string{"달리기", "운영", "뛰다", "경주"},
			}},
			fallback: map[string]*Result{"en|ko:run": {Text: "뛰다"}},
			// 달리기 and 운영 are inside the primary, 경주 is past the third alternate,
			// 뛰다 from the fallback is an exact duplicate.
			expected: []string{"달리기 운영하다", "뛰다", "달리다", "작동하다", "흐르다"},
		},
		{
			name:     "fallback uses exact equality",
			word:     "apple",
			primary:  map[string]*Result{"en|ko:apple": {Text: "사과나무"}},
			fallback: map[string]*Result{"en|ko:apple": {Text: "사과"}},
			expected: []string{"사과나무", "사과"},
		},
		{
			name:     "truncated to five",
			word:     "play",
			primary:  map[string]*Result{"en|ko:play": {Text: "재생", Alternates: []string{"놀이", "연극"}}},
			fallback: map[string]*Result{"en|ko:play": {Text: "플레이"}},
			expected: []string{"재생", "놀이", "연극", "플레이", "놀다"},
		},
		{
			name:     "only dictionary",
			word:     "Kill",
			expected: []string{"죽이다", "살해하다", "끄다", "시간을 보내다"},
		},
		{
			name:     "nothing at all",
			word:     "zebra",
			expected: []string{},
		},
		{
			name:     "only fallback",
			word:     "zebra",
			fallback: map[string]*Result{"en|ko:zebra": {Text: "얼룩말"}},
			expected: []string{"얼룩말"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(
				&fakeProvider{name: "a", answers: tt.primary},
				&fakeProvider{name: "b", answers: tt.fallback},
				WithLogger(quietLogger()),
			)

			got := r.Resolve(context.Background(), tt.word)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.word, got, tt.expected)
			}
			if len(got) > MaxSenses {
				t.Errorf("Resolve(%q) returned %d senses", tt.word, len(got))
			}
		})
	}
}

func TestResolve_WordQueriesEverySource(t *testing.T) {
	primary := &fakeProvider{name: "a"}
	fallback := &fakeProvider{name: "b"}
	r := NewResolver(primary, fallback, WithLogger(quietLogger()))

	r.Resolve(context.Background(), "run")

	if primary.callCount() != 1 || fallback.callCount() != 1 {
		t.Errorf("Expected one call per provider, got %d and %d", primary.callCount(), fallback.callCount())
	}
}

func TestResolve_SingleResultDirections(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		primary       map[string]*Result
		fallback      map[string]*Result
		expected      []string
		fallbackCalls int
	}{
		{
			name:          "korean uses primary",
			text:          "사과",
			primary:       map[string]*Result{"ko|en:사과": {Text: "apple", Alternates: []string{"apples"}}},
			fallback:      map[string]*Result{"ko|en:사과": {Text: "Apple"}},
			expected:      []string{"apple"},
			fallbackCalls: 0,
		},
		{
			name:          "korean falls back",
			text:          "사과",
			fallback:      map[string]*Result{"ko|en:사과": {Text: "Apple"}},
			expected:      []string{"Apple"},
			fallbackCalls: 1,
		},
		{
			name:          "korean unavailable",
			text:          "사과",
			expected:      []string{Unavailable},
			fallbackCalls: 1,
		},
		{
			name:          "english sentence uses primary",
			text:          "good morning",
			primary:       map[string]*Result{"en|ko:good morning": {Text: "좋은 아침"}},
			expected:      []string{"좋은 아침"},
			fallbackCalls: 0,
		},
		{
			name:          "long token is a sentence",
			text:          "internationalization",
			fallback:      map[string]*Result{"en|ko:internationalization": {Text: "국제화"}},
			expected:      []string{"국제화"},
			fallbackCalls: 1,
		},
		{
			name:          "sentence unavailable ignores dictionary",
			text:          "run fast",
			expected:      []string{Unavailable},
			fallbackCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fallback := &fakeProvider{name: "b", answers: tt.fallback}
			r := NewResolver(&fakeProvider{name: "a", answers: tt.primary}, fallback, WithLogger(quietLogger()))

			got := r.Resolve(context.Background(), tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.text, got, tt.expected)
			}
			if fallback.callCount() != tt.fallbackCalls {
				t.Errorf("Expected %d fallback calls, got %d", tt.fallbackCalls, fallback.callCount())
			}
		})
	}
}

func TestResolve_BlankInput(t *testing.T) {
	primary := &fakeProvider{name: "a"}
	r := NewResolver(primary, nil, WithLogger(quietLogger()))

	if got := r.Resolve(context.Background(), "   "); len(got) != 0 {
		t.Errorf("Expected no senses for blank input, got %v", got)
	}
	if primary.callCount() != 0 {
		t.Error("Expected no provider calls for blank input")
	}
}

func TestResolve_NilProvidersAndDictionary(t *testing.T) {
	r := NewResolver(nil, nil, WithDictionary(nil), WithLogger(quietLogger()))

	if got := r.Resolve(context.Background(), "run"); !reflect.DeepEqual(got, []string{}) {
		t.Errorf("Expected empty result, got %v", got)
	}
	if got := r.Resolve(context.Background(), "사과"); !IsUnavailable(got) {
		t.Errorf("Expected unavailable marker, got %v", got)
	}
}

func TestResolve_Cache(t *testing.T) {
	primary := &fakeProvider{name: "a", answers: map[string]*Result{
		"en|ko:apple": {Text: "사과"},
	}}
	cache := NewTranslationCache()
	r := NewResolver(primary, nil, WithCache(cache), WithLogger(quietLogger()))

	first := r.Resolve(context.Background(), "apple")
	second := r.Resolve(context.Background(), " apple ")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected cached result %v, got %v", first, second)
	}
	if primary.callCount() != 1 {
		t.Errorf("Expected one provider call, got %d", primary.callCount())
	}

	// Failures are not cached so a later retry can succeed.
	r.Resolve(context.Background(), "사과")
	r.Resolve(context.Background(), "사과")
	if _, ok := cache.Get("사과"); ok {
		t.Error("Unavailable result should not be cached")
	}
}

func TestResolve_FailedPrimaryKeepsAlternates(t *testing.T) {
	mm := testutil.NewMyMemoryStub(t, map[string]testutil.MyMemoryAnswer{
		"en|ko:zebra": {Status: 403, Alternates: []string{"얼룩말", "줄무늬 말"}},
	})
	r := NewResolver(
		NewMyMemoryClient(mm.URL(), time.Second),
		nil,
		WithDictionary(nil),
		WithLogger(quietLogger()),
	)

	got := r.Resolve(context.Background(), "zebra")

	expected := []string{"얼룩말", "줄무늬 말"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Resolve(zebra) = %v, want %v", got, expected)
	}
}

// recoveringProvider fails the first failures calls and answers afterwards.
type recoveringProvider struct {
	fakeProvider
	failures int
}

func (f *recoveringProvider) Translate(ctx context.Context, text, source, target string) (*Result, error) {
	res, err := f.fakeProvider.Translate(ctx, text, source, target)
	if f.callCount() <= f.failures {
		return nil, errors.New("network unreachable")
	}
	return res, err
}

func TestResolve_DictionaryOnlyResultNotCached(t *testing.T) {
	primary := &recoveringProvider{
		fakeProvider: fakeProvider{name: "a", answers: map[string]*Result{
			"en|ko:run": {Text: "뛰다"},
		}},
		failures: 1,
	}
	cache := NewTranslationCache()
	r := NewResolver(primary, nil, WithCache(cache), WithLogger(quietLogger()))

	first := r.Resolve(context.Background(), "run")
	if !reflect.DeepEqual(first, []string{"달리다", "운영하다", "작동하다", "흐르다"}) {
		t.Errorf("Expected dictionary senses while offline, got %v", first)
	}
	if _, ok := cache.Get("run"); ok {
		t.Error("Dictionary-only result should not be cached")
	}

	second := r.Resolve(context.Background(), "run")
	if primary.callCount() != 2 {
		t.Errorf("Expected the retry to reach the provider, got %d calls", primary.callCount())
	}
	if len(second) == 0 || second[0] != "뛰다" {
		t.Errorf("Expected provider sense first after recovery, got %v", second)
	}
	if _, ok := cache.Get("run"); !ok {
		t.Error("Provider-backed result should be cached")
	}
}

func TestResolve_WithHTTPProviders(t *testing.T) {
	mm := testutil.NewMyMemoryStub(t, map[string]testutil.MyMemoryAnswer{
		"en|ko:run":          {Text: "달리다"},
		"en|ko:good morning": {Text: "좋은 아침"},
	})
	gg := testutil.NewGoogleStub(t, map[string]string{
		"en|ko:run": "달리다",
		"ko|en:사과":  "apple",
	})

	r := NewResolver(
		NewMyMemoryClient(mm.URL(), time.Second),
		NewGoogleClient(gg.URL(), time.Second),
		WithLogger(quietLogger()),
	)

	tests := []struct {
		text     string
		expected []string
	}{
		{"run", []string{"달리다", "운영하다", "작동하다", "흐르다"}},
		{"good morning", []string{"좋은 아침"}},
		{"사과", []string{"apple"}},
		{"zebra", []string{}},
		{"zebra crossing", []string{Unavailable}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := r.Resolve(context.Background(), tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}

	// The Korean lookup must have tried MyMemory before Google.
	found := false
	for _, call := range mm.Calls() {
		if strings.HasPrefix(call, "ko|en:") {
			found = true
		}
	}
	if !found {
		t.Error("Expected MyMemory to be asked for the Korean lookup")
	}
}

func TestResolve_NeverDuplicates(t *testing.T) {
	primary := &fakeProvider{name: "a", answers: map[string]*Result{
		"en|ko:get": {Text: "얻다", Alternates: []string{"얻다", "얻다", "받다"}},
	}}
	fallback := &fakeProvider{name: "b", answers: map[string]*Result{
		"en|ko:get": {Text: "받다"},
	}}
	r := NewResolver(primary, fallback, WithLogger(quietLogger()))

	got := r.Resolve(context.Background(), "get")

	seen := make(map[string]bool)
	for _, s := range got {
		if seen[s] {
			t.Errorf("Duplicate sense %q in %v", s, got)
		}
		seen[s] = true
	}
	expected := []string{"얻다", "받다", "가져오다", "이해하다", "도착하다"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Resolve(get) = %v, want %v", got, expected)
	}
}

func TestIsUnavailable(t *testing.T) {
	if !IsUnavailable([]string{Unavailable}) {
		t.Error("Expected marker to be recognised")
	}
	if IsUnavailable(nil) || IsUnavailable([]string{}) || IsUnavailable([]string{Unavailable, "x"}) {
		t.Error("Expected only the single marker to be recognised")
	}
}
