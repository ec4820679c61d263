package translation

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	// MaxSenses caps the number of senses returned for a word.
	MaxSenses = 5

	// Unavailable is returned alone when no provider could translate a
	// sentence or Korean input.
	Unavailable = "번역할 수 없습니다."

	maxAlternates = 3
)

// Resolver turns user input into an ordered list of distinct translations.
type Resolver struct {
	primary  Provider
	fallback Provider
	dict     *SenseDictionary
	cache    *TranslationCache
	logger   *slog.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithDictionary replaces the built-in sense dictionary. nil disables it.
func WithDictionary(d *SenseDictionary) Option {
	return func(r *Resolver) { r.dict = d }
}

// WithCache remembers successful resolutions for the lifetime of c.
func WithCache(c *TranslationCache) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithLogger sets the logger used for provider diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver that asks primary first and fallback second.
// Either provider may be nil.
func NewResolver(primary, fallback Provider, opts ...Option) *Resolver {
	r := &Resolver{
		primary:  primary,
		fallback: fallback,
		dict:     MustDefaultDictionary(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the candidate translations for text. It never fails:
// sentences and Korean input yield one translation or Unavailable, English
// words yield up to MaxSenses senses or an empty slice.
func (r *Resolver) Resolve(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if r.cache != nil {
		if senses, ok := r.cache.Get(text); ok {
			return senses
		}
	}

	var senses []string
	var answered bool
	source, target := Direction(text)
	if source == LangKorean || IsSentence(text) {
		senses = r.resolveSingle(ctx, text, source, target)
		answered = !IsUnavailable(senses)
	} else {
		senses, answered = r.resolveWord(ctx, text)
	}

	// Results built without any provider answer are not kept, so a retry
	// after a network failure reaches the providers again.
	if r.cache != nil && answered && len(senses) > 0 {
		r.cache.Add(text, senses)
	}
	return senses
}

// IsUnavailable reports whether senses is the "no translation" marker.
func IsUnavailable(senses []string) bool {
	return len(senses) == 1 && senses[0] == Unavailable
}

// resolveSingle asks each provider in turn and returns the first answer.
func (r *Resolver) resolveSingle(ctx context.Context, text, source, target string) []string {
	for _, p := range []Provider{r.primary, r.fallback} {
		res := r.translate(ctx, p, text, source, target)
		if res != nil && res.Text != "" {
			return []string{res.Text}
		}
	}
	return []string{Unavailable}
}

// resolveWord gathers senses from every source. Providers are queried in
// parallel; the merge order is fixed afterwards. answered reports whether
// at least one provider delivered a translation.
func (r *Resolver) resolveWord(ctx context.Context, text string) (senses []string, answered bool) {
	var primary, fallback *Result

	var g errgroup.Group
	g.Go(func() error {
		primary = r.translate(ctx, r.primary, text, LangEnglish, LangKorean)
		return nil
	})
	g.Go(func() error {
		fallback = r.translate(ctx, r.fallback, text, LangEnglish, LangKorean)
		return nil
	})
	_ = g.Wait()

	if primary != nil {
		if primary.Text != "" {
			senses = appendIfAbsent(senses, primary.Text)
			answered = true
		}

		alternates := primary.Alternates
		if len(alternates) > maxAlternates {
			alternates = alternates[:maxAlternates]
		}
		for _, alt := range alternates {
			senses = appendIfNotContained(senses, alt)
		}
	}

	if fallback != nil && fallback.Text != "" {
		senses = appendIfAbsent(senses, fallback.Text)
		answered = true
	}

	if extra, ok := r.dict.Lookup(text); ok {
		for _, sense := range extra {
			senses = appendIfNotContained(senses, sense)
		}
	}

	senses = dedupe(senses)
	if len(senses) > MaxSenses {
		senses = senses[:MaxSenses]
	}
	if senses == nil {
		return []string{}, answered
	}
	return senses, answered
}

// translate calls p and logs failures instead of returning them. A failed
// answer that still carries alternates yields a Result with empty Text.
func (r *Resolver) translate(ctx context.Context, p Provider, text, source, target string) *Result {
	if p == nil {
		return nil
	}
	res, err := p.Translate(ctx, text, source, target)
	if err != nil {
		r.logger.Warn("translation provider failed",
			slog.String("provider", p.Name()),
			slog.String("langpair", source+"|"+target),
			slog.String("error", err.Error()))

		var perr *ProviderError
		if errors.As(err, &perr) && len(perr.Alternates) > 0 {
			return &Result{Alternates: perr.Alternates}
		}
		return nil
	}
	if res == nil || res.Text == "" {
		r.logger.Warn("translation provider returned nothing", slog.String("provider", p.Name()))
		return nil
	}
	return res
}

// appendIfAbsent appends s unless an equal entry exists.
func appendIfAbsent(senses []string, s string) []string {
	for _, existing := range senses {
		if existing == s {
			return senses
		}
	}
	return append(senses, s)
}

// appendIfNotContained appends s unless an existing entry contains it.
func appendIfNotContained(senses []string, s string) []string {
	if s == "" {
		return senses
	}
	for _, existing := range senses {
		if strings.Contains(existing, s) {
			return senses
		}
	}
	return append(senses, s)
}

// dedupe removes exact duplicates keeping the first occurrence.
func dedupe(senses []string) []string {
	seen := make(map[string]struct{}, len(senses))
	out := senses[:0]
	for _, s := range senses {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
