package speech

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// Rate presets offered next to each card.
const (
	RateSlow   = 0.7
	RateNormal = 1.0
	RateFast   = 1.3
)

// Fixed playback parameters.
const (
	DefaultLang   = "en-US"
	DefaultPitch  = 1.2
	DefaultVolume = 1.0
)

// Utterance is one request to read text aloud. Rate, Pitch and Volume are
// relative to the engine's normal setting (1.0).
type Utterance struct {
	Text   string
	Lang   string
	Rate   float64
	Pitch  float64
	Volume float64
	Voice  *Voice // nil means the engine default voice
}

// NewUtterance returns an utterance with the standard learner settings.
func NewUtterance(text string, rate float64) Utterance {
	if rate <= 0 {
		rate = RateNormal
	}
	return Utterance{
		Text:   strings.TrimSpace(text),
		Lang:   DefaultLang,
		Rate:   rate,
		Pitch:  DefaultPitch,
		Volume: DefaultVolume,
	}
}

// Engine is a text-to-speech backend.
type Engine interface {
	// Speak reads the utterance aloud and blocks until playback has
	// finished. Cancelling ctx stops playback.
	Speak(ctx context.Context, u Utterance) error

	// Name returns the engine name
	Name() string

	// IsAvailable checks if the engine is configured and installed
	IsAvailable() error

	// Catalog returns the voices the engine offers
	Catalog() Catalog
}

// Config selects and configures an engine.
type Config struct {
	Engine string // "auto", "espeak", "say" or "openai"

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIModel       string // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string // used when no voice was selected
	OpenAIInstruction string // Voice instructions for gpt-4o-mini-tts model
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine:            "auto",
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "nova",
		OpenAIInstruction: "You are reading English vocabulary to a young Korean learner. Use a bright, friendly American English voice and pronounce every word clearly.",
	}
}

// NewEngine creates the engine named in cfg. "auto" prefers OpenAI when a
// key is configured, with the local engine as fallback, and otherwise uses
// the local engine of the platform.
func NewEngine(cfg *Config, logger *slog.Logger) (Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Engine {
	case "espeak":
		return NewESpeakEngine(logger), nil
	case "say":
		return NewSayEngine(logger), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIEngine(cfg, logger)
	case "", "auto":
		local := localEngine(logger)
		if cfg.OpenAIKey == "" {
			return local, nil
		}
		remote, err := NewOpenAIEngine(cfg, logger)
		if err != nil {
			return nil, err
		}
		return NewEngineWithFallback(remote, local, logger), nil
	default:
		return nil, fmt.Errorf("unknown speech engine: %s", cfg.Engine)
	}
}

func localEngine(logger *slog.Logger) Engine {
	if runtime.GOOS == "darwin" {
		return NewSayEngine(logger)
	}
	return NewESpeakEngine(logger)
}

// EngineWithFallback wraps a primary engine with a fallback option
type EngineWithFallback struct {
	primary  Engine
	fallback Engine
	logger   *slog.Logger
}

// NewEngineWithFallback creates an engine that falls back to secondary if primary fails
func NewEngineWithFallback(primary, fallback Engine, logger *slog.Logger) *EngineWithFallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &EngineWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Speak tries the primary engine first. The fallback gets its own voice
// selection since voice identifiers differ between engines.
func (e *EngineWithFallback) Speak(ctx context.Context, u Utterance) error {
	err := e.primary.Speak(ctx, u)
	if err == nil || ctx.Err() != nil {
		return err
	}

	e.logger.Warn("Primary speech engine failed, falling back",
		slog.String("primary", e.primary.Name()),
		slog.String("fallback", e.fallback.Name()),
		slog.String("error", err.Error()))

	u.Voice = nil
	if voices, lerr := LoadVoices(ctx, e.fallback.Catalog()); lerr == nil {
		if v, ok := Select(voices); ok {
			u.Voice = &v
		}
	}
	return e.fallback.Speak(ctx, u)
}

func (e *EngineWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", e.primary.Name(), e.fallback.Name())
}

// IsAvailable checks if at least one engine is available
func (e *EngineWithFallback) IsAvailable() error {
	primaryErr := e.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := e.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both engines unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

// Catalog returns the primary engine's voices.
func (e *EngineWithFallback) Catalog() Catalog {
	return e.primary.Catalog()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
