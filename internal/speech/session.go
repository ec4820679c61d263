package speech

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// defaultVoiceWait bounds how long an utterance waits for a catalog that
// has not signalled readiness yet before it falls back to the engine default.
const defaultVoiceWait = 2 * time.Second

// Session plays utterances one at a time. A new Speak cancels the
// utterance in flight; requests are never queued.
type Session struct {
	engine    Engine
	logger    *slog.Logger
	voiceWait time.Duration

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{} // closed when the latest utterance has finished
	speaking   bool
	onStart    func()
	onEnd      func(err error)
}

// NewSession creates a session speaking through engine.
func NewSession(engine Engine, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	done := make(chan struct{})
	close(done)
	return &Session{
		engine:    engine,
		logger:    logger,
		voiceWait: defaultVoiceWait,
		done:      done,
	}
}

// SetCallbacks sets the lifecycle callbacks. They run on the playback
// goroutine, so GUI code must hop back to its own thread.
func (s *Session) SetCallbacks(onStart func(), onEnd func(err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStart = onStart
	s.onEnd = onEnd
}

// Speak reads text at the given rate, replacing anything currently playing.
// Blank text is ignored.
func (s *Session) Speak(text string, rate float64) {
	if strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	previous := s.done
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	go s.run(ctx, gen, previous, done, NewUtterance(text, rate))
}

func (s *Session) run(ctx context.Context, gen uint64, previous <-chan struct{}, done chan<- struct{}, u Utterance) {
	defer close(done)

	// The superseded utterance must have released the audio device.
	<-previous

	wctx, cancel := context.WithTimeout(ctx, s.voiceWait)
	voices, err := LoadVoices(wctx, s.engine.Catalog())
	cancel()
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.logger.Warn("Voice list unavailable, using engine default", slog.String("error", err.Error()))
	}
	if v, ok := Select(voices); ok {
		u.Voice = &v
		s.logger.Debug("Selected voice", slog.String("voice", v.Name), slog.String("lang", v.Lang))
	}

	onStart, ok := s.begin(gen)
	if !ok {
		return
	}
	if onStart != nil {
		onStart()
	}

	err = s.engine.Speak(ctx, u)
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return
	}
	if err != nil {
		s.logger.Error("Speech failed",
			slog.String("engine", s.engine.Name()),
			slog.String("error", err.Error()))
	}
	s.finish(gen, err)
}

func (s *Session) begin(gen uint64) (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return nil, false
	}
	s.speaking = true
	return s.onStart, true
}

func (s *Session) finish(gen uint64, err error) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.speaking = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	onEnd := s.onEnd
	s.mu.Unlock()

	if onEnd != nil {
		onEnd(err)
	}
}

// Stop cancels the utterance in flight, if any.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	wasSpeaking := s.speaking
	s.speaking = false
	onEnd := s.onEnd
	s.mu.Unlock()

	if wasSpeaking && onEnd != nil {
		onEnd(context.Canceled)
	}
}

// Speaking reports whether an utterance is currently playing.
func (s *Session) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// Wait blocks until the latest utterance has finished or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
