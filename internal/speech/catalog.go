package speech

import (
	"context"
	"log/slog"
	"sync"
)

// Catalog exposes the voices an engine can speak with. Platforms often
// populate their voice list asynchronously, so Voices may be empty at
// first. Ready is closed exactly once after the list has been populated and
// never returns nil.
type Catalog interface {
	Voices() []Voice
	Ready() <-chan struct{}
}

// LoadVoices returns the catalog's voices. When the synchronous list is
// empty it waits for the readiness signal (or ctx) and queries again.
// Catalogs that record an enumeration error report it when no voices came
// back. Nothing is cached between calls.
func LoadVoices(ctx context.Context, c Catalog) ([]Voice, error) {
	if c == nil {
		return nil, nil
	}
	if voices := c.Voices(); len(voices) > 0 {
		return voices, nil
	}

	select {
	case <-c.Ready():
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	voices := c.Voices()
	if len(voices) == 0 {
		if ec, ok := c.(interface{ Err() error }); ok && ec.Err() != nil {
			return nil, ec.Err()
		}
	}
	return voices, nil
}

// StaticCatalog is a fixed voice list that is ready immediately.
type StaticCatalog struct {
	voices []Voice
	ready  chan struct{}
}

// NewStaticCatalog returns a catalog holding a copy of voices.
func NewStaticCatalog(voices ...Voice) *StaticCatalog {
	ready := make(chan struct{})
	close(ready)
	return &StaticCatalog{
		voices: append([]Voice(nil), voices...),
		ready:  ready,
	}
}

func (c *StaticCatalog) Voices() []Voice {
	return append([]Voice(nil), c.voices...)
}

func (c *StaticCatalog) Ready() <-chan struct{} {
	return c.ready
}

// LazyCatalog enumerates voices in the background, e.g. by running an
// external program. Voices stays empty until the enumeration has finished.
type LazyCatalog struct {
	load   func(ctx context.Context) ([]Voice, error)
	logger *slog.Logger

	once   sync.Once
	mu     sync.RWMutex
	voices []Voice
	err    error
	ready  chan struct{}
}

// NewLazyCatalog creates a catalog backed by load. Enumeration starts on the
// first call to Start, Voices or Ready.
func NewLazyCatalog(load func(ctx context.Context) ([]Voice, error), logger *slog.Logger) *LazyCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &LazyCatalog{
		load:   load,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Start begins the enumeration if it is not already running.
func (c *LazyCatalog) Start() {
	c.once.Do(func() {
		go func() {
			voices, err := c.load(context.Background())
			if err != nil {
				c.logger.Warn("Voice enumeration failed", slog.String("error", err.Error()))
			}
			c.mu.Lock()
			c.voices, c.err = voices, err
			c.mu.Unlock()
			close(c.ready)
		}()
	})
}

func (c *LazyCatalog) Voices() []Voice {
	c.Start()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Voice(nil), c.voices...)
}

func (c *LazyCatalog) Ready() <-chan struct{} {
	c.Start()
	return c.ready
}

// Err reports the enumeration error, if any, once Ready has been closed.
func (c *LazyCatalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}
