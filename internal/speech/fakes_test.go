package speech

import (
	"context"
	"errors"
	"sync"
)

// fakeEngine records utterances and blocks each one until it is released
// or cancelled.
type fakeEngine struct {
	name    string
	catalog Catalog
	err     error
	block   bool

	mu        sync.Mutex
	spoken    []Utterance
	lastCtx   context.Context
	active    int
	maxActive int
	release   chan struct{}
	started   chan Utterance
}

func newFakeEngine(block bool, voices ...Voice) *fakeEngine {
	return &fakeEngine{
		name:    "fake",
		catalog: NewStaticCatalog(voices...),
		block:   block,
		release: make(chan struct{}, 16),
		started: make(chan Utterance, 16),
	}
}

func (f *fakeEngine) Speak(ctx context.Context, u Utterance) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, u)
	f.lastCtx = ctx
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	f.started <- u

	if f.block {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func (f *fakeEngine) Name() string       { return f.name }
func (f *fakeEngine) IsAvailable() error { return nil }
func (f *fakeEngine) Catalog() Catalog   { return f.catalog }

func (f *fakeEngine) utterances() []Utterance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Utterance(nil), f.spoken...)
}

func (f *fakeEngine) speakCtx() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCtx
}

func (f *fakeEngine) peak() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxActive
}

// fakeCommander records command lines and serves canned output.
type fakeCommander struct {
	mu      sync.Mutex
	runs    [][]string
	outputs map[string][]byte
	paths   map[string]bool
	runErr  error
}

func (c *fakeCommander) Run(ctx context.Context, name string, args ...string) error {
	c.mu.Lock()
	c.runs = append(c.runs, append([]string{name}, args...))
	c.mu.Unlock()
	return c.runErr
}

func (c *fakeCommander) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, ok := c.outputs[name]
	if !ok {
		return nil, errors.New("command not found")
	}
	return out, nil
}

func (c *fakeCommander) LookPath(name string) (string, error) {
	if c.paths[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func (c *fakeCommander) commands() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.runs...)
}
