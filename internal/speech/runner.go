package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// commander runs external programs. Engines take one so tests can record
// the command lines instead of starting real processes.
type commander interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(name string) (string, error)
}

type execCommander struct{}

func (execCommander) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w\nOutput: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (execCommander) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (execCommander) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
