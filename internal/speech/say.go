package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

const sayBinary = "say"

// SayEngine speaks through the macOS say command.
type SayEngine struct {
	cmd     commander
	logger  *slog.Logger
	catalog *LazyCatalog
}

// NewSayEngine creates a say engine. Pitch and volume are left to the
// chosen voice since say has no flags for them.
func NewSayEngine(logger *slog.Logger) *SayEngine {
	return newSayEngine(execCommander{}, logger)
}

func newSayEngine(c commander, logger *slog.Logger) *SayEngine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &SayEngine{cmd: c, logger: logger}
	e.catalog = NewLazyCatalog(e.listVoices, logger)
	return e
}

func (e *SayEngine) Speak(ctx context.Context, u Utterance) error {
	if u.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return e.cmd.Run(ctx, sayBinary, sayArgs(u)...)
}

func sayArgs(u Utterance) []string {
	var args []string
	if u.Voice != nil {
		args = append(args, "-v", u.Voice.Identifier())
	}
	rate := int(math.Round(clamp(185*u.Rate, 90, 500)))
	return append(args, "-r", strconv.Itoa(rate), "--", u.Text)
}

func (e *SayEngine) Name() string {
	return "say"
}

func (e *SayEngine) IsAvailable() error {
	if _, err := e.cmd.LookPath(sayBinary); err != nil {
		return fmt.Errorf("say is not available: %w", err)
	}
	return nil
}

func (e *SayEngine) Catalog() Catalog {
	return e.catalog
}

func (e *SayEngine) listVoices(ctx context.Context) ([]Voice, error) {
	out, err := e.cmd.Output(ctx, sayBinary, "-v", "?")
	if err != nil {
		return nil, fmt.Errorf("failed to list say voices: %w", err)
	}
	return parseSayVoices(out), nil
}

// parseSayVoices reads the listing printed by `say -v ?`:
//
//	Samantha            en_US    # Hello! My name is Samantha.
//	Eddy (English (US)) en_US    # Hello! My name is Eddy.
func parseSayVoices(out []byte) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, Voice{
			Name: name,
			Lang: canonicalTag(fields[len(fields)-1]),
		})
	}
	return voices
}
