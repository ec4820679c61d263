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

	"golang.org/x/text/language"
)

const espeakBinary = "espeak-ng"

// ESpeakEngine speaks through the espeak-ng command line tool.
type ESpeakEngine struct {
	cmd     commander
	logger  *slog.Logger
	catalog *LazyCatalog
}

// NewESpeakEngine creates an espeak-ng engine. The voice list is read from
// espeak-ng in the background.
func NewESpeakEngine(logger *slog.Logger) *ESpeakEngine {
	return newESpeakEngine(execCommander{}, logger)
}

func newESpeakEngine(c commander, logger *slog.Logger) *ESpeakEngine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &ESpeakEngine{cmd: c, logger: logger}
	e.catalog = NewLazyCatalog(e.listVoices, logger)
	return e
}

func (e *ESpeakEngine) Speak(ctx context.Context, u Utterance) error {
	if u.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return e.cmd.Run(ctx, espeakBinary, espeakArgs(u)...)
}

// espeakArgs maps an utterance onto espeak-ng's absolute settings.
func espeakArgs(u Utterance) []string {
	voice := "en-us"
	if u.Voice != nil {
		voice = u.Voice.Identifier()
	}

	speed := int(math.Round(clamp(175*u.Rate, 80, 450)))
	pitch := int(math.Round(clamp(50*u.Pitch, 0, 99)))
	amplitude := int(math.Round(clamp(100*u.Volume, 0, 200)))

	return []string{
		"-v", voice,
		"-s", strconv.Itoa(speed),
		"-p", strconv.Itoa(pitch),
		"-a", strconv.Itoa(amplitude),
		u.Text,
	}
}

func (e *ESpeakEngine) Name() string {
	return "espeak"
}

// IsAvailable verifies that espeak-ng is available on the system
func (e *ESpeakEngine) IsAvailable() error {
	if _, err := e.cmd.LookPath(espeakBinary); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

func (e *ESpeakEngine) Catalog() Catalog {
	return e.catalog
}

func (e *ESpeakEngine) listVoices(ctx context.Context) ([]Voice, error) {
	out, err := e.cmd.Output(ctx, espeakBinary, "--voices=en")
	if err != nil {
		return nil, fmt.Errorf("failed to list espeak-ng voices: %w", err)
	}
	return parseESpeakVoices(out), nil
}

// parseESpeakVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 2  en-us           --/M      English_(America)  gmw/en-US     (en 3)
func parseESpeakVoices(out []byte) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		voices = append(voices, Voice{
			ID:   fields[1],
			Name: strings.ReplaceAll(fields[3], "_", " "),
			Lang: canonicalTag(fields[1]),
		})
	}
	return voices
}

// canonicalTag normalises a locale such as "en_us" to "en-US". Unknown
// values are returned unchanged.
func canonicalTag(raw string) string {
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return raw
	}
	return tag.String()
}
