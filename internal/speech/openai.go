package speech

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// openAIVoices are the voices offered by the OpenAI speech endpoint. Names
// carry a gender hint so that Select can prefer the female voices.
var openAIVoices = []Voice{
	{ID: "alloy", Name: "OpenAI Alloy", Lang: DefaultLang},
	{ID: "ash", Name: "OpenAI Ash Male", Lang: DefaultLang},
	{ID: "ballad", Name: "OpenAI Ballad Male", Lang: DefaultLang},
	{ID: "coral", Name: "OpenAI Coral Female", Lang: DefaultLang},
	{ID: "echo", Name: "OpenAI Echo Male", Lang: DefaultLang},
	{ID: "fable", Name: "OpenAI Fable", Lang: DefaultLang},
	{ID: "onyx", Name: "OpenAI Onyx Male", Lang: DefaultLang},
	{ID: "nova", Name: "OpenAI Nova Female", Lang: DefaultLang},
	{ID: "sage", Name: "OpenAI Sage Female", Lang: DefaultLang},
	{ID: "shimmer", Name: "OpenAI Shimmer Female", Lang: DefaultLang},
	{ID: "verse", Name: "OpenAI Verse Male", Lang: DefaultLang},
}

// speechClient is the part of the OpenAI client the engine needs.
type speechClient interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// OpenAIEngine synthesises speech with OpenAI TTS and plays the result
// with the platform's audio player.
type OpenAIEngine struct {
	client  speechClient
	config  *Config
	cmd     commander
	logger  *slog.Logger
	catalog *StaticCatalog
}

// NewOpenAIEngine creates a new OpenAI TTS engine
func NewOpenAIEngine(config *Config, logger *slog.Logger) (*OpenAIEngine, error) {
	if config == nil || config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return newOpenAIEngine(openai.NewClient(config.OpenAIKey), config, execCommander{}, logger), nil
}

func newOpenAIEngine(client speechClient, config *Config, c commander, logger *slog.Logger) *OpenAIEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAIEngine{
		client:  client,
		config:  config,
		cmd:     c,
		logger:  logger,
		catalog: NewStaticCatalog(openAIVoices...),
	}
}

func (e *OpenAIEngine) Speak(ctx context.Context, u Utterance) error {
	if u.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	req := e.speechRequest(u)
	e.logger.Debug("OpenAI TTS request",
		slog.String("model", string(req.Model)),
		slog.String("voice", string(req.Voice)),
		slog.Float64("speed", req.Speed))

	response, err := e.client.CreateSpeech(ctx, req)
	if err != nil {
		// Check if it's a model access error
		if strings.Contains(err.Error(), "does not have access to model") && req.Instructions != "" {
			return fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try using --openai-model tts-1 instead", err, req.Model)
		}
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	out, err := os.CreateTemp("", "flashpage-*.mp3")
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer os.Remove(out.Name())

	written, err := io.Copy(out, response)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("no audio data received from OpenAI")
	}

	return playFile(ctx, e.cmd, out.Name())
}

func (e *OpenAIEngine) speechRequest(u Utterance) openai.CreateSpeechRequest {
	voice := e.config.OpenAIVoice
	if u.Voice != nil {
		voice = u.Voice.Identifier()
	}
	if voice == "" {
		voice = "nova"
	}
	model := e.config.OpenAIModel
	if model == "" {
		model = "tts-1"
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(model),
		Input:          u.Text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          clamp(u.Rate, 0.25, 4.0),
	}

	// Add instructions for gpt-4o-mini-tts model
	if e.config.OpenAIInstruction != "" && strings.HasPrefix(model, "gpt-4o-mini") {
		req.Instructions = e.config.OpenAIInstruction
	}
	return req
}

func (e *OpenAIEngine) Name() string {
	return "openai"
}

// IsAvailable checks that a key is configured. A test API call would use
// credits, so the key itself is not verified.
func (e *OpenAIEngine) IsAvailable() error {
	if e.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

func (e *OpenAIEngine) Catalog() Catalog {
	return e.catalog
}
