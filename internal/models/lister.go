package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey is returned when no OpenAI key is configured.
var ErrNoAPIKey = errors.New("OpenAI API key not found. Set OPENAI_API_KEY environment variable or speech.openai_key in .flashpage.yaml")

type modelClient interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client modelClient
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// NewListerWithBaseURL creates a lister for an OpenAI compatible endpoint
func NewListerWithBaseURL(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// SpeechModels returns the sorted IDs of text-to-speech models.
func (l *Lister) SpeechModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var ids []string
	for _, model := range models.Models {
		if isSpeechModel(model.ID) {
			ids = append(ids, model.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// PrintSpeechModels writes the speech models to w and marks current.
func (l *Lister) PrintSpeechModels(ctx context.Context, w io.Writer, current string) error {
	ids, err := l.SpeechModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Text-to-Speech models:")
	if len(ids) == 0 {
		fmt.Fprintln(w, "  No TTS models found")
		return nil
	}

	found := false
	for _, id := range ids {
		marker := " "
		if id == current {
			marker = "*"
			found = true
		}
		fmt.Fprintf(w, " %s %s\n", marker, id)
	}
	if current != "" && !found {
		fmt.Fprintf(w, "\nThe configured model %s is not available, try --openai-model %s\n", current, ids[0])
	}
	return nil
}

func isSpeechModel(id string) bool {
	return strings.Contains(id, "tts")
}
