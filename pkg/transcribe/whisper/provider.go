package whisper

import (
	"context"
	"fmt"
	"io"
	"strings"

	"conversation-assistant-be/pkg/transcribe"

	"github.com/sashabaranov/go-openai"
)

// WhisperProvider implements transcribe.Provider over the OpenAI audio API.
type WhisperProvider struct {
	client *openai.Client
	model  string
}

var _ transcribe.Provider = (*WhisperProvider)(nil)

func NewWhisperProvider(apiKey, model string) (*WhisperProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (p *WhisperProvider) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
