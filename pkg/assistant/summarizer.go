package assistant

import (
	"context"
	"fmt"
	"strings"

	"conversation-assistant-be/pkg/assistant/prompt"
	"conversation-assistant-be/pkg/llm"
)

// Summarizer condenses the live window into a short summary suitable for
// durable storage. It is a pass-through of whatever the model returns,
// beyond whitespace trimming.
type Summarizer struct {
	provider llm.Provider
}

func NewSummarizer(provider llm.Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

func (s *Summarizer) Summarize(ctx context.Context, window string) (string, error) {
	out, err := s.provider.Generate(ctx, prompt.SummaryPrompt(window))
	if err != nil {
		return "", fmt.Errorf("%w: summarize: %v", ErrGenerationFailed, err)
	}
	return strings.TrimSpace(out), nil
}
