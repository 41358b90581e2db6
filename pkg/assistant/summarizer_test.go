package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizerSendsFixedInstruction(t *testing.T) {
	provider := &fakeLLM{response: "  a short summary \n"}
	s := NewSummarizer(provider)

	got, err := s.Summarize(context.Background(), "hello world foo")
	require.NoError(t, err)

	assert.Equal(t, "a short summary", got, "response must be trimmed")
	assert.Equal(t, "Summarize this transcript:\n\nhello world foo", provider.lastPrompt())
}

func TestSummarizerPropagatesFailure(t *testing.T) {
	provider := &fakeLLM{err: errBoom}
	s := NewSummarizer(provider)

	_, err := s.Summarize(context.Background(), "window")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}
