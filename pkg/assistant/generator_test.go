package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorBuildsGroundedPrompt(t *testing.T) {
	store := newFakeContextStore()
	store.retrieved = "earlier summary"
	provider := &fakeLLM{response: "1. Q?\n2. Q?\n3. Q?"}

	g := NewQuestionGenerator(store, provider, ProfileByName("twitter-space"), 5)

	questions, background, err := g.Generate(context.Background(), "live window", "twitter-space-demo", "")
	require.NoError(t, err)

	assert.Equal(t, "1. Q?\n2. Q?\n3. Q?", questions)
	assert.Equal(t, "earlier summary", background)

	prompt := provider.lastPrompt()
	assert.Contains(t, prompt, "Live Transcript:\nlive window")
	assert.Contains(t, prompt, "Relevant Background Context:\nearlier summary")
	assert.Contains(t, prompt, "Generate 3 intelligent")
}

func TestGeneratorDegradesWhenRetrievalFails(t *testing.T) {
	store := newFakeContextStore()
	store.retrieveErr = errBoom
	provider := &fakeLLM{response: "questions anyway"}

	g := NewQuestionGenerator(store, provider, ProfileByName("twitter-space"), 5)

	questions, background, err := g.Generate(context.Background(), "live window", "ns", "")
	require.NoError(t, err, "background is supplemental; retrieval failure must not abort")

	assert.Equal(t, "questions anyway", questions)
	assert.Equal(t, "", background)
	assert.Contains(t, provider.lastPrompt(), "Live Transcript:\nlive window")
}

func TestGeneratorPropagatesCompletionFailure(t *testing.T) {
	store := newFakeContextStore()
	provider := &fakeLLM{err: errBoom}

	g := NewQuestionGenerator(store, provider, ProfileByName("twitter-space"), 5)

	_, _, err := g.Generate(context.Background(), "w", "ns", "")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGeneratorAppendsGuidance(t *testing.T) {
	store := newFakeContextStore()
	provider := &fakeLLM{response: "qs"}

	g := NewQuestionGenerator(store, provider, ProfileByName("linkedin-call"), 5)

	_, _, err := g.Generate(context.Background(), "w", "ns", "focus on pricing")
	require.NoError(t, err)

	assert.Contains(t, provider.lastPrompt(), "Additional Context: focus on pricing")
}
