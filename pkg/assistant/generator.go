package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"conversation-assistant-be/pkg/assistant/prompt"
	"conversation-assistant-be/pkg/llm"
)

// ContextStore is the slice of the context store the engine consumes:
// durable ingestion of summaries and documents, similarity retrieval,
// and namespace clearing.
type ContextStore interface {
	Ingest(ctx context.Context, text, namespace string) error
	Retrieve(ctx context.Context, query, namespace string, topK int) (string, error)
	Clear(ctx context.Context, namespace string) error
}

// QuestionGenerator merges the live window with retrieved background
// context into a single grounded prompt and produces a fixed number of
// questions per the deployment profile.
type QuestionGenerator struct {
	store    ContextStore
	provider llm.Provider
	profile  Profile
	topK     int
}

func NewQuestionGenerator(store ContextStore, provider llm.Provider, profile Profile, topK int) *QuestionGenerator {
	if topK <= 0 {
		topK = 5
	}
	return &QuestionGenerator{
		store:    store,
		provider: provider,
		profile:  profile,
		topK:     topK,
	}
}

// Generate returns the model's questions and the background context that
// grounded them. Retrieval failures degrade to an empty background
// rather than aborting: background is supplemental, the live window is
// not. Completion failures surface as ErrGenerationFailed.
func (g *QuestionGenerator) Generate(ctx context.Context, window, namespace, guidance string) (questions, background string, err error) {
	background, err = g.store.Retrieve(ctx, window, namespace, g.topK)
	if err != nil {
		log.Printf("[WARN] background retrieval failed, generating without context: %v", err)
		background = ""
	}

	full := prompt.NewQuestionBuilder(prompt.Spec{
		RoleFraming:      g.profile.RoleFraming,
		FinalInstruction: g.profile.FinalInstruction,
		QuestionCount:    g.profile.QuestionCount,
	}, window, background, guidance).Build()

	out, err := g.provider.Generate(ctx, full)
	if err != nil {
		return "", background, fmt.Errorf("%w: questions: %v", ErrGenerationFailed, err)
	}

	return strings.TrimSpace(out), background, nil
}
