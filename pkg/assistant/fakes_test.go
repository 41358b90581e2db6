package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"conversation-assistant-be/pkg/llm"
)

// fakeLLM records every prompt it receives and answers with a canned
// response (or a configured error).
type fakeLLM struct {
	mu       sync.Mutex
	prompts  []string
	response string
	err      error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	var sb strings.Builder
	for _, m := range history {
		sb.WriteString(m.Content)
	}
	return f.Generate(ctx, sb.String(), opts...)
}

func (f *fakeLLM) promptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// fakeContextStore implements ContextStore over plain maps.
type fakeContextStore struct {
	mu          sync.Mutex
	ingested    map[string][]string // namespace -> texts
	retrieved   string
	ingestErr   error
	retrieveErr error
}

func newFakeContextStore() *fakeContextStore {
	return &fakeContextStore{ingested: make(map[string][]string)}
}

func (f *fakeContextStore) Ingest(ctx context.Context, text, namespace string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ingestErr != nil {
		return f.ingestErr
	}
	f.ingested[namespace] = append(f.ingested[namespace], text)
	return nil
}

func (f *fakeContextStore) Retrieve(ctx context.Context, query, namespace string, topK int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.retrieveErr != nil {
		return "", f.retrieveErr
	}
	return f.retrieved, nil
}

func (f *fakeContextStore) Clear(ctx context.Context, namespace string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ingested, namespace)
	return nil
}

func (f *fakeContextStore) ingestedIn(namespace string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ingested[namespace]...)
}

var errBoom = errors.New("boom")
