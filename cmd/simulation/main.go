package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"time"

	"conversation-assistant-be/pkg/assistant"
	"conversation-assistant-be/pkg/contextstore"
	"conversation-assistant-be/pkg/llm"
	"conversation-assistant-be/pkg/vectorstore/hnsw"

	"github.com/fatih/color"
)

// Offline end-to-end walkthrough of the session pipeline: scripted
// transcript segments, deterministic stub providers, in-memory vector
// index. Useful for demos and eyeballing prompt assembly without any
// API keys or infrastructure.

const embeddingDim = 64

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, embeddingDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%embeddingDim]++
	}
	return vec, nil
}

func (stubEmbedder) Dimension() int { return embeddingDim }

type stubLLM struct{}

func (stubLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	if strings.HasPrefix(prompt, "Summarize") {
		return "The speakers discussed their product launch timeline and open engineering risks.", nil
	}
	return "1. What is the biggest risk to the launch date?\n2. How was the timeline decided?\n3. Who owns the mitigation plan?", nil
}

func (s stubLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	var last string
	if len(history) > 0 {
		last = history[len(history)-1].Content
	}
	return s.Generate(ctx, last, opts...)
}

func main() {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Println("=== Conversation Assistant Simulation ===")

	ctx := context.Background()
	store := contextstore.New(stubEmbedder{}, hnsw.NewMemoryStore(embeddingDim))

	profile := assistant.ProfileByName("twitter-space")
	topic := "launch-review"

	// Pre-load background knowledge the way an upload would.
	background := "Launch is planned for Q4. The payments integration is the main engineering risk. Marketing wants a two week beta first."
	if err := store.Ingest(ctx, background, profile.Namespace(topic)); err != nil {
		log.Fatalf("Failed to preload context: %v", err)
	}
	cyan.Printf("Preloaded background context into namespace %s\n\n", profile.Namespace(topic))

	session := assistant.NewSession(assistant.Config{
		Profile:       profile,
		TriggerPeriod: 3,
	}, store, stubLLM{}, func(window, questions, retrieved string) {
		yellow.Printf("\n[hook] window: %s\n", window)
		yellow.Printf("[hook] background: %s\n", retrieved)
	})
	session.Start(topic)

	segments := []string{
		"okay so the launch is still targeted for Q4",
		"payments integration is behind schedule though",
		"we might need to cut the beta short",
		"marketing is pushing back on that",
		"engineering wants two more weeks",
		"nobody owns the mitigation plan yet",
	}

	for i, seg := range segments {
		fmt.Printf("segment %d: %s\n", i+1, seg)
		res, err := session.IngestSegment(ctx, seg)
		if err != nil {
			log.Fatalf("Ingest failed: %v", err)
		}
		if !res.Triggered {
			continue
		}

		green.Println("\n--- trigger fired ---")
		green.Printf("summary: %s\n", res.Summary)
		green.Printf("questions:\n%s\n", res.Questions)
		if res.Err != nil {
			color.Red("trigger errors: %v", res.Err)
		}
		fmt.Println()
		// Let the hook goroutine print before the next segment.
		time.Sleep(50 * time.Millisecond)
	}

	questions, summary := session.Latest()
	bold.Println("=== final artifacts ===")
	fmt.Printf("latest summary: %s\n", summary)
	fmt.Printf("latest questions:\n%s\n", questions)
}
