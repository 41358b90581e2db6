package factory

import (
	"fmt"

	"conversation-assistant-be/pkg/llm"
	"conversation-assistant-be/pkg/llm/ollama"
	"conversation-assistant-be/pkg/llm/openaichat"
)

func NewLLMProvider(providerType, modelName, baseURL, openAIKey string) (llm.Provider, error) {
	switch providerType {
	case "openai":
		return openaichat.NewOpenAIProvider(openAIKey, modelName)
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
