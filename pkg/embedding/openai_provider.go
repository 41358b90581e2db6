package embedding

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI embedding models.
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

var _ Provider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(apiKey string, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = string(openai.AdaEmbeddingV2)
	}

	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.EmbeddingModel(model),
	}, nil
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embedding: no embedding returned")
	}
	return resp.Data[0].Embedding, nil
}

func (p *OpenAIProvider) Dimension() int {
	switch p.model {
	case openai.LargeEmbedding3:
		return 3072
	case openai.SmallEmbedding3, openai.AdaEmbeddingV2:
		return 1536
	default:
		return 1536
	}
}
