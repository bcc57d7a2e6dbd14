package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider generates embeddings through the OpenAI embeddings API.
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIProvider creates a provider for the given API key. An empty model
// defaults to text-embedding-3-small (1536 dimensions).
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	m := openai.SmallEmbedding3
	if model != "" {
		m = openai.EmbeddingModel(model)
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  m,
	}
}

// Embed returns the embedding for text. One email per call: the sync loop
// paces requests individually, so batching would defeat the rate limiter.
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: p.model,
	})
	if err != nil {
		return nil, &ProviderError{Provider: "openai", Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &ProviderError{Provider: "openai", Err: errNoData}
	}

	embedding := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		embedding[i] = float64(v)
	}
	return embedding, nil
}

var errNoData = errors.New("response contained no embedding data")
