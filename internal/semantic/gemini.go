package semantic

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultEmbeddingModel is the Gemini embedding model used unless configured
// otherwise.
const DefaultEmbeddingModel = "text-embedding-004"

// maxEmbedChars bounds the text sent per embedding request. Posting
// descriptions occasionally run to tens of kilobytes of boilerplate; the
// head carries the signal.
const maxEmbedChars = 8000

// GeminiEmbedder embeds text with the Gemini embedding API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates a Gemini-backed embedder. An empty model selects
// DefaultEmbeddingModel.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{
		client: client,
		model:  model,
	}, nil
}

// Embed returns the embedding vector for the given text.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = truncateAtRune(text, maxEmbedChars)

	em := g.client.EmbeddingModel(g.model)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &EmbeddingError{Message: "embed content request failed", Cause: err}
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, &EmbeddingError{Message: "empty embedding response"}
	}

	return resp.Embedding.Values, nil
}

func (g *GeminiEmbedder) Name() string {
	return "gemini/" + g.model
}

func (g *GeminiEmbedder) Close() error {
	return g.client.Close()
}

// truncateAtRune shortens text to at most limit bytes without splitting a
// UTF-8 sequence.
func truncateAtRune(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
