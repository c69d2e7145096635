package similarity

import (
	"context"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// EmbeddingModelName is the Gemini embedding model used for semantic scoring.
const EmbeddingModelName = "text-embedding-004"

// embedder is the narrow slice of the Gemini API the scorer needs; tests
// substitute a fake.
type embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type geminiEmbedder struct {
	model *genai.EmbeddingModel
}

func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := g.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, &BackendUnavailableError{Message: "embedding response was empty"}
	}
	return res.Embedding.Values, nil
}

// Embedding scores texts by cosine similarity of dense vector encodings from
// the Gemini embedding API. Vectors are cached per text for the lifetime of
// the scorer, so grouping n records costs n embed calls rather than n².
type Embedding struct {
	embedder embedder
	client   *genai.Client
	cache    map[string][]float32
}

// NewEmbedding creates an embedding scorer backed by the Gemini API.
func NewEmbedding(ctx context.Context, apiKey string) (*Embedding, error) {
	if apiKey == "" {
		return nil, &BackendUnavailableError{Message: "embedding backend requires an API key"}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &BackendUnavailableError{Message: "failed to create embedding client", Cause: err}
	}
	return &Embedding{
		embedder: &geminiEmbedder{model: client.EmbeddingModel(EmbeddingModelName)},
		client:   client,
		cache:    make(map[string][]float32),
	}, nil
}

// Name implements Scorer.
func (*Embedding) Name() string { return "embedding" }

// Score implements Scorer. Cosine similarity is clamped to [0, 1]; empty
// inputs score 0 without calling the backend.
func (e *Embedding) Score(ctx context.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, nil
	}

	vecA, err := e.vector(ctx, a)
	if err != nil {
		return 0, err
	}
	vecB, err := e.vector(ctx, b)
	if err != nil {
		return 0, err
	}
	return clamp01(cosine(vecA, vecB)), nil
}

func (e *Embedding) vector(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := e.cache[text]; ok {
		return vec, nil
	}
	vec, err := e.embedder.Embed(ctx, text)
	if err != nil {
		if _, ok := err.(*BackendUnavailableError); ok {
			return nil, err
		}
		return nil, &BackendUnavailableError{Message: "embed call failed", Cause: err}
	}
	e.cache[text] = vec
	return vec, nil
}

// Close releases the underlying API client.
func (e *Embedding) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
