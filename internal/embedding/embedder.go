// Package embedding turns text spans into fixed-length vectors and enforces
// the dimensionality contract records must satisfy before persistence.
package embedding

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
)

const (
	// DefaultModel is the OpenAI model used for generating embeddings.
	DefaultModel = "text-embedding-3-small"

	// DefaultDimensions is the vector size requested from the model. It must
	// match the vector store collection's configured dimensionality.
	DefaultDimensions = 768
)

// Embedder generates one embedding per call against the OpenAI embeddings
// API, retrying rate-limit errors with exponential backoff. The requested
// dimension is fixed at construction so every vector this process produces
// matches the collection it feeds.
type Embedder struct {
	client     *Client
	model      string
	dimensions int
}

// NewEmbedder creates an Embedder for the given model and output dimension.
// Zero values fall back to DefaultModel and DefaultDimensions.
func NewEmbedder(client *Client, model string, dimensions int) *Embedder {
	if model == "" {
		model = DefaultModel
	}
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Embedder{
		client:     client,
		model:      model,
		dimensions: dimensions,
	}
}

// Dimensions returns the vector size this embedder requests.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// EmbedText generates the embedding for a single text span.
// Rate-limit errors (HTTP 429) retry with exponential backoff; other errors
// are permanent and fail immediately.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var vector []float32

	operation := func() error {
		resp, err := e.client.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{
				OfString: openai.String(text),
			},
			Model:      e.model,
			Dimensions: openai.Int(int64(e.dimensions)),
		})
		if err != nil {
			if isRateLimitError(err) {
				return err // Will retry with backoff
			}
			return backoff.Permanent(err) // Don't retry
		}

		if len(resp.Data) == 0 {
			return backoff.Permanent(errors.New("embedding response contained no data"))
		}

		vector = toFloat32(resp.Data[0].Embedding)
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return vector, nil
}

// isRateLimitError checks if the error is a rate limit error (HTTP 429).
func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// toFloat32 converts []float64 to []float32.
// OpenAI API returns float64, but storage uses float32 for memory efficiency.
func toFloat32(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}
