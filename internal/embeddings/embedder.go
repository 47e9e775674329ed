// Package embeddings turns text into vectors via pluggable providers.
package embeddings

import (
	"context"

	chromem "github.com/philippgille/chromem-go"
)

// Embedder produces vector embeddings for text. Implementations wrap a
// provider API; callers pick one at startup and treat it as opaque.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// ToChromemFunc adapts an Embedder to chromem's one-text-at-a-time
// embedding callback.
func ToChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		results, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, nil
		}
		return results[0], nil
	}
}
