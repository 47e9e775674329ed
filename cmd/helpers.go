package cmd

import (
	"fmt"
	"os"

	"github.com/doctrove/doctrove/internal/config"
	"github.com/doctrove/doctrove/internal/embeddings"
	"github.com/doctrove/doctrove/internal/vectordb"
)

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// This is the shared version used by serve, ingest, and mcp commands.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	dims := cfg.EmbeddingDims
	if dims == 0 {
		dims = config.DimsForModel(cfg.EmbeddingModel)
	}
	if dims == 0 {
		return nil, fmt.Errorf("unknown embedding model %q: set embedding_dims explicitly", cfg.EmbeddingModel)
	}

	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel, dims), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, dims, cfg.OllamaBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}

// createVectorStoreFromConfig creates the configured vector store backend.
func createVectorStoreFromConfig(cfg *config.Config, embedder embeddings.Embedder) (vectordb.VectorStore, error) {
	switch cfg.VectorBackend {
	case config.BackendQdrant:
		return vectordb.NewQdrantStore(cfg.Qdrant.Host, cfg.Qdrant.Port, embedder)
	case config.BackendChromem, "":
		return vectordb.NewChromemStore(embedder)
	default:
		return nil, fmt.Errorf("unknown vector backend %q", cfg.VectorBackend)
	}
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `doctrove init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
