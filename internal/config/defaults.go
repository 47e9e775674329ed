package config

// embeddingDims maps well-known embedding models to their output dimensions.
var embeddingDims = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
	"nomic-embed-text":       768,
	"mxbai-embed-large":      1024,
}

// DefaultExcludes are glob patterns the bulk-ingest walker skips by default.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"dist/**",
	"build/**",
	"*.tmp",
	"*.lock",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:              5000,
		UploadDir:         "uploads",
		DataDir:           "data",
		VectorBackend:     BackendChromem,
		Qdrant:            QdrantConfig{Host: "localhost", Port: 6334},
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		OllamaBaseURL:     "http://localhost:11434",
		AllowAllOrigins:   true,
		Ingest: IngestConfig{
			Include: []string{"**"},
			Exclude: DefaultExcludes,
		},
	}
}

// DimsForModel returns the embedding dimensions for a known model name,
// or 0 if the model is not recognized.
func DimsForModel(model string) int {
	return embeddingDims[model]
}
