package config

// VectorBackend identifies a vector store implementation.
type VectorBackend string

const (
	BackendChromem VectorBackend = "chromem"
	BackendQdrant  VectorBackend = "qdrant"
)

// EmbeddingProvider identifies an embedding provider.
type EmbeddingProvider string

const (
	ProviderOpenAI EmbeddingProvider = "openai"
	ProviderOllama EmbeddingProvider = "ollama"
)

// Config is the top-level doctrove configuration, corresponding to doctrove.yml.
type Config struct {
	Port              int               `yaml:"port" koanf:"port"`
	UploadDir         string            `yaml:"upload_dir" koanf:"upload_dir"`
	DataDir           string            `yaml:"data_dir" koanf:"data_dir"`
	VectorBackend     VectorBackend     `yaml:"vector_backend" koanf:"vector_backend"`
	Qdrant            QdrantConfig      `yaml:"qdrant" koanf:"qdrant"`
	EmbeddingProvider EmbeddingProvider `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string            `yaml:"embedding_model" koanf:"embedding_model"`
	EmbeddingDims     int               `yaml:"embedding_dims" koanf:"embedding_dims"`
	OllamaBaseURL     string            `yaml:"ollama_base_url" koanf:"ollama_base_url"`
	AllowAllOrigins   bool              `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Ingest            IngestConfig      `yaml:"ingest" koanf:"ingest"`
}

// QdrantConfig holds connection settings for the qdrant backend.
type QdrantConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`
}

// IngestConfig holds file selection settings for the bulk-ingest command.
type IngestConfig struct {
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}
