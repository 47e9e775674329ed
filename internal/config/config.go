package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCTROVE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DOCTROVE_UPLOAD_DIR -> upload_dir,
	// DOCTROVE_QDRANT_HOST -> qdrant.host. Keys stay flat except the
	// known nested qdrant block, so multi-word keys like embedding_model
	// resolve against their struct tags.
	if err := k.Load(env.Provider("DOCTROVE_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "DOCTROVE_"))
		if rest, ok := strings.CutPrefix(key, "qdrant_"); ok {
			return "qdrant." + rest
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Fill in dimensions for known models so callers never see 0.
	if cfg.EmbeddingDims == 0 {
		cfg.EmbeddingDims = DimsForModel(cfg.EmbeddingModel)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validBackends is the set of recognized vector backend values.
var validBackends = map[VectorBackend]bool{
	BackendChromem: true,
	BackendQdrant:  true,
}

// validProviders is the set of recognized embedding provider values.
var validProviders = map[EmbeddingProvider]bool{
	ProviderOpenAI: true,
	ProviderOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("upload_dir is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if !validBackends[c.VectorBackend] {
		return fmt.Errorf("invalid vector_backend %q: must be one of chromem, qdrant", c.VectorBackend)
	}
	if !validProviders[c.EmbeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q: must be one of openai, ollama", c.EmbeddingProvider)
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("embedding_model is required")
	}
	if c.EmbeddingDims <= 0 && DimsForModel(c.EmbeddingModel) == 0 {
		return fmt.Errorf("embedding_dims is required for unknown model %q", c.EmbeddingModel)
	}
	if c.VectorBackend == BackendQdrant && c.Qdrant.Host == "" {
		return fmt.Errorf("qdrant.host is required for the qdrant backend")
	}
	return nil
}
