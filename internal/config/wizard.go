package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. The caller is responsible for saving it.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to doctrove! Let's configure your document service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p <= 0 || p > 65535 {
				return fmt.Errorf("must be a port number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Storage directories.
	uploadPrompt := promptui.Prompt{
		Label:   "Upload directory",
		Default: cfg.UploadDir,
	}
	if cfg.UploadDir, err = uploadPrompt.Run(); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}

	dataPrompt := promptui.Prompt{
		Label:   "Data directory (vector store persistence)",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Vector backend.
	backendPrompt := promptui.Select{
		Label: "Select vector store backend",
		Items: []string{
			"chromem (embedded, persists to the data directory)",
			"qdrant (external server over gRPC)",
		},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend selection: %w", err)
	}
	backends := []VectorBackend{BackendChromem, BackendQdrant}
	cfg.VectorBackend = backends[backendIdx]

	if cfg.VectorBackend == BackendQdrant {
		hostPrompt := promptui.Prompt{
			Label:   "Qdrant host",
			Default: cfg.Qdrant.Host,
		}
		if cfg.Qdrant.Host, err = hostPrompt.Run(); err != nil {
			return nil, fmt.Errorf("qdrant host: %w", err)
		}
	}

	// 4. Embedding provider.
	providerPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{
			"openai (requires OPENAI_API_KEY)",
			"ollama (local models, no API key)",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []EmbeddingProvider{ProviderOpenAI, ProviderOllama}
	cfg.EmbeddingProvider = providers[providerIdx]

	defaultModel := "text-embedding-3-small"
	if cfg.EmbeddingProvider == ProviderOllama {
		defaultModel = "nomic-embed-text"
	}
	modelPrompt := promptui.Prompt{
		Label:   "Embedding model",
		Default: defaultModel,
	}
	if cfg.EmbeddingModel, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("embedding model: %w", err)
	}
	cfg.EmbeddingDims = DimsForModel(cfg.EmbeddingModel)

	return cfg, nil
}
