package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != 5000 {
		t.Errorf("Port: got %d, want 5000", cfg.Port)
	}
	if cfg.VectorBackend != BackendChromem {
		t.Errorf("VectorBackend: got %q, want chromem", cfg.VectorBackend)
	}
	if cfg.EmbeddingProvider != ProviderOpenAI {
		t.Errorf("EmbeddingProvider: got %q, want openai", cfg.EmbeddingProvider)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UploadDir != "uploads" {
		t.Errorf("UploadDir: got %q, want uploads", cfg.UploadDir)
	}
	if cfg.EmbeddingDims != 1536 {
		t.Errorf("EmbeddingDims: got %d, want 1536 for text-embedding-3-small", cfg.EmbeddingDims)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doctrove.yml")
	content := []byte("port: 8080\nvector_backend: qdrant\nqdrant:\n  host: qdrant.internal\n  port: 6334\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port: got %d, want 8080", cfg.Port)
	}
	if cfg.VectorBackend != BackendQdrant {
		t.Errorf("VectorBackend: got %q, want qdrant", cfg.VectorBackend)
	}
	if cfg.Qdrant.Host != "qdrant.internal" {
		t.Errorf("Qdrant.Host: got %q", cfg.Qdrant.Host)
	}
	// Unset fields keep defaults.
	if cfg.UploadDir != "uploads" {
		t.Errorf("UploadDir: got %q, want uploads", cfg.UploadDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DOCTROVE_PORT", "9999")
	t.Setenv("DOCTROVE_EMBEDDING_MODEL", "nomic-embed-text")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("Port: got %d, want 9999 from env", cfg.Port)
	}
	if cfg.EmbeddingModel != "nomic-embed-text" {
		t.Errorf("EmbeddingModel: got %q", cfg.EmbeddingModel)
	}
	if cfg.EmbeddingDims != 768 {
		t.Errorf("EmbeddingDims: got %d, want 768 for nomic-embed-text", cfg.EmbeddingDims)
	}
}

func TestLoadEnvOverrideMultiWordKeys(t *testing.T) {
	t.Setenv("DOCTROVE_UPLOAD_DIR", "/srv/uploads")
	t.Setenv("DOCTROVE_DATA_DIR", "/srv/data")
	t.Setenv("DOCTROVE_VECTOR_BACKEND", "qdrant")
	t.Setenv("DOCTROVE_EMBEDDING_PROVIDER", "ollama")
	t.Setenv("DOCTROVE_OLLAMA_BASE_URL", "http://ollama:11434")
	t.Setenv("DOCTROVE_QDRANT_HOST", "qdrant.internal")
	t.Setenv("DOCTROVE_QDRANT_PORT", "7001")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UploadDir != "/srv/uploads" {
		t.Errorf("UploadDir: got %q, want /srv/uploads from env", cfg.UploadDir)
	}
	if cfg.DataDir != "/srv/data" {
		t.Errorf("DataDir: got %q, want /srv/data from env", cfg.DataDir)
	}
	if cfg.VectorBackend != BackendQdrant {
		t.Errorf("VectorBackend: got %q, want qdrant from env", cfg.VectorBackend)
	}
	if cfg.EmbeddingProvider != ProviderOllama {
		t.Errorf("EmbeddingProvider: got %q, want ollama from env", cfg.EmbeddingProvider)
	}
	if cfg.OllamaBaseURL != "http://ollama:11434" {
		t.Errorf("OllamaBaseURL: got %q", cfg.OllamaBaseURL)
	}
	// The qdrant block is the one nested path reachable from env keys.
	if cfg.Qdrant.Host != "qdrant.internal" {
		t.Errorf("Qdrant.Host: got %q, want qdrant.internal from env", cfg.Qdrant.Host)
	}
	if cfg.Qdrant.Port != 7001 {
		t.Errorf("Qdrant.Port: got %d, want 7001 from env", cfg.Qdrant.Port)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EmbeddingDims = DimsForModel(cfg.EmbeddingModel)
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	bad := DefaultConfig()
	bad.VectorBackend = "pinecone"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown vector_backend")
	}

	bad = DefaultConfig()
	bad.Port = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	bad = DefaultConfig()
	bad.EmbeddingModel = "some-custom-model"
	bad.EmbeddingDims = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown model with no dims")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doctrove.yml")

	cfg := DefaultConfig()
	cfg.Port = 7070
	cfg.UploadDir = "/srv/uploads"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Port != 7070 {
		t.Errorf("Port: got %d, want 7070", loaded.Port)
	}
	if loaded.UploadDir != "/srv/uploads" {
		t.Errorf("UploadDir: got %q", loaded.UploadDir)
	}
}
