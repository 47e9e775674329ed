package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doctrove/doctrove/internal/analytics"
	"github.com/doctrove/doctrove/internal/config"
	"github.com/doctrove/doctrove/internal/registry"
	"github.com/doctrove/doctrove/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the document REST API server",
	Long: `Starts the doctrove HTTP server, exposing upload, search, related,
and analytics endpoints over the document registry and vector store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Port = servePort
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		vectors, err := createVectorStoreFromConfig(cfg, embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}

		vectorDir := filepath.Join(cfg.DataDir, "vectordb")
		if err := vectors.Load(context.Background(), vectorDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load vector store from %s: %v\n", vectorDir, err)
		}
		if n := vectors.Count(); n > 0 {
			// The registry starts empty on every boot, so persisted vectors
			// cannot be resolved back to documents until they are re-ingested.
			fmt.Fprintf(os.Stderr, "Warning: vector store holds %d entries but the registry is empty; re-ingest to make them searchable\n", n)
		}

		if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
			return fmt.Errorf("creating upload dir: %w", err)
		}

		store := registry.NewStore(vectors)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})
		registry.RegisterRoutes(srv.Router(), registry.RoutesDeps{
			Store:     store,
			UploadDir: cfg.UploadDir,
		})
		analytics.RegisterRoutes(srv.Router(), store)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			if err := vectors.Persist(context.Background(), vectorDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not persist vector store: %v\n", err)
			}
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "doctrove server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Uploads: %s\n", cfg.UploadDir)
		fmt.Fprintf(os.Stderr, "  Vector backend: %s (%s, %d dims)\n", backendName(cfg), embedder.Name(), embedder.Dimensions())
		fmt.Fprintf(os.Stderr, "  Documents indexed: %d\n", vectors.Count())

		return srv.Start()
	},
}

func backendName(cfg *config.Config) string {
	if cfg.VectorBackend == "" {
		return string(config.BackendChromem)
	}
	return string(cfg.VectorBackend)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
