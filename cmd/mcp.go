package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	mcpserver "github.com/doctrove/doctrove/internal/mcp"
	"github.com/doctrove/doctrove/internal/registry"
	"github.com/doctrove/doctrove/internal/walker"
)

var mcpIngestDir string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing document
search tools for AI agents. With --ingest, documents from the given
directory are processed into the registry before serving.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}
		vectors, err := createVectorStoreFromConfig(cfg, embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}

		store := registry.NewStore(vectors)

		if mcpIngestDir != "" {
			files, err := walker.Walk(walker.Config{
				RootDir: mcpIngestDir,
				Include: cfg.Ingest.Include,
				Exclude: cfg.Ingest.Exclude,
			})
			if err != nil {
				return fmt.Errorf("scanning %s: %w", mcpIngestDir, err)
			}
			for _, f := range files {
				if _, err := store.Process(context.Background(), f.Path, filepath.Base(f.Path)); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", f.RelPath, err)
				}
			}
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "doctrove MCP server started on stdio (documents=%d)\n", store.Count())

		srv := mcpserver.NewServer(store)
		return srv.Serve()
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpIngestDir, "ingest", "", "Directory of documents to ingest before serving")
	rootCmd.AddCommand(mcpCmd)
}
