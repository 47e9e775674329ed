package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/doctrove/doctrove/internal/registry"
	"github.com/doctrove/doctrove/internal/walker"
)

var (
	ingestInclude []string
	ingestExclude []string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <directory>",
	Short: "Bulk-ingest documents from a directory",
	Long: `Walks a directory tree, processes every supported document (PDF, DOCX,
images, plain text) through extraction, classification, and metadata
analysis, and indexes the results in the vector store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		include := ingestInclude
		if len(include) == 0 {
			include = cfg.Ingest.Include
		}
		exclude := ingestExclude
		if len(exclude) == 0 {
			exclude = cfg.Ingest.Exclude
		}

		files, err := walker.Walk(walker.Config{
			RootDir: args[0],
			Include: include,
			Exclude: exclude,
		})
		if err != nil {
			return fmt.Errorf("scanning %s: %w", args[0], err)
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "No supported documents found.")
			return nil
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
		if err := vectors.Load(context.Background(), vectorDir); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Note: starting with a fresh vector store: %v\n", err)
		}

		store := registry.NewStore(vectors)

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Ingesting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		var failed int
		for _, f := range files {
			if _, err := store.Process(cmd.Context(), f.Path, filepath.Base(f.Path)); err != nil {
				failed++
				if verbose {
					fmt.Fprintf(os.Stderr, "\nFailed: %s: %v\n", f.RelPath, err)
				}
			}
			_ = bar.Add(1)
		}

		if err := vectors.Persist(context.Background(), vectorDir); err != nil {
			return fmt.Errorf("persisting vector store: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Ingested %d document(s), %d failed. Vector store saved to %s.\n",
			len(files)-failed, failed, vectorDir)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringSliceVar(&ingestInclude, "include", nil, "Glob patterns to include (overrides config)")
	ingestCmd.Flags().StringSliceVar(&ingestExclude, "exclude", nil, "Glob patterns to exclude (overrides config)")
	rootCmd.AddCommand(ingestCmd)
}
