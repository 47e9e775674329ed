package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "doctrove",
	Short: "Document ingestion, classification, and semantic search",
	Long: `Doctrove ingests documents (PDF, DOCX, images, plain text), extracts
their text, classifies them, pulls out entities, dates, and key terms,
and indexes them in a vector store for semantic search. It exposes a
REST API and integrates with AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "doctrove.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
