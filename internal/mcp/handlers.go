package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/doctrove/doctrove/internal/registry"
)

// handleSearchDocuments performs semantic search over the document store.
func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	results, err := s.store.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. No matching documents have been uploaded yet."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetDocument returns a single document with its extracted metadata.
func (s *Server) handleGetDocument(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	doc, ok := s.store.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("document %d not found", id)), nil
	}

	return mcp.NewToolResultText(formatDocument(doc)), nil
}

// handleListDocuments lists every registered document.
func (s *Server) handleListDocuments(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs := s.store.List()
	if len(docs) == 0 {
		return mcp.NewToolResultText("No documents have been uploaded yet."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d document(s):\n", len(docs)))
	for _, doc := range docs {
		sb.WriteString(fmt.Sprintf("  #%d  %s  (%s)\n", doc.ID, doc.Filename, doc.Type))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleRelatedDocuments finds neighbours of an existing document.
func (s *Server) handleRelatedDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	results, err := s.store.Related(ctx, id, limit)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("document %d not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("related lookup failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No related documents found."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// formatSearchResults converts search results into a text format suited
// for AI agent consumption.
func formatSearchResults(results []registry.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("ID: %d\n", r.Document.ID))
		sb.WriteString(fmt.Sprintf("Filename: %s\n", r.Document.Filename))
		sb.WriteString(fmt.Sprintf("Type: %s\n", r.Document.Type))
		sb.WriteString(fmt.Sprintf("Similarity: %.1f%%\n", r.Score*100))
		if r.Document.Summary != "" {
			sb.WriteString("\n")
			sb.WriteString(r.Document.Summary)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func formatDocument(doc *registry.Document) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Document #%d: %s\n", doc.ID, doc.Filename))
	sb.WriteString(fmt.Sprintf("Type: %s\n", doc.Type))
	sb.WriteString(fmt.Sprintf("Uploaded: %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05")))

	if len(doc.Metadata.Entities) > 0 {
		sb.WriteString("Entities:\n")
		for _, e := range doc.Metadata.Entities {
			sb.WriteString(fmt.Sprintf("  %s (%s)\n", e.Text, e.Type))
		}
	}
	if len(doc.Metadata.Dates) > 0 {
		sb.WriteString(fmt.Sprintf("Dates: %s\n", strings.Join(doc.Metadata.Dates, ", ")))
	}
	if len(doc.Metadata.KeyTerms) > 0 {
		sb.WriteString(fmt.Sprintf("Key terms: %s\n", strings.Join(doc.Metadata.KeyTerms, ", ")))
	}
	for k, v := range doc.Metadata.DomainSpecific {
		sb.WriteString(fmt.Sprintf("%s: %s\n", k, v))
	}

	if doc.Summary != "" {
		sb.WriteString("\nSummary:\n")
		sb.WriteString(doc.Summary)
		sb.WriteString("\n")
	}

	preview := doc.API().Text
	if preview != "" {
		sb.WriteString("\nText preview:\n")
		sb.WriteString(preview)
		sb.WriteString("\n")
	}

	return sb.String()
}
