package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/doctrove/doctrove/internal/registry"
	"github.com/doctrove/doctrove/internal/vectordb"
)

// fakeVectorStore implements vectordb.VectorStore for testing. It records
// additions in order and answers queries with every entry, scores descending.
type fakeVectorStore struct {
	entries []fakeEntry
}

type fakeEntry struct {
	vectorID string
	docID    int
	meta     vectordb.EntryMetadata
}

func (f *fakeVectorStore) Add(_ context.Context, docID int, _ string, meta vectordb.EntryMetadata) (string, error) {
	id := "vec-" + meta.Filename
	f.entries = append(f.entries, fakeEntry{vectorID: id, docID: docID, meta: meta})
	return id, nil
}

func (f *fakeVectorStore) hits(limit, excludeDocID int) []vectordb.Result {
	var out []vectordb.Result
	score := float32(0.99)
	for _, e := range f.entries {
		if e.docID == excludeDocID {
			continue
		}
		out = append(out, vectordb.Result{
			VectorID: e.vectorID,
			DocID:    e.docID,
			Filename: e.meta.Filename,
			DocType:  e.meta.DocType,
			Summary:  e.meta.Summary,
			Score:    score,
		})
		score -= 0.05
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (f *fakeVectorStore) Query(_ context.Context, _ string, limit int) ([]vectordb.Result, error) {
	return f.hits(limit, -1), nil
}

func (f *fakeVectorStore) QueryExcluding(_ context.Context, docID int, _ string, limit int) ([]vectordb.Result, error) {
	return f.hits(limit, docID), nil
}

func (f *fakeVectorStore) Remove(_ context.Context, _ string) error  { return nil }
func (f *fakeVectorStore) Persist(_ context.Context, _ string) error { return nil }
func (f *fakeVectorStore) Load(_ context.Context, _ string) error    { return nil }
func (f *fakeVectorStore) Count() int                                { return len(f.entries) }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := registry.NewStore(&fakeVectorStore{})
	dir := t.TempDir()
	for name, text := range map[string]string{
		"invoice.txt": "Invoice #123 total amount due: $450.00 for consulting services rendered.",
		"resume.txt":  "Curriculum vitae with education and work experience in software skills.",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Process(context.Background(), path, name); err != nil {
			t.Fatalf("Process(%s): %v", name, err)
		}
	}
	return NewServer(store)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{searchDocumentsTool, "search_documents"},
		{getDocumentTool, "get_document"},
		{listDocumentsTool, "list_documents"},
		{relatedDocumentsTool, "related_documents"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestHandleSearchDocuments(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleSearchDocuments(context.Background(), callRequest("search_documents", map[string]any{
		"query": "consulting invoice",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, "invoice.txt") {
		t.Errorf("result should mention invoice.txt, got:\n%s", text)
	}
	if !strings.Contains(text, "Invoice") {
		t.Errorf("result should include the document type, got:\n%s", text)
	}
}

func TestHandleSearchDocumentsMissingQuery(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleSearchDocuments(context.Background(), callRequest("search_documents", map[string]any{}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing query")
	}
}

func TestHandleGetDocument(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGetDocument(context.Background(), callRequest("get_document", map[string]any{
		"id": 1,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Document #1") {
		t.Errorf("result should include the document header, got:\n%s", text)
	}

	result, err = s.handleGetDocument(context.Background(), callRequest("get_document", map[string]any{
		"id": 99,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for unknown document")
	}
}

func TestHandleListDocuments(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleListDocuments(context.Background(), callRequest("list_documents", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "2 document(s)") {
		t.Errorf("expected 2 documents listed, got:\n%s", text)
	}
	if !strings.Contains(text, "#1") || !strings.Contains(text, "#2") {
		t.Errorf("expected both document IDs, got:\n%s", text)
	}
}

func TestHandleRelatedDocuments(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleRelatedDocuments(context.Background(), callRequest("related_documents", map[string]any{
		"id": 1,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if strings.Contains(text, "invoice.txt") {
		t.Errorf("related results should exclude the source document, got:\n%s", text)
	}

	result, err = s.handleRelatedDocuments(context.Background(), callRequest("related_documents", map[string]any{
		"id": 42,
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for unknown document")
	}
}
