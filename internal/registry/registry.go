// Package registry owns the in-memory document collection and orchestrates
// the processing pipeline: extract, classify, derive metadata, summarize,
// embed, store. The collection is volatile: it is rebuilt from nothing on
// every process restart, while the vector store may persist.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/doctrove/doctrove/internal/classify"
	"github.com/doctrove/doctrove/internal/extract"
	"github.com/doctrove/doctrove/internal/nlp"
	"github.com/doctrove/doctrove/internal/vectordb"
)

// ErrNotFound is returned when a document ID is not in the registry.
var ErrNotFound = errors.New("document not found")

// CleanupWarning records a best-effort cleanup step that failed during
// deletion. Callers may log it; it never fails the delete itself.
type CleanupWarning struct {
	Op  string
	Err error
}

func (w CleanupWarning) Error() string {
	return fmt.Sprintf("%s: %v", w.Op, w.Err)
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document *Document
	Score    float32
}

// Store holds all documents keyed by ID. IDs are assigned monotonically and
// never reused; mutations are guarded by a mutex so concurrent requests
// cannot race on ID assignment or map writes.
type Store struct {
	mu      sync.Mutex
	docs    map[int]*Document
	order   []int
	nextID  int
	vectors vectordb.VectorStore
}

// NewStore creates an empty registry backed by the given vector store.
func NewStore(vectors vectordb.VectorStore) *Store {
	return &Store{
		docs:    make(map[int]*Document),
		nextID:  1,
		vectors: vectors,
	}
}

// Process runs the full pipeline over the file at path and registers the
// resulting document. Classification runs before metadata extraction
// because the metadata extractor dispatches on the document type. The
// vector store write happens before registration: if it fails, nothing is
// registered and the error propagates.
func (s *Store) Process(ctx context.Context, path, filename string) (*Document, error) {
	text, err := extract.Text(path)
	if err != nil {
		return nil, fmt.Errorf("extracting text: %w", err)
	}

	docType := classify.Document(text)

	metadata, err := nlp.ExtractMetadata(text, docType)
	if err != nil {
		return nil, fmt.Errorf("extracting metadata: %w", err)
	}

	summary, err := nlp.Summarize(text)
	if err != nil {
		return nil, fmt.Errorf("summarizing: %w", err)
	}

	id := s.allocateID()

	vectorID, err := s.vectors.Add(ctx, id, text, vectordb.EntryMetadata{
		Filename: filename,
		DocType:  string(docType),
		Summary:  summary,
	})
	if err != nil {
		// The allocated ID is burnt; IDs are never reused.
		return nil, fmt.Errorf("adding to vector store: %w", err)
	}

	doc := &Document{
		ID:        id,
		Filename:  filename,
		Filepath:  path,
		Type:      docType,
		Metadata:  metadata,
		Summary:   summary,
		Text:      text,
		VectorID:  vectorID,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.docs[id] = doc
	s.order = append(s.order, id)
	s.mu.Unlock()

	return doc, nil
}

func (s *Store) allocateID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id
}

// Get returns the document with the given ID.
func (s *Store) Get(id int) (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// List returns all documents in insertion order.
func (s *Store) List() []*Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]*Document, 0, len(s.order))
	for _, id := range s.order {
		if doc, ok := s.docs[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Count returns the number of registered documents.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Search finds documents similar to the query text. An empty query returns
// no results without touching the vector store. Hits whose document is no
// longer registered are dropped silently.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []SearchResult{}, nil
	}

	hits, err := s.vectors.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying vector store: %w", err)
	}
	return s.resolve(hits), nil
}

// Related finds documents similar to the given document, excluding the
// document itself from the results.
func (s *Store) Related(ctx context.Context, id, limit int) ([]SearchResult, error) {
	doc, ok := s.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	hits, err := s.vectors.QueryExcluding(ctx, id, doc.Text, limit)
	if err != nil {
		return nil, fmt.Errorf("querying vector store: %w", err)
	}
	return s.resolve(hits), nil
}

// resolve maps vector hits back to registered documents, dropping hits for
// documents that have since been deleted.
func (s *Store) resolve(hits []vectordb.Result) []SearchResult {
	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		if doc, ok := s.Get(hit.DocID); ok {
			results = append(results, SearchResult{Document: doc, Score: hit.Score})
		}
	}
	return results
}

// Delete removes the document with the given ID. The vector entry and the
// underlying file are removed best-effort: their failures are reported as
// warnings, not errors, and never block removal from the registry.
func (s *Store) Delete(ctx context.Context, id int) (bool, []CleanupWarning) {
	doc, ok := s.Get(id)
	if !ok {
		return false, nil
	}

	var warnings []CleanupWarning

	if err := s.vectors.Remove(ctx, doc.VectorID); err != nil {
		warnings = append(warnings, CleanupWarning{Op: "removing vector entry", Err: err})
	}

	if err := os.Remove(doc.Filepath); err != nil && !os.IsNotExist(err) {
		warnings = append(warnings, CleanupWarning{Op: "removing file", Err: err})
	}

	s.mu.Lock()
	delete(s.docs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return true, warnings
}
