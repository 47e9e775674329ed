package vectordb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"

	"github.com/doctrove/doctrove/internal/embeddings"
)

const collectionName = "documents"

const chromemExportFile = "chromem.gob.gz"

// ChromemStore implements VectorStore using the embedded chromem-go engine.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a new in-memory ChromemStore backed by the given
// embedder. Use Load/Persist to restore and save it across restarts.
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedFunc:  ef,
	}, nil
}

func (s *ChromemStore) Add(ctx context.Context, docID int, text string, meta EntryMetadata) (string, error) {
	vectorID := uuid.New().String()

	doc := chromem.Document{
		ID:      vectorID,
		Content: truncateForEmbedding(text),
		Metadata: map[string]string{
			"doc_id":   strconv.Itoa(docID),
			"filename": meta.Filename,
			"doc_type": meta.DocType,
			"summary":  meta.Summary,
		},
	}

	if err := s.collection.AddDocuments(ctx, []chromem.Document{doc}, 1); err != nil {
		return "", fmt.Errorf("chromem add: %w", err)
	}
	return vectorID, nil
}

func (s *ChromemStore) Query(ctx context.Context, text string, limit int) ([]Result, error) {
	return s.query(ctx, text, limit, -1)
}

func (s *ChromemStore) QueryExcluding(ctx context.Context, docID int, text string, limit int) ([]Result, error) {
	// Fetch one extra so the self-match can be dropped without shrinking
	// the result set.
	results, err := s.query(ctx, truncateForEmbedding(text), limit+1, docID)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// query runs a nearest-neighbor search. excludeDocID < 0 means no exclusion.
func (s *ChromemStore) query(ctx context.Context, text string, limit int, excludeDocID int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	hits, err := s.collection.Query(ctx, text, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		docID, _ := strconv.Atoi(h.Metadata["doc_id"])
		if excludeDocID >= 0 && docID == excludeDocID {
			continue
		}
		results = append(results, Result{
			VectorID: h.ID,
			DocID:    docID,
			Filename: h.Metadata["filename"],
			DocType:  h.Metadata["doc_type"],
			Summary:  h.Metadata["summary"],
			Score:    h.Similarity,
		})
	}
	return results, nil
}

func (s *ChromemStore) Remove(ctx context.Context, vectorID string) error {
	if err := s.collection.Delete(ctx, nil, nil, vectorID); err != nil {
		return fmt.Errorf("chromem delete: %w", err)
	}
	return nil
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating persist dir: %w", err)
	}
	return s.db.ExportToFile(filepath.Join(dir, chromemExportFile), true, "")
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	err := s.db.ImportFromFile(filepath.Join(dir, chromemExportFile), "")
	if err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}
