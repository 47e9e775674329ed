package vectordb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/doctrove/doctrove/internal/embeddings"
)

// QdrantStore implements VectorStore against an external qdrant server
// over gRPC. Persistence is handled server-side, so Persist and Load are
// no-ops.
type QdrantStore struct {
	client   *qdrant.Client
	embedder embeddings.Embedder
}

// NewQdrantStore connects to qdrant, verifies it is reachable and ensures
// the documents collection exists with cosine distance.
func NewQdrantStore(host string, port int, embedder embeddings.Embedder) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("creating qdrant client: %w", err)
	}

	s := &QdrantStore{client: client, embedder: embedder}

	ctx := context.Background()
	if _, err := client.HealthCheck(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("qdrant unreachable at %s:%d: %w", host, port, err)
	}

	if err := s.ensureCollection(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return s, nil
}

// ensureCollection creates the documents collection and its doc_id payload
// index if they do not exist yet. Idempotent.
func (s *QdrantStore) ensureCollection(ctx context.Context) error {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	for _, name := range collections {
		if name == collectionName {
			return nil
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.embedder.Dimensions()),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	// Index doc_id so the related-documents exclusion filter stays fast.
	_, err = s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: collectionName,
		FieldName:      "doc_id",
		FieldType:      qdrant.FieldType_FieldTypeInteger.Enum(),
	})
	if err != nil {
		return fmt.Errorf("creating doc_id index: %w", err)
	}
	return nil
}

func (s *QdrantStore) Add(ctx context.Context, docID int, text string, meta EntryMetadata) (string, error) {
	vectors, err := s.embedder.Embed(ctx, []string{truncateForEmbedding(text)})
	if err != nil {
		return "", fmt.Errorf("embedding document: %w", err)
	}
	if len(vectors) == 0 {
		return "", fmt.Errorf("embedder returned no vector")
	}

	vectorID := uuid.New().String()
	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(vectorID),
				Vectors: qdrant.NewVectors(vectors[0]...),
				Payload: qdrant.NewValueMap(map[string]any{
					"doc_id":   int64(docID),
					"filename": meta.Filename,
					"doc_type": meta.DocType,
					"summary":  meta.Summary,
				}),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("qdrant upsert: %w", err)
	}
	return vectorID, nil
}

func (s *QdrantStore) Query(ctx context.Context, text string, limit int) ([]Result, error) {
	return s.query(ctx, text, limit, nil)
}

func (s *QdrantStore) QueryExcluding(ctx context.Context, docID int, text string, limit int) ([]Result, error) {
	filter := &qdrant.Filter{
		MustNot: []*qdrant.Condition{
			qdrant.NewMatchInt("doc_id", int64(docID)),
		},
	}
	// One extra in case the server still returns the self-match.
	results, err := s.query(ctx, truncateForEmbedding(text), limit+1, filter)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *QdrantStore) query(ctx context.Context, text string, limit int, filter *qdrant.Filter) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	vectors, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vectors[0]...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query: %w", err)
	}

	results := make([]Result, 0, len(points))
	for _, p := range points {
		payload := p.GetPayload()
		results = append(results, Result{
			VectorID: p.GetId().GetUuid(),
			DocID:    int(payload["doc_id"].GetIntegerValue()),
			Filename: payload["filename"].GetStringValue(),
			DocType:  payload["doc_type"].GetStringValue(),
			Summary:  payload["summary"].GetStringValue(),
			Score:    p.GetScore(),
		})
	}
	return results, nil
}

func (s *QdrantStore) Remove(ctx context.Context, vectorID string) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewIDUUID(vectorID)),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete: %w", err)
	}
	return nil
}

// Persist is a no-op: qdrant persists server-side.
func (s *QdrantStore) Persist(ctx context.Context, dir string) error { return nil }

// Load is a no-op: qdrant persists server-side.
func (s *QdrantStore) Load(ctx context.Context, dir string) error { return nil }

func (s *QdrantStore) Count() int {
	count, err := s.client.Count(context.Background(), &qdrant.CountPoints{
		CollectionName: collectionName,
	})
	if err != nil {
		return 0
	}
	return int(count)
}

// Close releases the underlying gRPC connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}
