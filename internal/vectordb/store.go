// Package vectordb stores document embeddings and answers nearest-neighbor
// queries. The registry treats it as an external capability: given text,
// return a vector; given a vector, return nearest neighbors.
package vectordb

import "context"

// EmbedTextCap bounds how much of a document's text is embedded.
const EmbedTextCap = 8000

// EntryMetadata is the descriptive payload stored alongside each vector.
type EntryMetadata struct {
	Filename string
	DocType  string
	Summary  string
}

// Result is one nearest-neighbor hit, ordered descending by Score.
// Score is a similarity in [0,1]; DocID correlates back to the registry.
type Result struct {
	VectorID string
	DocID    int
	Filename string
	DocType  string
	Summary  string
	Score    float32
}

// VectorStore is the contract the processing pipeline requires.
type VectorStore interface {
	// Add embeds a length-capped prefix of text and stores it together with
	// the metadata, returning an opaque vector ID.
	Add(ctx context.Context, docID int, text string, meta EntryMetadata) (string, error)

	// Query returns up to limit nearest neighbors for the query text.
	Query(ctx context.Context, text string, limit int) ([]Result, error)

	// QueryExcluding behaves like Query but drops the entry belonging to
	// docID, so a document never appears in its own related list.
	QueryExcluding(ctx context.Context, docID int, text string, limit int) ([]Result, error)

	// Remove deletes the entry with the given vector ID.
	Remove(ctx context.Context, vectorID string) error

	// Persist saves the store's data to the given directory, where backends
	// have local state to save.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error

	// Count returns the total number of entries in the store.
	Count() int
}

// truncateForEmbedding caps text at EmbedTextCap runes without splitting a
// multi-byte character.
func truncateForEmbedding(text string) string {
	if len(text) <= EmbedTextCap {
		return text
	}
	runes := []rune(text)
	if len(runes) <= EmbedTextCap {
		return text
	}
	return string(runes[:EmbedTextCap])
}
