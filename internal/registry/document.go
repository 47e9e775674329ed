package registry

import (
	"time"

	"github.com/doctrove/doctrove/internal/classify"
	"github.com/doctrove/doctrove/internal/nlp"
)

// textPreviewLimit caps how much extracted text is exposed when a document
// is serialized.
const textPreviewLimit = 1000

// Document is one processed upload with its derived classification,
// metadata and summary. Documents are never updated in place.
type Document struct {
	ID        int
	Filename  string
	Filepath  string
	Type      classify.DocType
	Metadata  nlp.Metadata
	Summary   string
	Text      string
	VectorID  string
	CreatedAt time.Time
}

// DocumentJSON is the wire representation of a Document. Text is truncated
// to a preview; the full text never leaves the service.
type DocumentJSON struct {
	ID        int              `json:"id"`
	Filename  string           `json:"filename"`
	Filepath  string           `json:"filepath"`
	Type      classify.DocType `json:"type"`
	Metadata  nlp.Metadata     `json:"metadata"`
	Summary   string           `json:"summary"`
	Text      string           `json:"text"`
	VectorID  string           `json:"vector_id"`
	CreatedAt string           `json:"created_at"`
}

// API converts the document to its wire representation.
func (d *Document) API() DocumentJSON {
	text := d.Text
	if len([]rune(text)) > textPreviewLimit {
		text = string([]rune(text)[:textPreviewLimit]) + "..."
	}
	return DocumentJSON{
		ID:        d.ID,
		Filename:  d.Filename,
		Filepath:  d.Filepath,
		Type:      d.Type,
		Metadata:  d.Metadata,
		Summary:   d.Summary,
		Text:      text,
		VectorID:  d.VectorID,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}
