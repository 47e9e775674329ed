package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/doctrove/doctrove/internal/extract"
)

const (
	defaultSearchLimit  = 10
	defaultRelatedLimit = 5
)

// RoutesDeps holds the dependencies needed to register document routes.
type RoutesDeps struct {
	Store     *Store
	UploadDir string
}

// RegisterRoutes wires up the document upload, retrieval and search
// endpoints.
func RegisterRoutes(r chi.Router, deps RoutesDeps) {
	h := &routeHandler{deps: deps}

	r.Post("/upload", h.upload)
	r.Get("/documents", h.listDocuments)
	r.Get("/documents/{id}", h.getDocument)
	r.Delete("/documents/{id}", h.deleteDocument)
	r.Get("/search", h.search)
	r.Get("/related/{id}", h.related)
}

type routeHandler struct {
	deps RoutesDeps
}

// searchResultJSON is the wire representation of one search hit.
type searchResultJSON struct {
	Document   DocumentJSON `json:"document"`
	Similarity float32      `json:"similarity"`
}

func toResultJSON(results []SearchResult) []searchResultJSON {
	out := make([]searchResultJSON, 0, len(results))
	for _, res := range results {
		out = append(out, searchResultJSON{
			Document:   res.Document.API(),
			Similarity: res.Score,
		})
	}
	return out
}

func (h *routeHandler) upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file part"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No selected file"})
		return
	}
	if !extract.Allowed(header.Filename) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "File type not allowed"})
		return
	}

	path, filename, err := h.saveUpload(file, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	doc, err := h.deps.Store.Process(r.Context(), path, filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"document": doc.API(),
	})
}

// saveUpload writes the uploaded file into the upload directory under a
// sanitized name and returns its path.
func (h *routeHandler) saveUpload(file io.Reader, rawName string) (path, filename string, err error) {
	if err := os.MkdirAll(h.deps.UploadDir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating upload dir: %w", err)
	}

	filename = sanitizeFilename(rawName)
	path = filepath.Join(h.deps.UploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", "", fmt.Errorf("saving file: %w", err)
	}
	return path, filename, nil
}

func (h *routeHandler) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs := h.deps.Store.List()
	out := make([]DocumentJSON, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.API())
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": out})
}

func (h *routeHandler) getDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Document not found"})
		return
	}

	doc, ok := h.deps.Store.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Document not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": doc.API()})
}

func (h *routeHandler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Document not found"})
		return
	}

	ok, warnings := h.deps.Store.Delete(r.Context(), id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Document not found"})
		return
	}
	for _, warn := range warnings {
		log.Printf("delete document %d: %v", id, warn)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Document %d deleted successfully", id),
	})
}

func (h *routeHandler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := queryLimit(r, defaultSearchLimit)

	results, err := h.deps.Store.Search(r.Context(), query, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": toResultJSON(results)})
}

func (h *routeHandler) related(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Document not found"})
		return
	}
	limit := queryLimit(r, defaultRelatedLimit)

	results, err := h.deps.Store.Related(r.Context(), id, limit)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Document not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"related": toResultJSON(results)})
}

// queryLimit parses the limit query parameter, falling back to def.
func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}

// unsafeFilenameChars matches everything not allowed in a stored filename.
var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// sanitizeFilename strips any path components and replaces unsafe
// characters so uploads cannot escape the upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		name = "upload"
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
