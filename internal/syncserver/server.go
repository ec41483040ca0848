// Package syncserver implements the store authority: a single keyed JSON
// document where each top-level key is a collection name. Writes replace
// the keyed entry wholesale, never patch.
package syncserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/dwikikusuma/masala-store/internal/domain"
)

const maxBodyBytes = 64 << 20

type Server struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

func New(path string, log *slog.Logger) *Server {
	return &Server{path: path, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/data/{key}", s.handleGet)
	mux.HandleFunc("POST /api/data/{key}", s.handleSet)
	mux.HandleFunc("GET /api/full-sync", s.handleSnapshot)
	return mux
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	s.mu.Lock()
	doc := s.read()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	raw, ok := doc[key]
	if !ok {
		w.Write([]byte("null"))
		return
	}
	w.Write(raw)
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	if !json.Valid(body) {
		http.Error(w, "body must be valid JSON", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	doc := s.read()
	doc[key] = body
	writeErr := s.write(doc)
	s.mu.Unlock()

	if writeErr != nil {
		s.log.Error("persist failed", slog.String("key", key), slog.Any("err", writeErr))
		http.Error(w, "persist failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Updated " + key,
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.read()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// read loads the document, falling back to a freshly provisioned one when
// the file is missing or unreadable.
func (s *Server) read() map[string]json.RawMessage {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return initialDoc()
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.log.Warn("document unreadable, starting fresh", slog.Any("err", err))
		return initialDoc()
	}
	return doc
}

func (s *Server) write(doc map[string]json.RawMessage) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func initialDoc() map[string]json.RawMessage {
	doc := make(map[string]json.RawMessage)
	for _, name := range domain.KnownCollections() {
		if name == domain.ColSettings {
			doc[name] = json.RawMessage("{}")
			continue
		}
		doc[name] = json.RawMessage("[]")
	}
	return doc
}
