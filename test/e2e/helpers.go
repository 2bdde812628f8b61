package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// stubBackend mimics the repo-tutor backend's HTTP surface with
// in-memory state, close enough to drive the full client stack
type stubBackend struct {
	mu      sync.Mutex
	hasRepo bool
	repoURL string
}

// newStubServer starts a stub backend on an httptest server
func newStubServer(t *testing.T) (*httptest.Server, *stubBackend) {
	t.Helper()

	stub := &stubBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("/load_repo", stub.handleLoadRepo)
	mux.HandleFunc("/ask", stub.handleAsk)
	mux.HandleFunc("/process_repo", stub.handleProcessRepo)
	mux.HandleFunc("/health", stub.handleHealth)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, stub
}

func (s *stubBackend) handleLoadRepo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad form"})
		return
	}

	repoURL := r.PostFormValue("repo_url")
	if repoURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Please provide a valid GitHub repository URL."})
		return
	}

	s.mu.Lock()
	s.hasRepo = true
	s.repoURL = repoURL
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Repository loaded successfully.",
		"files":   []string{"main.go", "go.mod"},
	})
}

func (s *stubBackend) handleAsk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad form"})
		return
	}

	s.mu.Lock()
	hasRepo := s.hasRepo
	s.mu.Unlock()

	if !hasRepo {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No repository loaded yet. Please load a repository first."})
		return
	}

	question := r.PostFormValue("question")
	if question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing question."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": "Answer to: " + question})
}

func (s *stubBackend) handleProcessRepo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad multipart form"})
		return
	}

	role := r.FormValue("role")
	repoLink := r.FormValue("repo_link")
	if role == "" || repoLink == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing repo link or role."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": "Summary for " + role + " of " + repoLink})
}

func (s *stubBackend) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	hasRepo := s.hasRepo
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "has_repo": hasRepo})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
