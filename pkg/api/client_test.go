package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_LoadRepo_Success(t *testing.T) {
	// Create mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/load_repo" {
			t.Errorf("Expected path /load_repo, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
			t.Errorf("Expected form-urlencoded content type, got %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		if got := r.PostFormValue("repo_url"); got != "https://github.com/owner/repo" {
			t.Errorf("Expected repo_url field, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Repository loaded successfully.",
			"files":   []string{"main.go", "go.mod"},
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	result, err := client.LoadRepo(context.Background(), "https://github.com/owner/repo")
	if err != nil {
		t.Fatalf("LoadRepo failed: %v", err)
	}

	if result.Message != "Repository loaded successfully." {
		t.Errorf("Expected load message, got %q", result.Message)
	}
	if len(result.Files) != 2 {
		t.Errorf("Expected 2 files, got %d", len(result.Files))
	}
}

func TestClient_LoadRepo_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "rate limited"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, err := client.LoadRepo(context.Background(), "https://github.com/owner/repo")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %T", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", statusErr.Code)
	}
	if statusErr.Message != "rate limited" {
		t.Errorf("Expected server error message, got %q", statusErr.Message)
	}
}

func TestClient_LoadRepo_ErrorBodyNotJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, err := client.LoadRepo(context.Background(), "https://github.com/owner/repo")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %v", err)
	}
	if statusErr.Message != "" {
		t.Errorf("Expected empty message for unparseable error body, got %q", statusErr.Message)
	}
}

func TestClient_LoadRepo_UnexpectedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, err := client.LoadRepo(context.Background(), "https://github.com/owner/repo")
	if !errors.Is(err, ErrUnexpectedBody) {
		t.Errorf("Expected ErrUnexpectedBody, got %v", err)
	}
}

func TestClient_Ask_SendsPersona(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ask" {
			t.Errorf("Expected path /ask, got %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		if got := r.PostFormValue("question"); got != "What does this repo do?" {
			t.Errorf("Expected question field, got %q", got)
		}
		if got := r.PostFormValue("persona"); got != "student (advanced)" {
			t.Errorf("Expected persona field, got %q", got)
		}

		json.NewEncoder(w).Encode(map[string]string{"answer": "It tutors you."})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	result, err := client.Ask(context.Background(), "What does this repo do?", "student (advanced)")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if result.Answer != "It tutors you." {
		t.Errorf("Expected answer, got %q", result.Answer)
	}
}

func TestClient_Ask_OmitsEmptyPersona(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		if _, ok := r.PostForm["persona"]; ok {
			t.Error("Expected persona field to be omitted")
		}
		json.NewEncoder(w).Encode(map[string]string{"answer": "ok"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	if _, err := client.Ask(context.Background(), "short?", ""); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
}

func TestClient_ProcessRepo_MultipartFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/process_repo" {
			t.Errorf("Expected path /process_repo, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
			t.Errorf("Expected multipart content type, got %s", ct)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("role"); got != "project_manager" {
			t.Errorf("Expected role field, got %q", got)
		}
		if got := r.FormValue("repo_link"); got != "https://github.com/owner/repo" {
			t.Errorf("Expected repo_link field, got %q", got)
		}

		json.NewEncoder(w).Encode(map[string]string{"summary": "A CLI tool."})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	result, err := client.ProcessRepo(context.Background(), "project_manager", "https://github.com/owner/repo")
	if err != nil {
		t.Fatalf("ProcessRepo failed: %v", err)
	}
	if result.Summary != "A CLI tool." {
		t.Errorf("Expected summary, got %q", result.Summary)
	}
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/health" {
			t.Errorf("Expected path /health, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "has_repo": true})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("Expected status ok, got %q", status.Status)
	}
	if !status.HasRepo {
		t.Error("Expected has_repo true")
	}
}

func TestClient_Timeout(t *testing.T) {
	// Create slow mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 10 * time.Millisecond,
	})

	_, err := client.Ask(context.Background(), "hello?", "")
	if err == nil {
		t.Error("Expected timeout error, got nil")
	}
}

func TestClient_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("Expected path /health, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL + "/"})

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}
}
