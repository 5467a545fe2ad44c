package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// MockRepo is a repository served by MockGitHubServer
type MockRepo struct {
	DefaultBranch string
	Tarball       []byte
}

// RequestInfo captures a request for test assertions
type RequestInfo struct {
	Method  string
	Path    string
	Headers http.Header
}

// MockGitHubServer emulates the two GitHub REST endpoints the installer uses
type MockGitHubServer struct {
	*httptest.Server

	mu          sync.Mutex
	repos       map[string]MockRepo
	requests    []RequestInfo
	failStatus  int
	failHeaders map[string]string
	rawInfo     map[string]string
}

// NewMockGitHubServer starts a server that is closed when the test ends
func NewMockGitHubServer(t testing.TB) *MockGitHubServer {
	t.Helper()

	s := &MockGitHubServer{
		repos:   make(map[string]MockRepo),
		rawInfo: make(map[string]string),
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.failures)
	r.Get("/repos/{owner}/{repo}", s.handleRepo)
	r.Get("/repos/{owner}/{repo}/tarball/*", s.handleTarball)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// AddRepo registers a repository and its snapshot
func (s *MockGitHubServer) AddRepo(owner, name string, repo MockRepo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos[owner+"/"+name] = repo
}

// SetRawRepoInfo makes the metadata endpoint return body verbatim
func (s *MockGitHubServer) SetRawRepoInfo(owner, name, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawInfo[owner+"/"+name] = body
}

// FailWith makes every following request return status with headers
func (s *MockGitHubServer) FailWith(status int, headers map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failHeaders = headers
}

// Requests returns a copy of the recorded requests
func (s *MockGitHubServer) Requests() []RequestInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RequestInfo(nil), s.requests...)
}

func (s *MockGitHubServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, RequestInfo{
			Method:  r.Method,
			Path:    r.URL.Path,
			Headers: r.Header.Clone(),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *MockGitHubServer) failures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, headers := s.failStatus, s.failHeaders
		s.mu.Unlock()

		if status == 0 {
			next.ServeHTTP(w, r)
			return
		}
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"message":"mock failure"}`))
	})
}

func (s *MockGitHubServer) lookup(r *http.Request) (MockRepo, string, bool) {
	key := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo")
	s.mu.Lock()
	defer s.mu.Unlock()
	repo, ok := s.repos[key]
	return repo, key, ok
}

func (s *MockGitHubServer) handleRepo(w http.ResponseWriter, r *http.Request) {
	repo, key, ok := s.lookup(r)

	s.mu.Lock()
	raw, hasRaw := s.rawInfo[key]
	s.mu.Unlock()
	if hasRaw {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
		return
	}

	if !ok {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"full_name":      key,
		"default_branch": repo.DefaultBranch,
	})
}

func (s *MockGitHubServer) handleTarball(w http.ResponseWriter, r *http.Request) {
	repo, _, ok := s.lookup(r)
	if !ok || chi.URLParam(r, "*") != repo.DefaultBranch {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/x-gzip")
	_, _ = w.Write(repo.Tarball)
}
