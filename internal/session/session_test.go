package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tressa-sh/tressa/internal/api"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open missing file: %v", err)
	}
	if s.Token() != "" {
		t.Errorf("fresh store should be empty, got token %q", s.Token())
	}

	if err := s.Save(Session{Token: "tok", UserID: "42", Username: "alice"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file should be 0600, got %o", perm)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := reopened.Current()
	if got.Token != "tok" || got.UserID != "42" || got.Username != "alice" {
		t.Errorf("unexpected session after reopen: %+v", got)
	}
}

func TestStoreClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, _ := Open(path)
	if err := s.Save(Session{Token: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Token() != "" {
		t.Error("Clear must drop in-memory state")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Clear must remove the file, stat returned %v", err)
	}
	// clearing an already-clean store is fine
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestHydrateRunsOnce(t *testing.T) {
	var meCalls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		w.Write([]byte(`{"id":42,"username":"alice","email":"a@example.com"}`))
	}))
	defer srv.Close()

	store := tempStore(t)
	if err := store.Save(Session{Token: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m := NewManager(store, api.New(srv.URL, store))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Hydrate(context.Background())
		}()
	}
	wg.Wait()
	m.Hydrate(context.Background())

	if got := meCalls.Load(); got != 1 {
		t.Errorf("expected exactly one who-am-i call, got %d", got)
	}
	if !m.IsLoggedIn() || m.Username() != "alice" || m.UserID() != "42" {
		t.Errorf("unexpected session state: loggedIn=%v user=%q id=%q",
			m.IsLoggedIn(), m.Username(), m.UserID())
	}
}

func TestHydrateSkipsWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend without a token")
	}))
	defer srv.Close()

	store := tempStore(t)
	m := NewManager(store, api.New(srv.URL, store))
	m.Hydrate(context.Background())
	if m.IsLoggedIn() {
		t.Error("hydrate without token must stay logged out")
	}
}

func TestHydrateFailureClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid token"}`))
	}))
	defer srv.Close()

	store := tempStore(t)
	if err := store.Save(Session{Token: "stale", Username: "alice"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m := NewManager(store, api.New(srv.URL, store))
	m.Hydrate(context.Background())

	if m.IsLoggedIn() {
		t.Error("a rejected token must log the session out")
	}
	if store.Token() != "" {
		t.Errorf("stale token must be cleared, got %q", store.Token())
	}
}

func TestLoginLogoutCycle(t *testing.T) {
	store := tempStore(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	m := NewManager(store, api.New(srv.URL, store))
	if err := m.Login("tok", "alice"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !m.IsLoggedIn() || m.Username() != "alice" || store.Token() != "tok" {
		t.Error("login must persist token and mark the session active")
	}

	m.Logout()
	if m.IsLoggedIn() || m.Username() != "" || store.Token() != "" {
		t.Error("logout must clear both in-memory and persisted state")
	}
}

func TestNewManagerPanicsOnMissingDeps(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil dependencies")
		}
	}()
	NewManager(nil, nil)
}
