package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/tressa-sh/tressa/internal/api"
)

// newTestServer builds a frontend wired to the given fake backend.
func newTestServer(t *testing.T, backend *httptest.Server) *Server {
	t.Helper()
	s, err := New(Config{Port: 0, LineNumbers: true, PageSize: 20}, api.New(backend.URL, nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// snippetBackend serves a single tress and an empty public listing.
func snippetBackend(t *testing.T, tress api.Tress) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tress/public/pages", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.PageResponse{Pagination: api.PaginationInfo{Page: 1, PageSize: 20}})
	})
	mux.HandleFunc(fmt.Sprintf("GET /api/tress/%d", tress.ID), func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tress)
	})
	mux.HandleFunc(fmt.Sprintf("GET /api/tress/%d/raw", tress.ID), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(tress.Content))
	})
	return httptest.NewServer(mux)
}

func withSession(r *http.Request, token, userID, username string) *http.Request {
	r.AddCookie(&http.Cookie{Name: cookieToken, Value: token})
	r.AddCookie(&http.Cookie{Name: cookieUserID, Value: userID})
	r.AddCookie(&http.Cookie{Name: cookieUsername, Value: username})
	return r
}

func TestHealthz(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	defer backend.Close()
	s := newTestServer(t, backend)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("expected CORS headers for localhost origin")
	}
}

func TestHomeRendersPublicList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tress/public/pages", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.PageResponse{
			Items: []api.TressPreview{{ID: 1, Title: "hello world", Language: "go"}},
			Pagination: api.PaginationInfo{
				Page: 1, PageSize: 20, TotalItems: 1, TotalPages: 1,
			},
		})
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "hello world") {
		t.Error("home page should list the public snippet")
	}
}

func TestHomeBackendFailureShowsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tress/public/pages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"listing broke"}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "listing broke") {
		t.Error("backend detail should surface on the page")
	}
}

func TestViewShowsDeleteOnlyToOwner(t *testing.T) {
	owner := 42
	username := "alice"
	backend := snippetBackend(t, api.Tress{
		ID: 5, Title: "mine", Content: "x := 1", Language: "go",
		IsPublic: true, OwnerID: &owner, OwnerUsername: &username,
	})
	defer backend.Close()
	s := newTestServer(t, backend)

	// owner sees the delete form
	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest("GET", "/tress/5", nil), "tok", "42", "alice")
	s.Router().ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "/tress/5/delete") {
		t.Error("owner should see the delete affordance")
	}

	// a different logged-in user does not
	rec = httptest.NewRecorder()
	req = withSession(httptest.NewRequest("GET", "/tress/5", nil), "tok", "7", "bob")
	s.Router().ServeHTTP(rec, req)
	if strings.Contains(rec.Body.String(), "/tress/5/delete") {
		t.Error("non-owners must not see the delete affordance")
	}

	// neither does an anonymous visitor
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/tress/5", nil))
	if strings.Contains(rec.Body.String(), "/tress/5/delete") {
		t.Error("anonymous visitors must not see the delete affordance")
	}
}

func TestViewAnonymousSnippetNeverDeletable(t *testing.T) {
	backend := snippetBackend(t, api.Tress{
		ID: 9, Title: "anon", Content: "x", Language: "text", IsPublic: true,
	})
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	req := withSession(httptest.NewRequest("GET", "/tress/9", nil), "tok", "42", "alice")
	s.Router().ServeHTTP(rec, req)
	if strings.Contains(rec.Body.String(), "/tress/9/delete") {
		t.Error("ownerless snippets are owned by nobody")
	}
}

func TestViewExpiredSnippet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tress/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"This tress has expired"}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/tress/3", nil))
	if !strings.Contains(rec.Body.String(), "This tress has expired") {
		t.Error("expired detail should surface on the page")
	}
}

func TestCreateRequiresTitleAndContent(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	defer backend.Close()
	s := newTestServer(t, backend)

	form := url.Values{"title": {""}, "content": {"x"}}
	req := httptest.NewRequest("POST", "/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "title and content are required") {
		t.Error("missing title should re-render the editor with an error")
	}
}

func TestCreateEnforcesAnonymousSizeCap(t *testing.T) {
	var backendHit bool
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHit = true
	}))
	defer backend.Close()
	s := newTestServer(t, backend)

	form := url.Values{
		"title":   {"big"},
		"content": {strings.Repeat("x", 262145)},
	}
	req := httptest.NewRequest("POST", "/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if backendHit {
		t.Error("over-cap content must be rejected before reaching the backend")
	}
	if !strings.Contains(rec.Body.String(), "byte limit") {
		t.Error("editor should show the size error")
	}
}

func TestCreateEnforcesAnonymousExpiryBound(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	defer backend.Close()
	s := newTestServer(t, backend)

	form := url.Values{
		"title":           {"t"},
		"content":         {"c"},
		"expires_in_days": {"366"},
	}
	req := httptest.NewRequest("POST", "/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "365") {
		t.Error("anonymous expiry over a year should be rejected client-side")
	}
}

func TestCreateRedirectsToNewSnippet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/tress/", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateTressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding create request: %v", err)
		}
		if req.Title != "t" {
			t.Errorf("unexpected title %q", req.Title)
		}
		json.NewEncoder(w).Encode(api.Tress{ID: 77, Title: req.Title, Content: req.Content})
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()
	s := newTestServer(t, backend)

	form := url.Values{"title": {"t"}, "content": {"c"}, "language": {"go"}, "is_public": {"on"}}
	req := httptest.NewRequest("POST", "/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/tress/77" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRawProxy(t *testing.T) {
	backend := snippetBackend(t, api.Tress{ID: 5, Content: "raw body here"})
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/tress/5/raw", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "raw body here" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRawProxyPassesBackendStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tress/8/raw", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"no such tress"}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/tress/8/raw", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestLoginSetsSessionCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.TokenResponse{AccessToken: "tok-1", Username: "alice"})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("me called with %q", got)
		}
		json.NewEncoder(w).Encode(api.UserProfile{ID: 42, Username: "alice"})
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()
	s := newTestServer(t, backend)

	form := url.Values{"username": {"alice"}, "password": {"pw"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	cookies := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	if cookies[cookieToken] != "tok-1" || cookies[cookieUserID] != "42" || cookies[cookieUsername] != "alice" {
		t.Errorf("unexpected cookies %v", cookies)
	}
}

func TestLoginFailureStaysOnForm(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"incorrect username or password"}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()
	s := newTestServer(t, backend)

	form := url.Values{"username": {"alice"}, "password": {"wrong"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "incorrect username or password") {
		t.Error("login error should render inline")
	}
}

func TestLogoutClearsCookies(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	defer backend.Close()
	s := newTestServer(t, backend)

	req := withSession(httptest.NewRequest("POST", "/logout", nil), "tok", "42", "alice")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge != -1 {
			t.Errorf("cookie %s not expired", c.Name)
		}
	}
}
