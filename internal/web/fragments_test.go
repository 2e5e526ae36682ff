package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tressa-sh/tressa/internal/api"
)

func longSnippetBackend(t *testing.T, totalLines int) *httptest.Server {
	t.Helper()
	lines := make([]string, totalLines)
	for i := range lines {
		lines[i] = fmt.Sprintf("line_%d = %d", i, i)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tress/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.Tress{
			ID: 1, Title: "long", Content: strings.Join(lines, "\n"), Language: "python",
		})
	})
	return httptest.NewServer(mux)
}

func TestLineFragmentWindow(t *testing.T) {
	backend := longSnippetBackend(t, 500)
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/fragment/tress/1/lines?scroll_top=2400&view_height=600&buffer=15", nil)
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var frag lineFragment
	if err := json.NewDecoder(rec.Body).Decode(&frag); err != nil {
		t.Fatalf("decoding fragment: %v", err)
	}
	if frag.Start != 85 || frag.End != 140 {
		t.Errorf("window = [%d, %d), want [85, 140)", frag.Start, frag.End)
	}
	if frag.TotalLines != 500 {
		t.Errorf("total = %d", frag.TotalLines)
	}
	if frag.OffsetY != 85*24 {
		t.Errorf("offset = %d, want %d", frag.OffsetY, 85*24)
	}
	if !strings.Contains(frag.HTML, "line_85") {
		t.Error("fragment should contain the first windowed line")
	}
	if strings.Contains(frag.HTML, "line_300") {
		t.Error("fragment must not contain lines outside the window")
	}
}

func TestLineFragmentDefaults(t *testing.T) {
	backend := longSnippetBackend(t, 200)
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/fragment/tress/1/lines", nil))

	var frag lineFragment
	if err := json.NewDecoder(rec.Body).Decode(&frag); err != nil {
		t.Fatalf("decoding fragment: %v", err)
	}
	// defaults: 600px viewport, 15 line buffer, top of block
	if frag.Start != 0 || frag.End != 55 {
		t.Errorf("window = [%d, %d), want [0, 55)", frag.Start, frag.End)
	}
}

func TestLineFragmentMissingSnippet(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"not found"}`))
	}))
	defer backend.Close()
	s := newTestServer(t, backend)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/fragment/tress/1/lines", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
