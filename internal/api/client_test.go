package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"username":"alice","email":"a@example.com"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, StaticToken("tok-123"))
	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoTokenMeansAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[],"pagination":{"page":1,"page_size":20,"total_items":0,"total_pages":0,"has_next":false,"has_prev":false}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, StaticToken(""))
	if _, err := client.PublicPages(context.Background(), 1, 20); err != nil {
		t.Fatalf("PublicPages: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestLoginSendsFormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("expected form content type, got %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if r.PostFormValue("username") != "alice" || r.PostFormValue("password") != "s3cret" {
			t.Errorf("unexpected credentials: %v", r.PostForm)
		}
		w.Write([]byte(`{"access_token":"tok","username":"alice"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	tok, err := client.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok.AccessToken != "tok" || tok.Username != "alice" {
		t.Errorf("unexpected token response: %+v", tok)
	}
}

func TestCreateSendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		w.Write([]byte(`{"id":7,"title":"t","content":"c","language":"go","is_public":true,"owner_id":null,"owner_username":null,"created_at":"now","expires_at":null}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	created, err := client.CreateTress(context.Background(), CreateTressRequest{
		Title: "t", Content: "c", Language: "go", IsPublic: true,
	}, true)
	if err != nil {
		t.Fatalf("CreateTress: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("expected id 7, got %d", created.ID)
	}
	if created.OwnerID != nil {
		t.Errorf("expected anonymous snippet, got owner %v", *created.OwnerID)
	}
}

func TestErrorDetailSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"title is required"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.GetTress(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := UserMessage(err); got != "title is required" {
		t.Errorf("expected backend detail verbatim, got %q", got)
	}
}

func TestUnparseableErrorBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>boom</html>`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.GetTress(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := UserMessage(err); got != fallbackDetail {
		t.Errorf("expected fallback detail, got %q", got)
	}
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(srv.URL, StaticToken("tok"))
	if err := client.DeleteTress(context.Background(), 5); err != nil {
		t.Fatalf("DeleteTress: %v", err)
	}
}

func TestRawContentBypassesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tress/3/raw" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if accept := r.Header.Get("Accept"); accept != "text/plain" {
			t.Errorf("expected Accept text/plain, got %q", accept)
		}
		w.Write([]byte("plain body, not json"))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	content, err := client.RawContent(context.Background(), 3)
	if err != nil {
		t.Fatalf("RawContent: %v", err)
	}
	if content != "plain body, not json" {
		t.Errorf("unexpected content %q", content)
	}
}

func TestPagesQueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tress/public/pages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "3" || q.Get("page_size") != "10" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"items":[],"pagination":{"page":3,"page_size":10,"total_items":25,"total_pages":3,"has_next":false,"has_prev":true}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	resp, err := client.PublicPages(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("PublicPages: %v", err)
	}
	if !resp.Pagination.HasPrev || resp.Pagination.HasNext {
		t.Errorf("unexpected pagination %+v", resp.Pagination)
	}
}
