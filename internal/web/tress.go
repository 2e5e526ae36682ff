package web

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tressa-sh/tressa/internal/api"
	"github.com/tressa-sh/tressa/internal/render"
)

// createPageData is the template data for the editor page.
type createPageData struct {
	Viewer    viewer
	Error     string
	Title     string
	Content   string
	Language  string
	IsPublic  bool
	ExpiresIn string
	SizeCap   int
	Languages []string
}

// editorLanguages is the language tags offered by the editor dropdown.
var editorLanguages = []string{
	"text", "markdown", "go", "python", "javascript", "typescript", "rust",
	"c", "cpp", "java", "ruby", "php", "shell", "sql", "html", "css", "json",
	"yaml", "toml", "xml",
}

func (s *Server) newCreatePageData(v viewer) createPageData {
	return createPageData{
		Viewer:    v,
		Language:  "text",
		IsPublic:  true,
		SizeCap:   render.SizeCap(v.LoggedIn),
		Languages: editorLanguages,
	}
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "create", s.newCreatePageData(viewerFrom(r)))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	v := viewerFrom(r)
	data := s.newCreatePageData(v)

	if err := r.ParseForm(); err != nil {
		data.Error = "invalid form submission"
		s.render(w, "create", data)
		return
	}
	data.Title = r.PostFormValue("title")
	data.Content = r.PostFormValue("content")
	data.Language = r.PostFormValue("language")
	data.IsPublic = r.PostFormValue("is_public") != ""
	data.ExpiresIn = r.PostFormValue("expires_in_days")

	if data.Title == "" || data.Content == "" {
		data.Error = "title and content are required"
		s.render(w, "create", data)
		return
	}
	if err := render.CheckSize(data.Content, v.LoggedIn); err != nil {
		data.Error = err.Error()
		s.render(w, "create", data)
		return
	}

	req := api.CreateTressRequest{
		Title:    data.Title,
		Content:  data.Content,
		Language: data.Language,
		IsPublic: data.IsPublic,
	}
	if data.ExpiresIn != "" {
		days, err := strconv.Atoi(data.ExpiresIn)
		if err != nil {
			data.Error = "expiration must be a number of days"
			s.render(w, "create", data)
			return
		}
		req.ExpiresInDays = &days
	}
	if err := render.CheckExpiry(req.ExpiresInDays, v.LoggedIn); err != nil {
		data.Error = err.Error()
		s.render(w, "create", data)
		return
	}

	created, err := s.apiFor(v).CreateTress(r.Context(), req, !v.LoggedIn)
	if err != nil {
		data.Error = api.UserMessage(err)
		s.render(w, "create", data)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/tress/%d", created.ID), http.StatusSeeOther)
}

// viewPageData is the template data for the single-snippet page.
type viewPageData struct {
	Viewer    viewer
	Tress     *api.Tress
	Rendered  template.HTML
	CanDelete bool
	Error     string
	Expired   bool
	RawURL    string
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v := viewerFrom(r)
	data := viewPageData{Viewer: v}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	tress, err := s.apiFor(v).GetTress(r.Context(), id)
	if err != nil {
		data.Error = api.UserMessage(err)
		data.Expired = errors.Is(err, api.ErrExpired)
		s.render(w, "view", data)
		return
	}
	data.Tress = tress
	data.RawURL = fmt.Sprintf("/tress/%d/raw", tress.ID)

	// Delete is offered only when the cached local user id matches the
	// owner; anonymous snippets are never deletable.
	data.CanDelete = v.LoggedIn && tress.OwnedBy(v.UserID)

	opts := render.CodeOptions{
		Dark:        s.cfg.Dark,
		LineNumbers: s.cfg.LineNumbers,
		Container:   true,
	}
	if render.IsMarkdown(tress.Language) {
		data.Rendered, err = render.Markdown(tress.Content, render.MarkdownOptions{
			Dark:        s.cfg.Dark,
			LineNumbers: s.cfg.LineNumbers,
		})
	} else {
		data.Rendered, err = render.CodeBlock(tress.Content, tress.Language, opts)
	}
	if err != nil {
		data.Error = "failed to render content"
	}
	s.render(w, "view", data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	v := viewerFrom(r)
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.apiFor(v).DeleteTress(r.Context(), id); err != nil {
		s.render(w, "view", viewPageData{Viewer: v, Error: api.UserMessage(err)})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRaw proxies the backend's raw content endpoint as text/plain.
func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	content, err := s.client.RawContent(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		http.Error(w, api.UserMessage(err), status)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, content)
}
