package web

import (
	"net/http"
	"strconv"

	"github.com/tressa-sh/tressa/internal/api"
	"github.com/tressa-sh/tressa/internal/pager"
)

// listPageData is the template data for the home and profile listings.
type listPageData struct {
	Viewer     viewer
	List       string // "public" or "my"
	Items      []api.TressPreview
	Pagination *api.PaginationInfo
	Error      string
	Profile    *api.UserProfile
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	v := viewerFrom(r)

	list := r.URL.Query().Get("list")
	endpoint := pager.Public
	if list == "my" && v.LoggedIn {
		endpoint = pager.Mine
	} else {
		list = "public"
	}

	page := 1
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 0 {
		page = n
	}

	p := pager.New(s.apiFor(v), endpoint, s.cfg.PageSize)
	data := listPageData{Viewer: v, List: list}
	if err := p.LoadPage(r.Context(), page); err != nil {
		data.Error = p.Err()
	} else {
		data.Items = p.Items()
		data.Pagination = p.Pagination()
	}
	s.render(w, "home", data)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	v := viewerFrom(r)
	if !v.LoggedIn {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	client := s.apiFor(v)
	data := listPageData{Viewer: v, List: "my"}

	profile, err := client.Me(r.Context())
	if err != nil {
		// Stored token no longer valid: silent logout.
		clearSessionCookies(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	data.Profile = profile

	page := 1
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 0 {
		page = n
	}
	p := pager.New(client, pager.Mine, s.cfg.PageSize)
	if err := p.LoadPage(r.Context(), page); err != nil {
		data.Error = p.Err()
	} else {
		data.Items = p.Items()
		data.Pagination = p.Pagination()
	}
	s.render(w, "profile", data)
}
