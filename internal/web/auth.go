package web

import (
	"net/http"
	"strconv"

	"github.com/tressa-sh/tressa/internal/api"
)

// Cookie names for the browser-persisted session. The token cookie is the
// local-storage "token" analog; user id and username are cached for
// optimistic ownership checks without refetching.
const (
	cookieToken    = "tressa_token"
	cookieUserID   = "tressa_user_id"
	cookieUsername = "tressa_username"
)

// viewer is the caller's session as seen by page handlers.
type viewer struct {
	LoggedIn bool
	Username string
	UserID   string
	token    string
}

// viewerFrom extracts the session cookies from the request.
func viewerFrom(r *http.Request) viewer {
	var v viewer
	if c, err := r.Cookie(cookieToken); err == nil && c.Value != "" {
		v.LoggedIn = true
		v.token = c.Value
	}
	if c, err := r.Cookie(cookieUserID); err == nil {
		v.UserID = c.Value
	}
	if c, err := r.Cookie(cookieUsername); err == nil {
		v.Username = c.Value
	}
	return v
}

// apiFor binds the shared API client to the caller's token.
func (s *Server) apiFor(v viewer) *api.Client {
	return s.client.WithTokens(api.StaticToken(v.token))
}

func setSessionCookies(w http.ResponseWriter, token, userID, username string) {
	http.SetCookie(w, &http.Cookie{
		Name: cookieToken, Value: token, Path: "/",
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name: cookieUserID, Value: userID, Path: "/",
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name: cookieUsername, Value: username, Path: "/",
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{cookieToken, cookieUserID, cookieUsername} {
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1})
	}
}

// authPageData is the template data for the login and register pages.
type authPageData struct {
	Viewer viewer
	Error  string
	Notice string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", authPageData{Viewer: viewerFrom(r)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "login", authPageData{Error: "invalid form submission"})
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	client := s.client.WithTokens(nil)
	tok, err := client.Login(r.Context(), username, password)
	if err != nil {
		s.render(w, "login", authPageData{Error: api.UserMessage(err)})
		return
	}

	// Resolve the user id so ownership checks work without a refetch later.
	userID := ""
	if profile, err := client.WithTokens(api.StaticToken(tok.AccessToken)).Me(r.Context()); err == nil {
		userID = strconv.Itoa(profile.ID)
	}

	setSessionCookies(w, tok.AccessToken, userID, tok.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register", authPageData{Viewer: viewerFrom(r)})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "register", authPageData{Error: "invalid form submission"})
		return
	}
	req := api.RegisterRequest{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		s.render(w, "register", authPageData{Error: "all fields are required"})
		return
	}

	if err := s.client.WithTokens(nil).Register(r.Context(), req); err != nil {
		s.render(w, "register", authPageData{Error: api.UserMessage(err)})
		return
	}
	s.render(w, "login", authPageData{Notice: "Account created, you can log in now."})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookies(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
