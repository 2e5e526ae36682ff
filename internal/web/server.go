// Package web serves the Tressa web frontend: server-rendered pages backed
// by the external REST API, plus the fragment and websocket endpoints the
// editor and the windowed code viewer use.
package web

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tressa-sh/tressa/internal/api"
)

// Config holds web frontend configuration.
type Config struct {
	Port        int
	AllowAll    bool // allow all CORS origins (dev mode)
	Dark        bool
	LineNumbers bool
	PageSize    int
}

// Server is the Tressa web frontend server.
type Server struct {
	cfg        Config
	client     *api.Client
	tmpl       *template.Template
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server talking to the backend through the given API client.
func New(cfg Config, client *api.Client) (*Server, error) {
	if cfg.PageSize < 1 {
		cfg.PageSize = 20
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, client: client, tmpl: tmpl}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleRegister)
	r.Post("/logout", s.handleLogout)
	r.Get("/profile", s.handleProfile)

	r.Get("/create", s.handleCreateForm)
	r.Post("/create", s.handleCreate)
	r.Get("/tress/{id}", s.handleView)
	r.Post("/tress/{id}/delete", s.handleDelete)
	r.Get("/tress/{id}/raw", s.handleRaw)
	r.Get("/fragment/tress/{id}/lines", s.handleLineFragment)
	r.Get("/ws/preview", s.handlePreviewSocket)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("tressa web frontend listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// render writes a page template, logging instead of crashing on template
// errors so a bad page never takes the server down.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("web: rendering %s: %v", name, err)
	}
}
