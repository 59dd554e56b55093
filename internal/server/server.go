package server

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"blog/internal/access"
	"blog/internal/config"
	"blog/internal/models"
)

type Server struct {
	DB *sql.DB

	cfg     *config.Config
	logger  *zap.Logger
	metrics *Metrics
	tmpl    map[string]*template.Template
	router  http.Handler
}

// New parses every page template under cfg.TemplateDir against layout.html
// and wires the routes.
func New(db *sql.DB, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(cfg.TemplateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(cfg.TemplateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}

	s := &Server{
		DB:      db,
		cfg:     cfg,
		logger:  logger,
		metrics: NewMetrics(),
		tmpl:    templates,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(s.metrics.Middleware)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleRegister)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/new", s.requireAuth(s.handleNewPostForm))
		r.Post("/new", s.requireAuth(s.handleCreatePost))
		r.Get("/{id}", s.handlePost)
		r.Get("/{id}/edit", s.requireAuth(s.handleEditPostForm))
		r.Post("/{id}/edit", s.requireAuth(s.handleUpdatePost))
		r.Post("/{id}/delete", s.requireAuth(s.handleDeletePost))
		r.Post("/{id}/comments", s.requireAuth(s.handleCreateComment))
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{id}/edit", s.requireAuth(s.handleEditCommentForm))
		r.Post("/{id}/edit", s.requireAuth(s.handleUpdateComment))
		r.Post("/{id}/delete", s.requireAuth(s.handleDeleteComment))
	})

	r.Route("/memos", func(r chi.Router) {
		r.Get("/", s.requireAuth(s.handleMemoList))
		r.Get("/new", s.requireAuth(s.handleNewMemoForm))
		r.Post("/new", s.requireAuth(s.handleCreateMemo))
		r.Get("/{id}", s.requireAuth(s.handleMemo))
		r.Get("/{id}/edit", s.requireAuth(s.handleEditMemoForm))
		r.Post("/{id}/edit", s.requireAuth(s.handleUpdateMemo))
		r.Post("/{id}/delete", s.requireAuth(s.handleDeleteMemo))
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	t, ok := s.tmpl[name]
	if !ok {
		s.logger.Error("template not found", zap.String("template", name))
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.String("requestID", chimiddleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// allow records the decision and answers the request when it is not Allow.
func (s *Server) allow(w http.ResponseWriter, r *http.Request, op string, d access.Decision) bool {
	s.metrics.AccessDecisions.WithLabelValues(op, d.String()).Inc()
	err := d.Err()
	if err == nil {
		return true
	}
	s.logger.Debug("access denied", zap.String("operation", op), zap.String("path", r.URL.Path), zap.Error(err))
	if errors.Is(err, access.ErrNotFound) {
		http.NotFound(w, r)
		return false
	}
	http.Error(w, err.Error(), http.StatusForbidden)
	return false
}

// authorize runs check against the result of a lookup. A missing row is
// handed to the policy as a nil item so that it is answered exactly like an
// invisible one.
func authorize[T access.Item](s *Server, w http.ResponseWriter, r *http.Request, op string,
	check func(access.Item, access.Viewer) access.Decision, v access.Viewer, item T, err error) bool {
	var subject access.Item
	switch {
	case err == nil:
		subject = item
	case errors.Is(err, models.ErrNotFound):
	default:
		s.serverError(w, r, err)
		return false
	}
	return s.allow(w, r, op, check(subject, v))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.DB.PingContext(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// helpers
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func urlID(r *http.Request) int64 {
	n, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return n
}

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}
