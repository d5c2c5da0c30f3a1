// Package server serves the comment widget as a plain HTML form backed by the
// comments API.
package server

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/iburimskiy/one137/internal/comments"
	"github.com/iburimskiy/one137/internal/config"
)

// Config holds server configuration.
type Config struct {
	Addr     string
	AllowAll bool // allow all CORS origins (dev mode)
	Verbose  bool // log every request
}

// Server renders comment pages and forwards submissions to the API.
type Server struct {
	cfg        Config
	api        comments.API
	renderer   *comments.Renderer
	policy     comments.Policy
	now        func() time.Time
	tmpl       *template.Template
	router     chi.Router
	httpServer *http.Server
}

// New creates a server for api.
func New(cfg Config, api comments.API, renderer *comments.Renderer, policy comments.Policy) *Server {
	s := &Server{
		cfg:      cfg,
		api:      api,
		renderer: renderer,
		policy:   policy,
		now:      time.Now,
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.cfg.Verbose {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/comments/{page}", s.handleGet)
	r.Post("/comments/{page}", s.handlePost)
	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// pageData holds the data passed to the page template.
type pageData struct {
	Page       string
	List       template.HTML
	Author     string
	Message    string
	Timestamp  string
	Error      string
	MaxAuthor  int
	MaxMessage int
}

func (s *Server) newPageData(ctx context.Context, page string) pageData {
	list := comments.LoadErrorMessage
	items, err := s.api.List(ctx, page)
	if err != nil {
		log.Printf("server: loading comments for %q: %v", page, err)
	} else {
		list = s.renderer.HTML(items)
	}
	return pageData{
		Page:       page,
		List:       template.HTML(list),
		MaxAuthor:  config.MaxAuthorLength,
		MaxMessage: config.MaxMessageLength,
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Printf("server: rendering page: %v", err)
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r.Context(), chi.URLParam(r, "page"))
	data.Timestamp = strconv.FormatInt(s.now().UnixMilli(), 10)
	s.render(w, http.StatusOK, data)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ts := r.PostForm.Get("cmt-timestamp")
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		http.Error(w, "invalid form timestamp", http.StatusBadRequest)
		return
	}

	in := comments.Input{
		Author:  r.PostForm.Get("cmt-author"),
		Message: r.PostForm.Get("cmt-message"),
		Email:   r.PostForm.Get("cmt-email"),
	}.Trim()

	fail := func(status int, msg string) {
		data := s.newPageData(r.Context(), page)
		data.Author, data.Message, data.Timestamp = in.Author, in.Message, ts
		data.Error = msg
		s.render(w, status, data)
	}

	if s.policy.TooSoon(time.UnixMilli(ms), s.now()) {
		fail(http.StatusUnprocessableEntity, comments.TooSoonMessage)
		return
	}
	if err := errors.Join(comments.ValidateAuthor(in.Author), comments.ValidateMessage(in.Message)); err != nil {
		fail(http.StatusUnprocessableEntity, err.Error())
		return
	}

	sub := comments.Submission{Author: in.Author, Message: in.Message, Email: in.Email, Timestamp: ts}
	if err := s.api.Post(r.Context(), page, sub); err != nil {
		log.Printf("server: submitting comment for %q: %v", page, err)
		msg := comments.SubmitErrorMessage
		var apiErr *comments.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		fail(http.StatusBadGateway, msg)
		return
	}

	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("one137 comments listening on %s", s.cfg.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
