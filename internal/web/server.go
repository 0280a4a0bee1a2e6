// Package web serves the translation page and its JSON API.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/valpere/vieng/internal/annotate"
	"github.com/valpere/vieng/internal/markdown"
	"github.com/valpere/vieng/internal/session"
)

//go:embed templates/*.html content/home.md
var assets embed.FS

// Footer is the closing line of every page.
const Footer = "AI-powered English learning website for Vietnamese"

// Translator turns Vietnamese text into English.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Annotator breaks English text down into tags and tenses.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*annotate.Analysis, error)
}

type Config struct {
	CORSOrigins []string
}

type tagInfo struct {
	Tag         string `json:"tag"`
	Description string `json:"description"`
}

type Server struct {
	translator Translator
	annotator  Annotator
	sessions   *session.MemoryStore
	cfg        Config
	logger     *slog.Logger

	tmpl *template.Template
	home template.HTML
	tags []tagInfo
}

func NewServer(tr Translator, an Annotator, sessions *session.MemoryStore, cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := template.New("").ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	home, err := assets.ReadFile("content/home.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read home content: %w", err)
	}

	tags := make([]tagInfo, 0, len(annotate.AllPOS()))
	for _, p := range annotate.AllPOS() {
		tags = append(tags, tagInfo{Tag: p.String(), Description: p.Description()})
	}

	return &Server{
		translator: tr,
		annotator:  an,
		sessions:   sessions,
		cfg:        cfg,
		logger:     logger.With("component", "web"),
		tmpl:       tmpl,
		home:       markdown.Template(home),
		tags:       tags,
	}, nil
}

// Handler returns the full route tree wrapped in CORS and tracing.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /api/translate", s.handleTranslate)
	mux.HandleFunc("GET /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/tags", s.handleTags)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: len(s.cfg.CORSOrigins) > 0,
	})
	return otelhttp.NewHandler(s.logRequests(c.Handler(mux)), "http.request")
}

type layoutData struct {
	Active  View
	Nav     []navItem
	Tags    []tagInfo
	Content template.HTML
	Error   string
	Footer  string
}

// handlePage runs one render cycle: exactly one view, chosen by the view
// query parameter, fills the content area.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id, state := s.loadSession(w, r)
	view := ParseView(r.URL.Query().Get("view"))

	data := layoutData{Active: view, Nav: navigation, Tags: s.tags, Footer: Footer}
	status := http.StatusOK

	if render := s.Dispatch(view); render != nil {
		content, err := render(r.Context(), &Request{Query: r.URL.Query(), State: &state})
		if err != nil {
			s.logger.Error("render failed", "view", view, "error", err)
			data.Error = err.Error()
			status = http.StatusBadGateway
		}
		data.Content = content
	}
	s.sessions.Save(id, state)

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("layout failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// loadSession returns the caller's session, starting a new one when the
// cookie is missing or has expired.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (string, session.State) {
	if c, err := r.Cookie(session.CookieName); err == nil && c.Value != "" {
		if st, err := s.sessions.Load(c.Value); err == nil {
			return c.Value, st
		}
	}
	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, session.State{}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency_ms", time.Since(start).Milliseconds())
	})
}
