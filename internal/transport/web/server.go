package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/pkg/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// Analyzer runs the diagnosis pipeline and exposes persisted sessions.
// Satisfied by the orchestrator.
type Analyzer interface {
	Run(ctx context.Context, reportText string) (*core.SessionResult, error)
	Session(sessionID string) (*core.SessionLog, error)
}

// Asker answers one-shot follow-up questions in a role's voice.
type Asker interface {
	Ask(ctx context.Context, roleKey, question, contextText string) (string, error)
}

// Server is the web form UI: report entry, result cards, follow-up
// questions, recent sessions with JSON/text/PDF downloads.
type Server struct {
	srv      *http.Server
	tmpl     *template.Template
	pipeline Analyzer
	followup Asker
	index    core.SessionIndex
	baseCtx  context.Context
}

func NewServer(ctx context.Context, addr string, pipeline Analyzer, followup Asker, index core.SessionIndex) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		tmpl:     tmpl,
		pipeline: pipeline,
		followup: followup,
		index:    index,
		baseCtx:  ctx,
	}

	r := chi.NewRouter()
	r.Use(s.withLogger)
	r.Get("/", s.handleIndex)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/followup", s.handleFollowupForm)
	r.Post("/followup", s.handleFollowup)
	r.Get("/sessions", s.handleSessions)
	r.Get("/sessions/{sessionID}/log.json", s.handleDownloadJSON)
	r.Get("/sessions/{sessionID}/log.txt", s.handleDownloadTXT)
	r.Get("/sessions/{sessionID}/report.pdf", s.handleDownloadPDF)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting web server")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// withLogger carries the process logger into request contexts so handlers
// and the pipeline log through the usual channel.
func (s *Server) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := log.FromCtx(s.baseCtx).WithContext(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
