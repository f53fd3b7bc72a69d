// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/palash-droid/folio/internal/assistant"
	"github.com/palash-droid/folio/internal/commands"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/session"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// MaxRequestBodySize caps JSON request bodies and websocket frames.
	MaxRequestBodySize = 16 * 1024

	// MaxLineLength caps a submitted command line or chat message, in runes.
	MaxLineLength = 1000

	// SessionCookie carries the session id between requests.
	SessionCookie = "folio_session"
)

// ============================================================================
// SERVER
// ============================================================================

// Config configures the HTTP server.
type Config struct {
	Addr            string
	AllowedOrigins  []string
	RateLimit       float64 // requests per second per client
	RateBurst       int
	ChatDelay       time.Duration
	SessionTTL      time.Duration
	ShutdownTimeout time.Duration
}

// Server exposes the interpreter over HTTP and websockets. Each client gets
// its own session from the manager, keyed by a cookie.
type Server struct {
	cfg      Config
	interp   *commands.Interpreter
	sessions *session.Manager
	logger   *zap.Logger
	limiter  *RateLimiter
	router   chi.Router
	origins  []string
	started  time.Time
}

// New creates a server. Routes are ready once New returns; Run listens.
func New(cfg Config, interp *commands.Interpreter, sessions *session.Manager, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		cfg:      cfg,
		interp:   interp,
		sessions: sessions,
		logger:   logger,
		limiter:  NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.SessionTTL),
		origins:  originPatterns(cfg.AllowedOrigins),
		started:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the root handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(s.logger))
	r.Use(LoggingMiddleware(s.logger))
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(NewCORSConfig(s.cfg.AllowedOrigins)))

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.limiter, s.logger))
		r.Get("/api/commands", s.handleCommands)
		r.Post("/api/chat", s.handleChat)
		r.Post("/api/exec", s.handleExec)
		r.Get("/ws/terminal", s.handleTerminal)
	})

	s.router = r
}

// ============================================================================
// HEALTH
// ============================================================================

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Sessions int            `json:"sessions"`
	Modes    map[string]int `json:"modes"`   // Live sessions per display mode
	Clients  int            `json:"clients"` // Addresses tracked by the rate limiter
	Uptime   string         `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	modes := make(map[string]int)
	for _, st := range s.sessions.Statuses() {
		modes[st.Mode]++
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  commands.Version,
		Sessions: s.sessions.Count(),
		Modes:    modes,
		Clients:  s.limiter.Clients(),
		Uptime:   session.FormatDuration(time.Since(s.started)),
	})
}

// ============================================================================
// COMMANDS
// ============================================================================

// CommandInfo describes one visible command.
type CommandInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
	Usage       string   `json:"usage,omitempty"`
	Category    string   `json:"category"`
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	visible := s.interp.Registry().Visible()
	out := make([]CommandInfo, 0, len(visible))
	for _, c := range visible {
		out = append(out, CommandInfo{
			Name:        c.Name,
			Aliases:     c.Aliases,
			Description: c.Description,
			Usage:       c.Usage,
			Category:    c.Category,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ============================================================================
// CHAT
// ============================================================================

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the assistant's answer to a chat message.
type ChatResponse struct {
	Text           string              `json:"text"`
	RelatedCommand string              `json:"relatedCommand,omitempty"`
	Topic          assistant.Topic     `json:"topic,omitempty"`
	Choices        assistant.ChoiceSet `json:"choices,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, err := validateLine(req.Message)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	proc := s.interp.Deps().Assistant
	if proc == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant unavailable")
		return
	}

	resp, err := proc.Reply(r.Context(), msg, s.cfg.ChatDelay)
	if err != nil {
		// The client went away during the delay.
		s.logger.Debug("chat reply abandoned", zap.Error(err))
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{
		Text:           resp.Text,
		RelatedCommand: resp.RelatedCommand,
		Topic:          resp.Topic,
		Choices:        resp.Choices,
	})
}

// ============================================================================
// EXEC
// ============================================================================

// ExecRequest is the body of POST /api/exec. Session falls back to the
// session cookie when empty.
type ExecRequest struct {
	Session string `json:"session"`
	Line    string `json:"line"`
}

// ExecResponse reports the outcome of one line and the session state after
// it.
type ExecResponse struct {
	Session string           `json:"session"`
	Path    string           `json:"path"`
	Mode    string           `json:"mode"`
	Section output.Target    `json:"section,omitempty"`
	Outcome commands.Outcome `json:"outcome"`
}

// handleExec runs one line. Plain HTTP clients have no animation, so a
// transition completes before the response is written.
func (s *Server) handleExec(w http.ResponseWriter, r *http.Request) {
	var req ExecRequest
	if !decodeBody(w, r, &req) {
		return
	}
	line, err := validateLine(req.Line)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := req.Session
	if id == "" {
		id = cookieSession(r)
	}
	sess := s.sessions.GetOrCreate(r.Context(), id)
	s.setSessionCookie(w, r, sess.ID())

	out := s.interp.Submit(sess, line)
	if out.Action != nil && out.Action.Kind == output.ActionTransition {
		sess.CompleteTransition()
	}

	writeJSON(w, http.StatusOK, ExecResponse{
		Session: sess.ID(),
		Path:    sess.Path(),
		Mode:    sess.Mode().String(),
		Section: sess.Section(),
		Outcome: out,
	})
}

// ============================================================================
// LIFECYCLE
// ============================================================================

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Hijacked websocket connections keep the server deadlines, so
		// reads and writes are bounded per request instead.
		ReadTimeout:       0,
		WriteTimeout:      0,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("version", commands.Version))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// ============================================================================
// HELPERS
// ============================================================================

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decodeBody reads a size-limited JSON body into v, answering 400 or 413 on
// failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
		}
		return false
	}
	return true
}

var (
	errEmptyLine   = errors.New("line must not be empty")
	errLineTooLong = fmt.Errorf("line exceeds %d characters", MaxLineLength)
)

// validateLine trims s and checks it is non-empty and not too long.
func validateLine(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", errEmptyLine
	case utf8.RuneCountInString(s) > MaxLineLength:
		return "", errLineTooLong
	}
	return s, nil
}

func cookieSession(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// originPatterns turns allowed origins into host patterns for the websocket
// origin check.
func originPatterns(origins []string) []string {
	var out []string
	for _, o := range origins {
		if o == "*" || strings.HasPrefix(o, "*.") {
			out = append(out, o)
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
		}
	}
	return out
}
