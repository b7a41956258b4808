package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/termfolio"
	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/internal/presentation/graph"
	"github.com/aretw0/termfolio/internal/presentation/tui"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/observability"
	"github.com/aretw0/termfolio/pkg/runner"
	"github.com/aretw0/termfolio/pkg/session"
	"github.com/aretw0/termfolio/pkg/terminal"
)

// Server exposes the portfolio content and stored terminal sessions over HTTP.
type Server struct {
	catalog  *content.Catalog
	sessions *session.Manager
	streams  *StreamManager
	metrics  *observability.Metrics
	hooks    domain.Hooks
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics instruments requests and mounts GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithHooks attaches observers to every restored terminal.
func WithHooks(hooks domain.Hooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// NewServer creates a Server. sessions may use any SessionStore.
func NewServer(catalog *content.Catalog, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		catalog:  catalog,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for the portfolio.
func NewHandler(catalog *content.Catalog, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(catalog, sessions, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/boot", s.GetBoot)
	r.Get("/locales", s.ListLocales)
	r.Route("/locales/{locale}", func(r chi.Router) {
		r.Get("/commands", s.GetCommands)
		r.Get("/graph", s.GetGraph)
		r.Get("/views/{view}", s.GetView)
	})
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/commands", s.SubmitCommand)
			r.Post("/navigate", s.Navigate)
			r.Get("/graph", s.GetSessionGraph)
			r.Get("/events", s.SubscribeEvents)
		})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument records the route pattern, not the raw path, to keep label cardinality bounded.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Debug("http request", "method", r.Method, "route", route, "status", status,
			"request_id", middleware.GetReqID(r.Context()))
		if s.metrics != nil {
			s.metrics.ObserveRequest(r.Method, route, status, time.Since(start))
		}
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":     "termfolio-http",
		"version": termfolio.Version,
		"locales": s.catalog.Locales(),
	})
}

type bootStep struct {
	Text       string `json:"text"`
	DurationMS int64  `json:"duration_ms"`
}

// GetBoot handles the GET /boot request.
func (s *Server) GetBoot(w http.ResponseWriter, r *http.Request) {
	steps := s.catalog.BootSteps()
	out := make([]bootStep, len(steps))
	for i, st := range steps {
		out[i] = bootStep{Text: st.Text, DurationMS: st.Duration.Milliseconds()}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"title":    s.catalog.Boot.Title,
		"subtitle": s.catalog.Boot.Subtitle,
		"menu":     s.catalog.Boot.Menu,
		"footer":   s.catalog.Boot.Footer,
		"steps":    out,
	})
}

// ListLocales handles the GET /locales request.
func (s *Server) ListLocales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"title":   s.catalog.Language.Title,
		"default": domain.DefaultLocale,
		"options": s.catalog.LanguageOptions(),
	})
}

type commandEntry struct {
	Token  string        `json:"token"`
	Action domain.Action `json:"action"`
}

// GetCommands handles GET /locales/{locale}/commands. ?format=markdown returns the
// rendered help table.
func (s *Server) GetCommands(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("format") == "markdown" {
		writeText(w, "text/markdown; charset=utf-8", tui.CommandsMarkdown(table))
		return
	}

	tokens := table.Tokens()
	commands := make([]commandEntry, len(tokens))
	for i, tok := range tokens {
		action, _ := table.Lookup(tok)
		commands[i] = commandEntry{Token: tok, Action: action}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locale":   table.Locale,
		"prompt":   table.Prompt,
		"shell":    table.Shell,
		"commands": commands,
		"help": map[string]any{
			"title":   table.HelpTitle,
			"entries": table.Help,
		},
		"nav": table.Nav,
	})
}

// GetGraph handles GET /locales/{locale}/graph (Mermaid).
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}
	writeText(w, "text/plain; charset=utf-8", graph.GenerateMermaid(table, nil))
}

// GetView handles GET /locales/{locale}/views/{view}. ?format=text returns plain lines.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}
	view, err := domain.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	lines := table.Lines(view)
	if r.URL.Query().Get("format") == "text" {
		writeText(w, "text/plain; charset=utf-8", strings.Join(lines, "\n")+"\n")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locale": table.Locale,
		"view":   view,
		"lines":  lines,
	})
}

type sessionResponse struct {
	ID    string                `json:"id"`
	State *domain.TerminalState `json:"state"`
	Lines []string              `json:"lines"`
}

type createSessionRequest struct {
	Locale string `json:"locale"`
}

// CreateSession handles POST /sessions. The body is optional; the locale defaults to English.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}
	locale := domain.DefaultLocale
	if body.Locale != "" {
		var err error
		if locale, err = domain.ParseLocale(body.Locale); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	table, err := s.catalog.Table(locale)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, state, err := s.sessions.Create(r.Context(), locale)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	w.Header().Set("Location", "/sessions/"+id)
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id, State: state, Lines: table.Lines(state.View)})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(len(ids)))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	term, err := s.restore(state)
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	defer term.Dispose()
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, State: state, Lines: term.Content()})
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type commandRequest struct {
	Input string `json:"input"`
}

// SubmitCommand handles POST /sessions/{id}/commands.
func (s *Server) SubmitCommand(w http.ResponseWriter, r *http.Request) {
	var body commandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	// Sanitize Input (Global Policy)
	input, err := runner.SanitizeInput(body.Input)
	if err != nil {
		s.logger.Warn("SubmitCommand: Input rejected", "err", err, "size", len(body.Input))
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.apply(w, r, "SubmitCommand", func(term *terminal.Terminal) (*runner.Response, error) {
		return runner.SubmitAndRender(term, input), nil
	})
}

type navigateRequest struct {
	View string `json:"view"`
}

// Navigate handles POST /sessions/{id}/navigate (the nav bar).
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	var body navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	view, err := domain.ParseView(body.View)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.apply(w, r, "Navigate", func(term *terminal.Terminal) (*runner.Response, error) {
		return runner.NavigateAndRender(term, view)
	})
}

// apply runs fn on the restored session under the session lock, stores the result,
// broadcasts it to event subscribers and writes it.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, op string, fn func(*terminal.Terminal) (*runner.Response, error)) {
	id := chi.URLParam(r, "id")
	var resp *runner.Response
	_, err := s.sessions.Update(r.Context(), id, func(state *domain.TerminalState) (*domain.TerminalState, error) {
		term, err := s.restore(state)
		if err != nil {
			return nil, err
		}
		defer term.Dispose()
		if resp, err = fn(term); err != nil {
			return nil, err
		}
		return term.State(), nil
	})
	if err != nil {
		s.fail(w, op, err)
		return
	}

	if data, err := json.Marshal(resp); err == nil {
		s.streams.Broadcast(id, string(data))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSessionGraph handles GET /sessions/{id}/graph: the command graph with the
// session's visited and current views highlighted.
func (s *Server) GetSessionGraph(w http.ResponseWriter, r *http.Request) {
	state, err := s.sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetSessionGraph", err)
		return
	}
	table, err := s.catalog.Table(state.Locale)
	if err != nil {
		s.fail(w, "GetSessionGraph", err)
		return
	}
	writeText(w, "text/plain; charset=utf-8", graph.GenerateMermaid(table, graph.OverlayFromState(table, state)))
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE). Each command or
// navigation on the session is pushed as one data line.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}
	sessionID := chi.URLParam(r, "id")
	if _, err := s.sessions.Load(r.Context(), sessionID); err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to Session Updates", "session_id", sessionID)
	ch, cancel := s.streams.Subscribe(sessionID)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func (s *Server) table(w http.ResponseWriter, r *http.Request) (*content.Table, bool) {
	locale, err := domain.ParseLocale(chi.URLParam(r, "locale"))
	if err == nil {
		var table *content.Table
		if table, err = s.catalog.Table(locale); err == nil {
			return table, true
		}
	}
	writeError(w, http.StatusNotFound, err)
	return nil, false
}

func (s *Server) restore(state *domain.TerminalState) (*terminal.Terminal, error) {
	table, err := s.catalog.Table(state.Locale)
	if err != nil {
		return nil, err
	}
	return terminal.Restore(table, state, terminal.WithLogger(s.logger), terminal.WithHooks(s.hooks))
}

// fail maps domain errors to status codes; anything else is a 500 and gets logged.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrUnknownLocale), errors.Is(err, domain.ErrUnknownView):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		s.logger.Error(op+" failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
