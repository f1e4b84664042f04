// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jeranaias/healthnest-tui/internal/commands"
	"github.com/jeranaias/healthnest-tui/internal/dashboard"
	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/session"
	"github.com/jeranaias/healthnest-tui/internal/view"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// CookieName holds the browser session ID.
	CookieName = "healthnest_session"

	// MaxRequestBodySize bounds form and JSON bodies (64KB).
	MaxRequestBodySize = 64 * 1024

	// sweepInterval is how often idle sessions and limiter entries are dropped.
	sweepInterval = time.Minute

	shutdownTimeout = 10 * time.Second
)

// ============================================================================
// SERVER
// ============================================================================

// Options configures a Server.
type Options struct {
	Addr           string
	Logger         *zap.Logger
	QuickQuestions []string

	// RateLimitRPS is requests per second per client IP; 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// SessionIdle expires browser sessions; 0 keeps them forever.
	SessionIdle time.Duration

	// InitialProfile seeds new browser sessions.
	InitialProfile model.Profile
}

// Server is the web dashboard.
type Server struct {
	addr     string
	engine   *gin.Engine
	registry *commands.Registry
	store    *session.Store
	renderer *view.Renderer
	limiter  *RateLimiter
	logger   *zap.Logger
	quick    []string
}

// New creates the web dashboard dispatching user actions through registry.
func New(registry *commands.Registry, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	addr := opts.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	initial := opts.InitialProfile
	if initial == (model.Profile{}) {
		initial = model.DefaultProfile()
	}

	s := &Server{
		addr:     addr,
		registry: registry,
		store: session.NewStore(session.StoreConfig{
			IdleTimeout:    opts.SessionIdle,
			InitialProfile: func() model.Profile { return initial },
		}),
		renderer: renderer,
		limiter:  NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		logger:   logger.Named("server"),
		quick:    opts.QuickQuestions,
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	engine.SetHTMLTemplate(renderer.Template())
	engine.Use(
		RecoveryMiddleware(s.logger),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(s.logger),
	)
	s.engine = engine
	s.setupRoutes()

	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store returns the session store.
func (s *Server) Store() *session.Store {
	return s.store
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.store.Run(bgCtx, sweepInterval)
	if s.limiter.Enabled() {
		go s.limiter.Run(bgCtx, sweepInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	limited := s.engine.Group("/", RateLimitMiddleware(s.limiter, s.logger), limitBody())
	limited.GET("/", s.handleIndex)
	limited.GET("/transcript", s.handleTranscript)
	limited.POST("/profile", s.handleProfile)
	limited.POST("/chat", s.handleChat)
	limited.POST("/ask", s.handleAsk)

	api := limited.Group("/api")
	api.GET("/state", s.handleState)
	api.POST("/profile", s.handleAPIProfile)
	api.POST("/chat", s.handleAPIChat)
}

func limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBodySize)
		c.Next()
	}
}

// ============================================================================
// SESSION COOKIE
// ============================================================================

// sessionFor returns the browser's session, creating one (and dispatching the
// load event) on the first visit.
func (s *Server) sessionFor(c *gin.Context) *session.Session {
	id, _ := c.Cookie(CookieName)
	sess, created := s.store.GetOrCreate(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, sess.ID(), 0, "/", "", c.Request.TLS != nil, true)
		s.logger.Debug("session created", zap.String("session", sess.ID()))
		_, _ = s.dispatch(c, sess, commands.EventLoad, commands.Input{})
	}
	return sess
}

// dispatch runs an event. The outcome is already on the session; errors are
// recorded for the request log and returned for handlers that report them.
// In-flight backend calls are not cancelled when the browser goes away.
func (s *Server) dispatch(c *gin.Context, sess *session.Session, event string, in commands.Input) (commands.Result, error) {
	ctx := context.WithoutCancel(c.Request.Context())
	res, err := s.registry.Dispatch(ctx, sess, event, in)
	if err != nil && !errors.Is(err, dashboard.ErrEmptyMessage) {
		_ = c.Error(fmt.Errorf("%s: %w", event, err))
	}
	return res, err
}

// ============================================================================
// PAGE HANDLERS
// ============================================================================

func (s *Server) handleIndex(c *gin.Context) {
	sess := s.sessionFor(c)
	c.HTML(http.StatusOK, view.PageTemplate, view.NewPageData(sess.Snapshot(), s.quick))
}

func (s *Server) handleTranscript(c *gin.Context) {
	sess := s.sessionFor(c)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.renderer.Transcript(c.Writer, sess.Snapshot()); err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) handleProfile(c *gin.Context) {
	sess := s.sessionFor(c)
	var form model.FormValues
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid form: %v", err)
		return
	}
	_, _ = s.dispatch(c, sess, commands.EventUpdateProfile, commands.Input{Form: &form})
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleChat(c *gin.Context) {
	sess := s.sessionFor(c)
	_, _ = s.dispatch(c, sess, commands.EventSendMessage, commands.Input{Text: c.PostForm("message")})
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleAsk(c *gin.Context) {
	sess := s.sessionFor(c)
	_, _ = s.dispatch(c, sess, commands.EventAskQuestion, commands.Input{Text: c.PostForm("question")})
	c.Redirect(http.StatusSeeOther, "/")
}

// ============================================================================
// JSON HANDLERS
// ============================================================================

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply of POST /api/chat.
type ChatResponse struct {
	Reply string           `json:"reply"`
	State session.Snapshot `json:"state"`
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.sessionFor(c).Snapshot())
}

func (s *Server) handleAPIProfile(c *gin.Context) {
	sess := s.sessionFor(c)
	var profile model.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	form := profile.FormValues()
	_, err := s.dispatch(c, sess, commands.EventUpdateProfile, commands.Input{Form: &form})
	var verrs model.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error(), "fields": verrs.Fields()})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Server) handleAPIChat(c *gin.Context) {
	sess := s.sessionFor(c)
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	res, _ := s.dispatch(c, sess, commands.EventSendMessage, commands.Input{Text: req.Message})
	c.JSON(http.StatusOK, ChatResponse{Reply: res.Reply, State: sess.Snapshot()})
}
