// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/healthnest-tui/internal/api"
	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/session"
)

// =============================================================================
// MESSAGES
// =============================================================================

// Transcript texts.
const (
	MsgAnalysisFailed = "❌ Could not analyze health data. Please check if the backend is running."
	MsgChatFallback   = "Sorry, I encountered an error. Please try again."
	MsgChatFailed     = "❌ Could not get response. Please ensure the backend server is running."

	// SummaryLabel heads the recommendations of an analysis.
	SummaryLabel = "📊 Your Health Analysis"

	// LabelAPIError is shown when the backend answers but is not healthy.
	LabelAPIError = "API Error"
)

// OfflineMessage is appended when the health check cannot reach the backend.
func OfflineMessage(startHint string) string {
	return "⚠️ Backend API is not running. Please start the backend server first:\n\n" + startHint
}

// ProfileErrorMessage is appended when the profile form does not parse.
func ProfileErrorMessage(err error) string {
	return "⚠️ Please check your profile: " + err.Error()
}

// =============================================================================
// ERRORS
// =============================================================================

// Sentinel errors returned alongside the session updates.
var (
	ErrUnhealthy    = errors.New("backend reported an unhealthy status")
	ErrNoMetrics    = errors.New("analysis response has no metrics")
	ErrNoReply      = errors.New("chat response has no reply")
	ErrEmptyMessage = errors.New("message is empty")
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Backend is the subset of the API client the dashboard needs.
type Backend interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
	Analyze(ctx context.Context, profile model.Profile) (*api.AnalysisResponse, error)
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Options configures a Controller.
type Options struct {
	// Logger for status transitions and failures. Nil disables logging.
	Logger *zap.Logger

	// StartHint is the shell snippet shown when the backend is offline.
	StartHint string
}

// Controller runs dashboard operations against a backend.
// It holds no per-user state and is safe for concurrent use.
type Controller struct {
	backend   Backend
	logger    *zap.Logger
	startHint string
}

// New creates a controller.
func New(backend Backend, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	hint := opts.StartHint
	if hint == "" {
		hint = "cd backend\npython app.py"
	}
	return &Controller{
		backend:   backend,
		logger:    logger.Named("dashboard"),
		startHint: hint,
	}
}

func (c *Controller) setStatus(s *session.Session, st session.Status, label string) {
	prev, _ := s.Status()
	s.SetStatus(st, label)
	if prev != st {
		c.logger.Info("status changed",
			zap.String("session", s.ID()),
			zap.Stringer("from", prev),
			zap.Stringer("to", st))
	}
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckHealth probes the backend and sets the status indicator.
//
// A "healthy" payload sets ready. Any other payload sets error ("API Error").
// A network or parse failure sets offline and appends a bot message telling
// the operator how to start the backend.
func (c *Controller) CheckHealth(ctx context.Context, s *session.Session) (session.Status, error) {
	resp, err := c.backend.Health(ctx)
	if err != nil {
		c.logger.Warn("health check failed", zap.Error(err))
		c.setStatus(s, session.StatusOffline, "")
		s.AppendBot(OfflineMessage(c.startHint))
		return session.StatusOffline, err
	}

	if !resp.IsHealthy() {
		c.logger.Warn("backend unhealthy", zap.String("status", resp.Status), zap.Int("http_status", resp.StatusCode))
		c.setStatus(s, session.StatusError, LabelAPIError)
		return session.StatusError, fmt.Errorf("%w: %q", ErrUnhealthy, resp.Status)
	}

	c.setStatus(s, session.StatusReady, "")
	return session.StatusReady, nil
}

// =============================================================================
// PROFILE ANALYSIS
// =============================================================================

// SubmitProfile parses the form, stores the profile and requests an analysis.
//
// A form that does not parse transmits nothing, leaves the stored profile
// unchanged and appends a bot message naming the bad fields. Otherwise the
// stored profile is replaced before the request, so it survives a failed
// submission.
func (c *Controller) SubmitProfile(ctx context.Context, s *session.Session, form model.FormValues) (*api.AnalysisResponse, error) {
	profile, err := model.ParseProfile(form)
	if err != nil {
		c.logger.Info("profile rejected", zap.Error(err))
		s.AppendBot(ProfileErrorMessage(err))
		return nil, err
	}
	return c.AnalyzeProfile(ctx, s, profile)
}

// AnalyzeProfile stores an already-validated profile and requests an analysis.
func (c *Controller) AnalyzeProfile(ctx context.Context, s *session.Session, profile model.Profile) (*api.AnalysisResponse, error) {
	s.SetProfile(profile)
	c.setStatus(s, session.StatusAnalyzing, "")

	start := time.Now()
	resp, err := c.backend.Analyze(ctx, profile)
	if err == nil && !resp.HasMetrics() {
		err = ErrNoMetrics
		if resp.Error != "" {
			err = fmt.Errorf("%w: %s", ErrNoMetrics, resp.Error)
		}
	}
	if err != nil {
		c.logger.Warn("analysis failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		c.setStatus(s, session.StatusError, "")
		s.AppendBot(MsgAnalysisFailed)
		return nil, err
	}

	c.RenderMetrics(s, *resp.Metrics)
	c.RenderRecommendations(s, resp.Recommendations)
	c.setStatus(s, session.StatusReady, "")
	return resp, nil
}

// RenderMetrics shows the metrics panel with the four formatted values.
func (c *Controller) RenderMetrics(s *session.Session, m model.Metrics) {
	s.SetMetrics(m)
}

// RenderRecommendations appends a summary line followed by one line per
// recommendation, in arrival order. An empty list appends nothing.
func (c *Controller) RenderRecommendations(s *session.Session, recs []model.Recommendation) {
	if len(recs) == 0 {
		return
	}
	s.AppendLabeled(SummaryLabel, "")
	for _, rec := range recs {
		s.AppendLabeled(rec.Type, rec.Message)
	}
}

// =============================================================================
// CHAT
// =============================================================================

// SendChatMessage sends text with the current profile as context.
//
// Empty or whitespace-only text is a no-op returning ErrEmptyMessage. The
// user entry and a typing placeholder are appended before the request; the
// placeholder is removed on every path. An absent reply appends the generic
// apology; a failed request appends the connectivity message.
func (c *Controller) SendChatMessage(ctx context.Context, s *session.Session, text string) (string, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return "", ErrEmptyMessage
	}

	s.AppendUser(message)
	typingID := s.BeginTyping()
	defer s.EndTyping(typingID)

	start := time.Now()
	resp, err := c.backend.Chat(ctx, api.ChatRequest{
		Message: message,
		Profile: s.Profile(),
	})

	// Placeholder goes before the reply so the reply lands in its place.
	s.EndTyping(typingID)

	if err != nil {
		c.logger.Warn("chat failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		s.AppendBot(MsgChatFailed)
		return "", err
	}

	if !resp.HasReply() {
		c.logger.Info("chat returned no reply", zap.String("error", resp.Error), zap.Int("http_status", resp.StatusCode))
		s.AppendBot(MsgChatFallback)
		return MsgChatFallback, ErrNoReply
	}

	c.logger.Debug("chat reply",
		zap.String("category", resp.Category),
		zap.Duration("duration", time.Since(start)))
	s.AppendBot(resp.Response)
	return resp.Response, nil
}

// AskQuestion sends a predefined question as if the user had typed it.
func (c *Controller) AskQuestion(ctx context.Context, s *session.Session, question string) (string, error) {
	return c.SendChatMessage(ctx, s, question)
}
