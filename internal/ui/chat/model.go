// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/healthnest-tui/internal/commands"
	"github.com/jeranaias/healthnest-tui/internal/dashboard"
	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/session"
	"github.com/jeranaias/healthnest-tui/internal/ui/components"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

// Focus identifies which widget receives key input.
type Focus int

const (
	FocusForm Focus = iota
	FocusChat
)

// =============================================================================
// MODEL
// =============================================================================

// Options configures a dashboard model.
type Options struct {
	// Registry dispatches dashboard events. Required.
	Registry *commands.Registry

	// Session is the state rendered by the model. Required.
	Session *session.Session

	// Theme defaults to styles.NewTheme("auto").
	Theme *styles.Theme

	// QuickQuestions are bound to F1..Fn in order.
	QuickQuestions []string

	// Markdown renders bot replies through glamour.
	Markdown bool

	// ShowTimestamps prints the time beside each transcript entry.
	ShowTimestamps bool

	// Context bounds every backend request. Defaults to context.Background().
	Context context.Context

	Logger *zap.Logger
}

// Model is the Bubble Tea model of the terminal dashboard.
type Model struct {
	registry *commands.Registry
	session  *session.Session
	theme    *styles.Theme
	logger   *zap.Logger
	quick    []string
	markdown bool

	// Widgets
	header     *components.Header
	form       *components.ProfileForm
	metrics    *components.MetricsPanel
	transcript *components.ChatViewport
	input      *components.InputArea
	statusBar  *components.StatusBar
	typing     components.Spinner
	analyzing  components.Spinner
	help       help.Model
	keyMap     KeyMap

	// State
	focus      Focus
	snap       session.Snapshot
	showHelp   bool
	helpText   string
	notice     string
	noticeSeq  int
	pending    int
	completion *completionState
	cancelMgr  *cancelManager

	width  int
	height int
}

// New creates a dashboard model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		registry:   opts.Registry,
		session:    opts.Session,
		theme:      theme,
		logger:     logger,
		quick:      opts.QuickQuestions,
		markdown:   opts.Markdown,
		header:     components.NewHeader(theme),
		form:       components.NewProfileForm(theme, opts.Session.Profile()),
		metrics:    components.NewMetricsPanel(theme),
		transcript: components.NewChatViewport(theme),
		input:      components.NewInputArea(theme),
		statusBar:  components.NewStatusBar(theme, opts.QuickQuestions),
		typing:     components.NewTypingSpinner(),
		analyzing:  components.NewAnalyzingSpinner(),
		help:       help.New(),
		keyMap:     DefaultKeyMap(),
		focus:      FocusForm,
		completion: newCompletionState(opts.Registry),
		cancelMgr:  newCancelManager(opts.Context),
	}
	m.transcript.SetShowTimestamps(opts.ShowTimestamps)
	m.form.Focus()
	m.refresh()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the change listener and the initial health check.
func (m Model) Init() tea.Cmd {
	ctx := m.cancelMgr.context()
	return tea.Batch(
		textinput.Blink,
		ListenForChanges(ctx, m.session),
		DispatchCmd(ctx, m.registry, m.session, commands.EventLoad, commands.Input{}),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case SessionChangedMsg:
		cmd := m.refresh()
		return m, tea.Batch(cmd, ListenForChanges(m.cancelMgr.context(), m.session))

	case DispatchResultMsg:
		return m.handleResult(msg)

	case ClearNoticeMsg:
		if msg.Seq == m.noticeSeq {
			m.notice = ""
			m.statusBar.SetNotice("")
		}
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.typing, cmd = m.typing.Update(msg)
		cmds = append(cmds, cmd)
		m.analyzing, cmd = m.analyzing.Update(msg)
		cmds = append(cmds, cmd)
		m.header.Busy = m.analyzing.Frame()
		m.transcript.SetTypingFrame(m.typing.Frame())
		return m, tea.Batch(cmds...)
	}

	return m.updateFocused(msg)
}

// View renders the dashboard.
func (m Model) View() string {
	return m.renderDashboard()
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)
	m.layout()

	if m.markdown {
		if md, err := components.NewMarkdownRenderer(m.transcriptWidth() - 8); err == nil {
			m.transcript.SetMarkdown(md)
		} else {
			m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if key.Matches(msg, m.keyMap.Quit) {
		m.cancelMgr.cancel()
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keyMap.Help) || key.Matches(msg, m.keyMap.Cancel) || keyStr == "q" {
			m.showHelp = false
			m.helpText = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		m.helpText = commands.Help(m.registry, m.quick)
		return m, nil

	case key.Matches(msg, m.keyMap.Quick):
		if idx, ok := quickIndex(keyStr); ok && idx < len(m.quick) {
			return m.askQuick(idx)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Top), key.Matches(msg, m.keyMap.Bottom):
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keyMap.NextField):
		if m.focus == FocusChat && m.completion.Applies(m.input.Value()) {
			if completed, ok := m.completion.Next(m.input.Value()); ok {
				m.input.SetValue(completed)
			}
			return m, nil
		}
		return m.moveFocus(true)

	case key.Matches(msg, m.keyMap.PrevField):
		return m.moveFocus(false)

	case key.Matches(msg, m.keyMap.Submit):
		if m.focus == FocusForm {
			return m.submitProfile()
		}
		return m.submitChat()

	case key.Matches(msg, m.keyMap.Cancel):
		if m.focus == FocusChat {
			m.input.Reset()
			m.completion.Reset()
		}
		return m, nil
	}

	m.completion.Reset()
	return m.updateFocused(msg)
}

// updateFocused forwards a message to the focused widget.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == FocusForm {
		m.form, cmd = m.form.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// moveFocus cycles focus through the form fields and the chat input.
func (m Model) moveFocus(forward bool) (tea.Model, tea.Cmd) {
	m.completion.Reset()

	if m.focus == FocusChat {
		m.input.Blur()
		m.focus = FocusForm
		if forward {
			for m.form.Current() != components.FieldAge {
				m.form.Next()
			}
		} else {
			for m.form.Current() != components.FieldActivity {
				m.form.Prev()
			}
		}
		return m, m.form.Focus()
	}

	var cmd tea.Cmd
	var inside bool
	if forward {
		cmd, inside = m.form.Next()
	} else {
		cmd, inside = m.form.Prev()
	}
	if inside {
		return m, cmd
	}

	m.form.Blur()
	m.focus = FocusChat
	return m, m.input.Focus()
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m Model) submitProfile() (tea.Model, tea.Cmd) {
	values := m.form.Values()
	m.form.SetInvalid(nil)
	m.pending++
	return m, DispatchCmd(m.cancelMgr.context(), m.registry, m.session,
		commands.EventUpdateProfile, commands.Input{Form: &values})
}

func (m Model) submitChat() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.completion.Reset()
	if line == "" {
		return m, nil
	}
	m.pending++
	return m, ExecuteCmd(m.cancelMgr.context(), m.registry, m.session, line)
}

func (m Model) askQuick(idx int) (tea.Model, tea.Cmd) {
	m.pending++
	return m, DispatchCmd(m.cancelMgr.context(), m.registry, m.session,
		commands.EventAskQuestion, commands.Input{Text: m.quick[idx]})
}

// handleResult applies what the session does not carry: quitting, help
// text, usage errors and invalid form fields.
func (m Model) handleResult(msg DispatchResultMsg) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}

	if msg.Result.Quit {
		m.cancelMgr.cancel()
		return m, tea.Quit
	}

	if msg.Event == commands.EventHelp && msg.Err == nil {
		m.showHelp = true
		m.helpText = msg.Result.Reply
		return m, nil
	}

	if msg.Err == nil {
		if msg.Event == commands.EventUpdateProfile {
			m.form.SetProfile(m.session.Profile())
		}
		return m, nil
	}

	var invalid model.ValidationErrors
	switch {
	case errors.As(msg.Err, &invalid):
		m.form.SetInvalid(invalid.Fields())
		return m, m.setNotice("Check the highlighted fields")
	case errors.Is(msg.Err, commands.ErrUsage), errors.Is(msg.Err, commands.ErrUnknownEvent):
		return m, m.setNotice(msg.Err.Error())
	case errors.Is(msg.Err, dashboard.ErrEmptyMessage), errors.Is(msg.Err, context.Canceled):
		return m, nil
	}

	// Backend failures are already in the transcript.
	m.logger.Debug("dashboard event failed", zap.String("event", msg.Event), zap.Error(msg.Err))
	return m, nil
}

// setNotice shows a transient status bar notice.
func (m *Model) setNotice(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.statusBar.SetNotice(text)
	return clearNoticeAfter(m.noticeSeq)
}

// refresh rebuilds the widgets from a fresh session snapshot and starts or
// stops the spinners.
func (m *Model) refresh() tea.Cmd {
	m.snap = m.session.Snapshot()

	m.header.SetStatus(m.snap.Status, m.snap.StatusLabel)
	m.metrics.SetFields(m.snap.MetricFields())
	m.transcript.SetEntries(m.snap.Entries)

	var cmds []tea.Cmd
	if m.snap.Typing {
		cmds = append(cmds, m.typing.Start())
	} else {
		m.typing.Stop()
	}
	if m.snap.Status == session.StatusAnalyzing {
		cmds = append(cmds, m.analyzing.Start())
	} else {
		m.analyzing.Stop()
	}
	m.header.Busy = m.analyzing.Frame()
	m.transcript.SetTypingFrame(m.typing.Frame())

	m.layout()
	return tea.Batch(cmds...)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Focused returns the focused widget.
func (m Model) Focused() Focus {
	return m.focus
}

// Snapshot returns the snapshot the view was last built from.
func (m Model) Snapshot() session.Snapshot {
	return m.snap
}

// Notice returns the current status bar notice.
func (m Model) Notice() string {
	return m.notice
}

// Pending returns the number of events awaiting a result.
func (m Model) Pending() int {
	return m.pending
}

// HelpVisible reports whether the help overlay is shown.
func (m Model) HelpVisible() bool {
	return m.showHelp
}

// InputValue returns the chat input text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// FormValues returns the raw profile form values.
func (m Model) FormValues() model.FormValues {
	return m.form.Values()
}
