// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jeranaias/healthnest-tui/internal/api"
	"github.com/jeranaias/healthnest-tui/internal/dashboard"
	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/session"
)

// =============================================================================
// TEST BACKEND
// =============================================================================

type fakeBackend struct {
	healthStatus string
	analyzed     []model.Profile
	chats        []string
}

func (f *fakeBackend) Health(context.Context) (*api.HealthResponse, error) {
	return &api.HealthResponse{Status: f.healthStatus}, nil
}

func (f *fakeBackend) Analyze(_ context.Context, p model.Profile) (*api.AnalysisResponse, error) {
	f.analyzed = append(f.analyzed, p)
	return &api.AnalysisResponse{Metrics: &model.Metrics{BMI: 22, BMICategory: "normal"}}, nil
}

func (f *fakeBackend) Chat(_ context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	f.chats = append(f.chats, req.Message)
	return &api.ChatResponse{Response: "reply to " + req.Message}, nil
}

var testQuick = []string{"What is my BMI?", "How much water should I drink?"}

func newTestRegistry() (*Registry, *fakeBackend) {
	fb := &fakeBackend{healthStatus: "healthy"}
	return Default(dashboard.New(fb, dashboard.Options{}), testQuick), fb
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParseLine(t *testing.T) {
	tests := []struct {
		input string
		isCmd bool
		name  string
		args  []string
		rest  string
	}{
		{"/help", true, "/help", nil, ""},
		{"  /HELP  ", true, "/help", nil, ""},
		{"/quick\t2", true, "/quick", []string{"2"}, "2"},
		{"/profile age=30 gender=female", true, "/profile", []string{"age=30", "gender=female"}, "age=30 gender=female"},
		{`/ask "is 8000 steps enough?"`, true, "/ask", []string{"is 8000 steps enough?"}, `"is 8000 steps enough?"`},
		{`/ask 'it''s fine'`, true, "/ask", []string{"its fine"}, `'it''s fine'`},
		{`/ask "say \"hi\""`, true, "/ask", []string{`say "hi"`}, `"say \"hi\""`},
		{"/", true, "/", nil, ""},
		{"  how much water?  ", false, "", nil, ""},
		{"hello /help", false, "", nil, ""},
		{"", false, "", nil, ""},
	}

	for _, tc := range tests {
		got := ParseLine(tc.input)
		if got.IsCommand() != tc.isCmd || got.Name != tc.name || got.Rest != tc.rest {
			t.Errorf("ParseLine(%q) = %+v", tc.input, got)
			continue
		}
		if strings.Join(got.Args, "|") != strings.Join(tc.args, "|") {
			t.Errorf("ParseLine(%q).Args = %q, want %q", tc.input, got.Args, tc.args)
		}
	}
}

func TestParseLine_TextTrimmed(t *testing.T) {
	if got := ParseLine("  hello  ").Text; got != "hello" {
		t.Errorf("Text = %q, want %q", got, "hello")
	}
}

func TestFields_EmptyQuotesKeepArgument(t *testing.T) {
	got := Fields(`gender="" age=30`)
	want := []string{"gender=", "age=30"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Fields = %q, want %q", got, want)
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{Name: "test", Aliases: []string{"/t"}, Description: "Test command"})

	if r.Get("test") == nil {
		t.Error("Should get command by name")
	}
	if r.Get("/t") == nil {
		t.Error("Should get command by alias")
	}
	if r.Get("/nonexistent") != nil {
		t.Error("/nonexistent should return nil")
	}
}

func TestDefault_Events(t *testing.T) {
	r, _ := newTestRegistry()

	for _, name := range []string{EventLoad, EventUpdateProfile, EventSendMessage, EventAskQuestion, EventQuick, EventHelp, EventQuit} {
		if r.Get(name) == nil {
			t.Errorf("event %q not registered", name)
		}
	}

	aliases := map[string]string{"/status": EventLoad, "/profile": EventUpdateProfile, "/h": EventHelp, "/q": EventQuit}
	for alias, want := range aliases {
		cmd := r.Get(alias)
		if cmd == nil || cmd.Name != want {
			t.Errorf("alias %q should resolve to %q", alias, want)
		}
	}
}

func TestRegistry_All_Sorted(t *testing.T) {
	r, _ := newTestRegistry()
	all := r.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Fatalf("All() not sorted: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
}

// =============================================================================
// DISPATCH TESTS
// =============================================================================

func TestDispatch_UnknownEvent(t *testing.T) {
	r, _ := newTestRegistry()
	_, err := r.Dispatch(context.Background(), session.New(model.DefaultProfile()), "explode", Input{})
	if !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}
}

func TestDispatch_Load(t *testing.T) {
	r, _ := newTestRegistry()
	s := session.New(model.DefaultProfile())

	res, err := r.Dispatch(context.Background(), s, EventLoad, Input{})
	if err != nil {
		t.Fatalf("Dispatch(load) error: %v", err)
	}
	if res.Status != session.StatusReady || res.Event != EventLoad {
		t.Errorf("result = %+v, want ready load", res)
	}
}

func TestDispatch_UpdateProfileWithForm(t *testing.T) {
	r, fb := newTestRegistry()
	s := session.New(model.DefaultProfile())

	form := model.FormValues{Age: "30", Gender: "female", Weight: "60", Height: "165", Activity: "low"}
	res, err := r.Dispatch(context.Background(), s, EventUpdateProfile, Input{Form: &form})
	if err != nil {
		t.Fatalf("Dispatch(update-profile) error: %v", err)
	}
	if res.Analysis == nil {
		t.Error("expected analysis in result")
	}
	if len(fb.analyzed) != 1 || fb.analyzed[0].Age != 30 {
		t.Errorf("analyzed = %+v", fb.analyzed)
	}
}

func TestDispatch_SendMessage(t *testing.T) {
	r, fb := newTestRegistry()
	s := session.New(model.DefaultProfile())

	res, err := r.Dispatch(context.Background(), s, EventSendMessage, Input{Text: "hi"})
	if err != nil {
		t.Fatalf("Dispatch(send-message) error: %v", err)
	}
	if res.Reply != "reply to hi" {
		t.Errorf("Reply = %q", res.Reply)
	}
	if len(fb.chats) != 1 {
		t.Errorf("chats = %v", fb.chats)
	}
}

// =============================================================================
// EXECUTE TESTS
// =============================================================================

func TestExecute_PlainTextIsChat(t *testing.T) {
	r, fb := newTestRegistry()
	s := session.New(model.DefaultProfile())

	if _, err := r.Execute(context.Background(), s, "  how much water?  "); err != nil {
		t.Fatal(err)
	}
	if len(fb.chats) != 1 || fb.chats[0] != "how much water?" {
		t.Errorf("chats = %q", fb.chats)
	}
}

func TestExecute_ProfileOverlaysCurrent(t *testing.T) {
	r, fb := newTestRegistry()
	s := session.New(model.DefaultProfile())

	if _, err := r.Execute(context.Background(), s, "/profile age=40 activity=active"); err != nil {
		t.Fatal(err)
	}

	want := model.DefaultProfile()
	want.Age = 40
	want.Activity = "active"
	if len(fb.analyzed) != 1 || fb.analyzed[0] != want {
		t.Errorf("analyzed = %+v, want %+v", fb.analyzed, want)
	}
	if s.Profile() != want {
		t.Errorf("session profile = %+v", s.Profile())
	}
}

func TestExecute_ProfileUsageErrors(t *testing.T) {
	r, fb := newTestRegistry()
	s := session.New(model.DefaultProfile())

	for _, line := range []string{"/profile age", "/profile shoe=42"} {
		_, err := r.Execute(context.Background(), s, line)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("Execute(%q) err = %v, want ErrUsage", line, err)
		}
	}
	if len(fb.analyzed) != 0 {
		t.Error("usage errors must not reach the backend")
	}
}

func TestExecute_Quick(t *testing.T) {
	r, fb := newTestRegistry()
	s := session.New(model.DefaultProfile())

	res, err := r.Execute(context.Background(), s, "/quick 2")
	if err != nil {
		t.Fatal(err)
	}
	if len(fb.chats) != 1 || fb.chats[0] != testQuick[1] {
		t.Errorf("chats = %q", fb.chats)
	}
	if res.Event != EventQuick {
		t.Errorf("Event = %q", res.Event)
	}

	for _, line := range []string{"/quick", "/quick 0", "/quick 3", "/quick two"} {
		if _, err := r.Execute(context.Background(), s, line); !errors.Is(err, ErrUsage) {
			t.Errorf("Execute(%q) err = %v, want ErrUsage", line, err)
		}
	}
}

func TestExecute_UnknownSlash(t *testing.T) {
	r, fb := newTestRegistry()
	_, err := r.Execute(context.Background(), session.New(model.DefaultProfile()), "/dance")
	if !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}
	if len(fb.chats) != 0 {
		t.Error("unknown slash commands are not chat messages")
	}
}

func TestExecute_EventNamesNotTypeable(t *testing.T) {
	r, _ := newTestRegistry()
	// "/send-message" is not an alias; event names are only for Dispatch
	_, err := r.Execute(context.Background(), session.New(model.DefaultProfile()), "/"+EventSendMessage)
	if !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}
}

func TestExecute_HelpAndQuit(t *testing.T) {
	r, _ := newTestRegistry()
	s := session.New(model.DefaultProfile())

	res, err := r.Execute(context.Background(), s, "/help")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"/profile", "/status", "/quick <1-2>", "1. What is my BMI?"} {
		if !strings.Contains(res.Reply, want) {
			t.Errorf("help missing %q:\n%s", want, res.Reply)
		}
	}
	if len(s.Entries()) != 0 {
		t.Error("help must not touch the transcript")
	}

	res, err = r.Execute(context.Background(), s, "/quit")
	if err != nil || !res.Quit {
		t.Errorf("/quit = %+v, %v", res, err)
	}
}

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestProfileForm(t *testing.T) {
	current := model.DefaultProfile()
	form, err := ProfileForm(current, []string{"Age=31", "weight=72.5"})
	if err != nil {
		t.Fatal(err)
	}
	if form.Age != "31" || form.Weight != "72.5" || form.Gender != current.Gender {
		t.Errorf("form = %+v", form)
	}
}
