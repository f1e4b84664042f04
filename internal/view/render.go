// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	PageTemplate       = "index.html"
	TranscriptTemplate = "transcript"
)

// PageData is the view-model of the full dashboard page.
type PageData struct {
	Title          string
	Snap           session.Snapshot
	Form           model.FormValues
	Genders        []string
	ActivityLevels []string
	QuickQuestions []string

	// Notice is a one-off message shown above the chat, e.g. a rate limit.
	Notice string
}

// NewPageData builds the page view-model for a snapshot.
func NewPageData(snap session.Snapshot, quick []string) PageData {
	return PageData{
		Title:          "HealthNest AI",
		Snap:           snap,
		Form:           snap.Profile.FormValues(),
		Genders:        model.Genders,
		ActivityLevels: model.ActivityLevels,
		QuickQuestions: quick,
	}
}

// Funcs are the template helpers shared by every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"userText":    UserText,
		"botText":     BotText,
		"statusClass": StatusClass,
		"firstTyping": FirstTypingID,
		"avatar": func(e model.Entry) string {
			if e.IsUser() {
				return "👤"
			}
			return "🤖"
		},
	}
}

// FirstTypingID returns the ID of the oldest pending typing placeholder, or
// "" when none is pending. Only that placeholder carries the
// typingIndicator DOM ID; overlapping chats render the rest without one.
func FirstTypingID(entries []model.Entry) string {
	for _, e := range entries {
		if e.IsTyping {
			return e.ID
		}
	}
	return ""
}

// Renderer executes the embedded dashboard templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Template returns the parsed template set.
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

// Page renders the full dashboard page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, PageTemplate, data)
}

// Transcript renders the chatMessages partial for a snapshot.
func (r *Renderer) Transcript(w io.Writer, snap session.Snapshot) error {
	return r.tmpl.ExecuteTemplate(w, TranscriptTemplate, snap)
}
