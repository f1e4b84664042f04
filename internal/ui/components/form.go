// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/healthnest-tui/internal/model"
	"github.com/jeranaias/healthnest-tui/internal/ui/styles"
)

// =============================================================================
// PROFILE FORM COMPONENT - Five profile fields with focus cycling
// =============================================================================

// FormField identifies one field of the profile form.
type FormField int

const (
	FieldAge FormField = iota
	FieldWeight
	FieldHeight
	FieldGender
	FieldActivity
	fieldCount
)

// Name returns the field's key as used in validation errors.
func (f FormField) Name() string {
	switch f {
	case FieldAge:
		return "age"
	case FieldWeight:
		return "weight"
	case FieldHeight:
		return "height"
	case FieldGender:
		return "gender"
	case FieldActivity:
		return "activity"
	default:
		return ""
	}
}

// Label returns the display label for the field.
func (f FormField) Label() string {
	switch f {
	case FieldAge:
		return "Age"
	case FieldWeight:
		return "Weight kg"
	case FieldHeight:
		return "Height cm"
	case FieldGender:
		return "Gender"
	case FieldActivity:
		return "Activity"
	default:
		return ""
	}
}

// ProfileForm edits a profile. Numeric fields are free text inputs; gender
// and activity are selectors cycled with the left and right arrows.
type ProfileForm struct {
	numeric  [3]textinput.Model
	gender   int
	activity int

	// genderText and activityText keep values that are not in the option lists.
	genderText   string
	activityText string

	focus   FormField
	focused bool
	invalid map[string]bool
	width   int
	theme   *styles.Theme
}

// NewProfileForm creates a form seeded with p.
func NewProfileForm(theme *styles.Theme, p model.Profile) *ProfileForm {
	f := &ProfileForm{
		width:   40,
		invalid: map[string]bool{},
		theme:   theme,
	}
	for i := range f.numeric {
		ti := textinput.New()
		ti.CharLimit = 8
		ti.Width = 10
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
		ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Emerald)
		f.numeric[i] = ti
	}
	f.SetProfile(p)
	return f
}

// SetProfile replaces the form contents.
func (f *ProfileForm) SetProfile(p model.Profile) {
	v := p.FormValues()
	f.numeric[FieldAge].SetValue(v.Age)
	f.numeric[FieldWeight].SetValue(v.Weight)
	f.numeric[FieldHeight].SetValue(v.Height)
	f.gender, f.genderText = optionIndex(model.Genders, v.Gender)
	f.activity, f.activityText = optionIndex(model.ActivityLevels, v.Activity)
}

// optionIndex finds value in options. Unknown values are kept as text.
func optionIndex(options []string, value string) (int, string) {
	for i, o := range options {
		if o == value {
			return i, ""
		}
	}
	return -1, value
}

// Values returns the raw form inputs.
func (f *ProfileForm) Values() model.FormValues {
	return model.FormValues{
		Age:      f.numeric[FieldAge].Value(),
		Weight:   f.numeric[FieldWeight].Value(),
		Height:   f.numeric[FieldHeight].Value(),
		Gender:   selected(model.Genders, f.gender, f.genderText),
		Activity: selected(model.ActivityLevels, f.activity, f.activityText),
	}
}

func selected(options []string, idx int, text string) string {
	if idx >= 0 && idx < len(options) {
		return options[idx]
	}
	return text
}

// SetInvalid marks the named fields as invalid until the next edit.
func (f *ProfileForm) SetInvalid(fields []string) {
	f.invalid = make(map[string]bool, len(fields))
	for _, name := range fields {
		f.invalid[name] = true
	}
}

// Invalid reports whether a field is marked invalid.
func (f *ProfileForm) Invalid(field FormField) bool {
	return f.invalid[field.Name()]
}

// SetWidth sets the form width.
func (f *ProfileForm) SetWidth(width int) {
	f.width = width
}

// =============================================================================
// FOCUS
// =============================================================================

// Focus focuses the form on its current field.
func (f *ProfileForm) Focus() tea.Cmd {
	f.focused = true
	return f.focusCurrent()
}

// Blur removes focus from the form.
func (f *ProfileForm) Blur() {
	f.focused = false
	for i := range f.numeric {
		f.numeric[i].Blur()
	}
}

// Focused returns whether the form has focus.
func (f *ProfileForm) Focused() bool {
	return f.focused
}

// Current returns the focused field.
func (f *ProfileForm) Current() FormField {
	return f.focus
}

// Next moves focus to the next field. It reports false when focus leaves
// the last field, which the caller uses to move past the form.
func (f *ProfileForm) Next() (tea.Cmd, bool) {
	if f.focus == fieldCount-1 {
		f.focus = 0
		return f.focusCurrent(), false
	}
	f.focus++
	return f.focusCurrent(), true
}

// Prev moves focus to the previous field. It reports false when focus
// leaves the first field.
func (f *ProfileForm) Prev() (tea.Cmd, bool) {
	if f.focus == 0 {
		f.focus = fieldCount - 1
		return f.focusCurrent(), false
	}
	f.focus--
	return f.focusCurrent(), true
}

func (f *ProfileForm) focusCurrent() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.numeric {
		if f.focused && FormField(i) == f.focus {
			cmd = f.numeric[i].Focus()
		} else {
			f.numeric[i].Blur()
		}
	}
	return cmd
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update handles input for the focused field.
func (f *ProfileForm) Update(msg tea.Msg) (*ProfileForm, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch f.focus {
		case FieldGender:
			f.gender = cycle(f.gender, len(model.Genders), key.String())
			f.genderText = ""
			delete(f.invalid, FieldGender.Name())
			return f, nil
		case FieldActivity:
			f.activity = cycle(f.activity, len(model.ActivityLevels), key.String())
			f.activityText = ""
			delete(f.invalid, FieldActivity.Name())
			return f, nil
		}
		delete(f.invalid, f.focus.Name())
	}

	if f.focus < FieldGender {
		var cmd tea.Cmd
		f.numeric[f.focus], cmd = f.numeric[f.focus].Update(msg)
		return f, cmd
	}
	return f, nil
}

// cycle moves a selector index with the arrow keys.
func cycle(idx, n int, key string) int {
	switch key {
	case "left", "h":
		if idx <= 0 {
			return n - 1
		}
		return idx - 1
	case "right", "l", " ":
		return (idx + 1) % n
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// View renders the form as a panel.
func (f *ProfileForm) View() string {
	var b strings.Builder
	b.WriteString(f.theme.PanelTitle.Render("Your Profile"))
	b.WriteString("\n")

	for field := FormField(0); field < fieldCount; field++ {
		label := f.theme.FieldLabel.Render(field.Label())
		var value string
		switch field {
		case FieldGender:
			value = f.renderSelector(selected(model.Genders, f.gender, f.genderText), field)
		case FieldActivity:
			value = f.renderSelector(selected(model.ActivityLevels, f.activity, f.activityText), field)
		default:
			value = f.numeric[field].View()
		}

		marker := "  "
		if f.focused && field == f.focus {
			marker = lipgloss.NewStyle().Foreground(styles.Emerald).Render("> ")
		}
		line := marker + label + " " + value
		if f.Invalid(field) {
			line += " " + lipgloss.NewStyle().Foreground(styles.Rose).Render(styles.StatusIndicators.Error)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(f.theme.FieldHint.Render("Enter: analyze  Tab: next field"))

	panel := f.theme.Panel
	if f.focused {
		panel = f.theme.PanelFocused
	}
	return panel.Width(f.width).Render(b.String())
}

func (f *ProfileForm) renderSelector(value string, field FormField) string {
	if f.focused && field == f.focus {
		return lipgloss.NewStyle().Foreground(styles.Emerald).Render("< " + value + " >")
	}
	return lipgloss.NewStyle().Foreground(styles.TextPrimary).Render(value)
}
