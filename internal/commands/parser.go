// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"
)

// Line is one line typed into a chat input.
type Line struct {
	// Text is the trimmed input.
	Text string

	// Name is the lower-cased slash command ("/profile"), empty for chat text.
	Name string

	// Rest is everything after Name, trimmed.
	Rest string

	// Args is Rest split into words.
	Args []string
}

// IsCommand reports whether the line starts with a slash command.
func (l Line) IsCommand() bool { return l.Name != "" }

// ParseLine splits input into a slash command and its arguments. Text not
// starting with "/" is chat text and has no Name.
func ParseLine(input string) Line {
	l := Line{Text: strings.TrimSpace(input)}
	if !strings.HasPrefix(l.Text, "/") {
		return l
	}

	name, rest := l.Text, ""
	if end := strings.IndexFunc(l.Text, unicode.IsSpace); end >= 0 {
		name, rest = l.Text[:end], l.Text[end:]
	}
	l.Name = strings.ToLower(name)
	l.Rest = strings.TrimSpace(rest)
	l.Args = Fields(l.Rest)
	return l
}

// Fields splits s at unquoted whitespace. Single or double quotes group
// words and are dropped; inside quotes a backslash escapes a quote or
// another backslash. An unterminated quote runs to the end of s.
func Fields(s string) []string {
	var (
		out   []string
		word  strings.Builder
		quote rune
		open  bool
	)
	flush := func() {
		if open {
			out = append(out, word.String())
			word.Reset()
			open = false
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0 && r == '\\' && i+1 < len(runes) && strings.ContainsRune(`"'\`, runes[i+1]):
			i++
			word.WriteRune(runes[i])
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
			open = true
		case quote == 0 && unicode.IsSpace(r):
			flush()
		default:
			word.WriteRune(r)
			open = true
		}
	}
	flush()
	return out
}
