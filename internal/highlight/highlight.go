// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/highlight/highlight.go
// Summary: ANSI syntax highlighting for CLI output.

package highlight

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"
	"golang.org/x/term"
)

const defaultStyleName = "catppuccin-mocha"

// Language guesses the language of content, preferring the filename.
// Returns the empty string when nothing matches.
func Language(filename string, content []byte) string {
	return enry.GetLanguage(filename, content)
}

// Render colorizes src for a 256-color terminal. The filename steers
// lexer selection; content analysis is the fallback. On any rendering
// problem the source comes back unchanged, so piping stays safe.
func Render(src, filename, styleName string) string {
	if styleName == "" {
		styleName = defaultStyleName
	}

	lexer := chroma.Coalesce(lexerFor(filename, src))
	style := styles.Get(styleName)
	formatter := formatters.Get("terminal256")

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var sb strings.Builder
	if err := formatter.Format(&sb, style, it); err != nil {
		return src
	}
	return sb.String()
}

func lexerFor(filename, src string) chroma.Lexer {
	if lang := Language(filename, []byte(src)); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(src); l != nil {
		return l
	}
	return lexers.Fallback
}

// Enabled reports whether w is a terminal that can show colors.
// Redirected or piped output gets plain text.
func Enabled(w io.Writer) bool {
	type fder interface{ Fd() uintptr }
	if f, ok := w.(fder); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
