// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package highlight

import (
	"bytes"
	"strings"
	"testing"
)

func TestLanguageDetectsByFilename(t *testing.T) {
	if got := Language("main.go", []byte("package main\n")); got != "Go" {
		t.Errorf("got %q, want Go", got)
	}
	if got := Language("limn.json", []byte(`{"fps": 60}`)); got != "JSON" {
		t.Errorf("got %q, want JSON", got)
	}
}

func TestRenderColorizesJSON(t *testing.T) {
	src := `{"fps": 60, "colors": {"active": "#89b4fa"}}`
	out := Render(src, "limn.json", "")
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected ANSI escapes in rendered output")
	}
	if !strings.Contains(out, "fps") {
		t.Error("source text missing from rendered output")
	}
}

func TestRenderUnknownContentSurvives(t *testing.T) {
	src := "completely plain text with no structure"
	out := Render(src, "", "")
	if !strings.Contains(out, "plain text") {
		t.Errorf("content lost: %q", out)
	}
}

func TestRenderUnknownStyleStillRenders(t *testing.T) {
	out := Render(`{"a": 1}`, "x.json", "no-such-style")
	if !strings.Contains(out, "1") {
		t.Errorf("content lost: %q", out)
	}
}

func TestEnabledFalseForNonTerminals(t *testing.T) {
	if Enabled(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is not a terminal")
	}
}
