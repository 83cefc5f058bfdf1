package api

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDeriveTitleShortMessage(t *testing.T) {
	tests := []string{
		"Hello",
		"How do I track my ovulation cycle?",
		strings.Repeat("a", 50),
	}
	for _, msg := range tests {
		if got := DeriveTitle(msg); got != msg {
			t.Errorf("DeriveTitle(%q) = %q, expected the message verbatim", msg, got)
		}
	}
}

func TestDeriveTitleLongMessage(t *testing.T) {
	msg := strings.Repeat("a", 51)
	got := DeriveTitle(msg)
	want := strings.Repeat("a", 47) + "..."
	if got != want {
		t.Errorf("DeriveTitle = %q, expected %q", got, want)
	}
	if n := utf8.RuneCountInString(got); n != 50 {
		t.Errorf("Expected truncated title of 50 runes, got %d", n)
	}
}

func TestDeriveTitleMultibyte(t *testing.T) {
	// 60 Devanagari runes must be cut on rune boundaries, not bytes.
	msg := strings.Repeat("क", 60)
	got := DeriveTitle(msg)
	want := strings.Repeat("क", 47) + "..."
	if got != want {
		t.Errorf("DeriveTitle = %q, expected %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Error("Expected a valid UTF-8 title")
	}
}
