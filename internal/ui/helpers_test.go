package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		current int
		goal    int
		width   int
		want    string
	}{
		{"empty", 0, 2000, 4, "░░░░"},
		{"half", 1000, 2000, 4, "██░░"},
		{"full", 2000, 2000, 4, "████"},
		{"over goal", 4000, 2000, 4, "████"},
		{"zero goal", 100, 0, 3, "░░░"},
		{"no width", 100, 2000, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressBar(tt.current, tt.goal, tt.width); got != tt.want {
				t.Errorf("progressBar(%d, %d, %d) = %q, want %q", tt.current, tt.goal, tt.width, got, tt.want)
			}
		})
	}
}

func TestSpeechBubbleWraps(t *testing.T) {
	text := "Hey! It has been a while since your last glass, have some water please"
	got := speechBubble(text)

	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped text, got %q", got)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > bubbleWidth {
			t.Errorf("line %q is %d wide, max %d", line, w, bubbleWidth)
		}
	}
}

func TestSpeechBubbleKeepsFullWidthLine(t *testing.T) {
	msg := "Time for a sip of water!"
	if len(msg) != bubbleWidth {
		t.Fatalf("test message is %d wide, want %d", len(msg), bubbleWidth)
	}
	if got := speechBubble(msg); got != msg {
		t.Errorf("speechBubble(%q) = %q, want it unchanged", msg, got)
	}
}

func TestSpeechBubbleCutsLongWords(t *testing.T) {
	got := speechBubble(strings.Repeat("w", 40))
	if w := lipgloss.Width(got); w > bubbleWidth {
		t.Errorf("width = %d, max %d", w, bubbleWidth)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected tail on cut word, got %q", got)
	}
}

func TestFormatMl(t *testing.T) {
	tests := []struct {
		ml   int
		want string
	}{
		{250, "250 ml"},
		{2000, "2.0 l"},
		{2500, "2.5 l"},
		{2550, "2550 ml"},
	}

	for _, tt := range tests {
		if got := formatMl(tt.ml); got != tt.want {
			t.Errorf("formatMl(%d) = %q, want %q", tt.ml, got, tt.want)
		}
	}
}
