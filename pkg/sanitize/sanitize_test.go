package sanitize_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fieldline/triage/pkg/sanitize"
)

func newSanitizer() *sanitize.Sanitizer {
	return sanitize.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClean(t *testing.T) {
	s := newSanitizer()

	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{
			name:     "script tag removed",
			input:    `Hello <script>alert("x")</script> world`,
			contains: "Hello",
			excludes: "script",
		},
		{
			name:     "event handler removed",
			input:    `click onclick=evil() here`,
			contains: "here",
			excludes: "onclick",
		},
		{
			name:     "residual tags stripped",
			input:    "before <b>bold</b> after",
			contains: "bold",
			excludes: "<b>",
		},
		{
			name:     "javascript protocol removed",
			input:    "go to javascript:alert(1) now",
			contains: "now",
			excludes: "javascript:",
		},
		{
			name:     "whitespace collapsed",
			input:    "a    lot\n\nof   space",
			contains: "a lot of space",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Clean(tt.input, 0)
			if tt.contains != "" && !strings.Contains(got, tt.contains) {
				t.Errorf("Clean(%q) = %q, missing %q", tt.input, got, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(got, tt.excludes) {
				t.Errorf("Clean(%q) = %q, still contains %q", tt.input, got, tt.excludes)
			}
		})
	}
}

func TestCleanLengthCap(t *testing.T) {
	s := newSanitizer()

	got := s.Clean(strings.Repeat("a", 100), 10)
	if len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}
}

func TestCleanEscapesEntities(t *testing.T) {
	s := newSanitizer()

	got := s.Clean("a & b", 0)
	if !strings.Contains(got, "&amp;") {
		t.Errorf("Clean() = %q, want escaped ampersand", got)
	}
}

func TestIsSafe(t *testing.T) {
	s := newSanitizer()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", true},
		{"plain text", "My invoice is wrong", true},
		{"script tag", "<script>x</script>", false},
		{"sql keywords", "1 UNION SELECT password", false},
		{"html tag", "<div>content</div>", false},
		{"data protocol", "data:text/html;base64,xyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsSafe(tt.input); got != tt.want {
				t.Errorf("IsSafe(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
