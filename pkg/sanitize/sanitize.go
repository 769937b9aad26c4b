// Package sanitize strips unsafe markup from inbound text and flags
// suspicious content before it reaches persistence.
package sanitize

import (
	"html"
	"log/slog"
	"regexp"
	"strings"
)

var scriptPatterns = []string{
	`<script[^>]*>.*?</script>`,
	`javascript:`,
	`on\w+\s*=`,
	`<iframe[^>]*>`,
	`<object[^>]*>`,
	`<embed[^>]*>`,
	`<form[^>]*>`,
	`<input[^>]*>`,
	`<textarea[^>]*>`,
	`<select[^>]*>`,
	`<button[^>]*>`,
	`<link[^>]*>`,
	`<meta[^>]*>`,
	`<style[^>]*>`,
}

var sqlPatterns = []string{
	`(\b(union|select|insert|update|delete|drop|create|alter|exec|execute)\b)`,
	`(\b(or|and)\b\s+\d+\s*=\s*\d+)`,
}

var protocolPatterns = []string{
	`javascript:`,
	`vbscript:`,
	`data:`,
	`file:`,
}

var (
	scriptRe   = regexp.MustCompile(`(?is)` + strings.Join(scriptPatterns, "|"))
	sqlRe      = regexp.MustCompile(`(?i)` + strings.Join(sqlPatterns, "|"))
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	protocolRe = regexp.MustCompile(`(?i)` + strings.Join(protocolPatterns, "|"))
)

// Sanitizer cleans text input and detects dangerous patterns. The zero
// value is not usable; construct with New.
type Sanitizer struct {
	logger *slog.Logger
}

// New creates a Sanitizer that logs truncations and modifications.
func New(logger *slog.Logger) *Sanitizer {
	return &Sanitizer{logger: logger.With("component", "sanitizer")}
}

// Clean removes dangerous content, escapes HTML entities, strips residual
// tags, and normalizes whitespace. A maxLength > 0 caps the result length.
func (s *Sanitizer) Clean(text string, maxLength int) string {
	originalLength := len(text)

	cleaned := scriptRe.ReplaceAllString(text, "")
	cleaned = sqlRe.ReplaceAllString(cleaned, "")
	cleaned = tagRe.ReplaceAllString(cleaned, "")
	cleaned = protocolRe.ReplaceAllString(cleaned, "")

	cleaned = html.EscapeString(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if maxLength > 0 && len(cleaned) > maxLength {
		cleaned = cleaned[:maxLength]
		s.logger.Warn(
			"text truncated due to length limit",
			"original_length", originalLength,
			"truncated_length", len(cleaned),
			"max_length", maxLength,
		)
	}

	if len(cleaned) != originalLength {
		s.logger.Info(
			"text sanitized",
			"original_length", originalLength,
			"sanitized_length", len(cleaned),
		)
	}

	return cleaned
}

// IsSafe reports whether text contains no dangerous patterns. It performs
// detection only; callers still pass content through Clean before storing.
func (s *Sanitizer) IsSafe(text string) bool {
	if text == "" {
		return true
	}
	if scriptRe.MatchString(text) {
		return false
	}
	if sqlRe.MatchString(text) {
		return false
	}
	if tagRe.MatchString(text) {
		return false
	}
	return !protocolRe.MatchString(text)
}
