// Package logging provides logging utilities including sensitive data filtering.
// This package contains hooks and utilities for zerolog that help ensure
// credentials handed to the tracker, timer, and calendar APIs are never
// written to log files.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns contains compiled regular expressions for detecting sensitive values.
// These patterns cover the credential formats tasksync handles: personal access
// tokens sent as basic auth, OAuth bearer tokens for the calendar API, and
// generic secret assignments that may appear in configuration dumps.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Azure DevOps personal access tokens (52-char base32-ish strings)
	regexp.MustCompile(`\b[a-z2-7]{52}\b`),

	// Basic auth headers carrying an encoded PAT
	regexp.MustCompile(`(?i)basic\s+[a-zA-Z0-9+/=]{20,}`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),

	// Authorization headers with tokens
	regexp.MustCompile(`(?i)authorization\s*[:=]\s*["']?[a-zA-Z0-9._-]{20,}["']?`),

	// PAT assignments (pat: xxx, pat=xxx)
	regexp.MustCompile(`(?i)\bpat\s*[:=]\s*["']?[^\s"']{16,}["']?`),

	// Generic secret patterns (secret, password, credential, token with values)
	regexp.MustCompile(`(?i)(secret|password|credential|passwd|pwd)\s*[:=]\s*["']?[^\s"']{8,}["']?`),

	// Token assignments that look base64-encoded
	regexp.MustCompile(`(?i)(token|auth)\s*[:=]\s*["']?[a-zA-Z0-9+/=]{32,}["']?`),
}

// sensitiveFieldNames contains field names that should always have their values redacted.
// Case-insensitive matching is performed.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"pat",
	"personal_access_token",
	"password",
	"passwd",
	"secret",
	"credential",
	"credentials",
	"auth_token",
	"authtoken",
	"auth-token",
	"access_token",
	"accesstoken",
	"access-token",
	"refresh_token",
	"refreshtoken",
	"refresh-token",
	"bearer",
	"authorization",
}

// SensitiveDataHook is a zerolog hook that flags log entries whose message
// contains data matching a known credential pattern. Zerolog hooks cannot
// rewrite the message itself, so redaction of values happens at call sites
// via FilterSensitiveValue; the hook marks entries that slipped through.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook for filtering sensitive data.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements the zerolog.Hook interface.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData checks if a string contains any sensitive data patterns.
// Returns true if any sensitive pattern is found.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue filters sensitive data from a string value.
// It replaces any matches of sensitive patterns with [REDACTED].
// Use this when logging values that may embed credentials, such as request
// URLs or configuration snapshots.
func FilterSensitiveValue(s string) string {
	filtered := s
	for _, pattern := range sensitivePatterns {
		filtered = pattern.ReplaceAllString(filtered, RedactedValue)
	}
	return filtered
}

// FilteringWriter wraps an io.Writer and filters sensitive data from output.
// This is used to wrap log file writers to ensure sensitive data is never
// written to disk, even if it appears in log messages or field values.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a new FilteringWriter that wraps the given writer.
// All data written through this writer will have sensitive patterns redacted.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer, filtering sensitive data before writing.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := FilterSensitiveValue(string(p))
	if _, err = fw.w.Write([]byte(filtered)); err != nil {
		return 0, err
	}
	// Return original length so callers don't think there was a short write
	return len(p), nil
}

// IsSensitiveFieldName reports whether a field name denotes a credential and
// should have its value redacted regardless of content.
func IsSensitiveFieldName(name string) bool {
	lower := strings.ToLower(name)
	for _, sensitive := range sensitiveFieldNames {
		if lower == sensitive {
			return true
		}
	}
	return false
}
