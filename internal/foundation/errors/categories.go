package errors

import (
	"log/slog"
	"sort"
)

// ErrorCategory classifies an error by the part of a run that produced it.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// Content errors: the snippet tree or a document is wrong, not the tool.
	CategoryDiscovery ErrorCategory = "discovery"
	CategoryParse     ErrorCategory = "parse"
	CategoryRender    ErrorCategory = "render"
	CategoryExpand    ErrorCategory = "expand"

	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryNotFound:   4,
	CategoryConfig:     7,
	CategoryDiscovery:  9,
	CategoryParse:      9,
	CategoryRender:     9,
	CategoryExpand:     9,
	CategoryInternal:   10,
	CategoryFileSystem: 11,
	CategoryRuntime:    12,
}

// ExitCode is the process exit status for an error of this category (1 if unknown).
func (c ErrorCategory) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return 1
}

// IsContent reports whether the category describes bad snippet or document content.
func (c ErrorCategory) IsContent() bool {
	return c.ExitCode() == 9
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // stops the run
	SeverityError   ErrorSeverity = "error"   // fails the current operation
	SeverityWarning ErrorSeverity = "warning" // run continues with degraded output
	SeverityInfo    ErrorSeverity = "info"
)

// Level maps the severity onto a slog level.
func (s ErrorSeverity) Level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// ErrorContext holds structured key/value details attached to an error.
type ErrorContext map[string]any

// GetString returns the value at key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// Keys returns the context keys in sorted order.
func (c ErrorContext) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Attrs converts the context to slog attributes in key order.
func (c ErrorContext) Attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(c))
	for _, k := range c.Keys() {
		attrs = append(attrs, slog.Any(k, c[k]))
	}
	return attrs
}
