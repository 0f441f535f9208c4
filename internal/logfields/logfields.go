// Package logfields names the structured log attributes.
package logfields

import (
	"log/slog"
	"time"
)

// Attribute keys shared by every log line snippetdocs writes.
const (
	KeyRunID       = "run_id"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyChapter     = "chapter"
	KeySection     = "section"
	KeyLanguage    = "language"
	KeyTemplate    = "template"
	KeyTranslation = "translation"
	KeySnippet     = "snippet"
	KeyPath        = "path"
	KeyFile        = "file"
	KeyReason      = "reason"
	KeyCount       = "count"
	KeyError       = "error"
)

func RunID(id string) slog.Attr   { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }

// Duration reports d in milliseconds under duration_ms.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Chapter(c string) slog.Attr     { return slog.String(KeyChapter, c) }
func Section(s string) slog.Attr     { return slog.String(KeySection, s) }
func Language(l string) slog.Attr    { return slog.String(KeyLanguage, l) }
func Template(p string) slog.Attr    { return slog.String(KeyTemplate, p) }
func Translation(p string) slog.Attr { return slog.String(KeyTranslation, p) }
func Snippet(name string) slog.Attr  { return slog.String(KeySnippet, name) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func File(f string) slog.Attr        { return slog.String(KeyFile, f) }
func Reason(r string) slog.Attr      { return slog.String(KeyReason, r) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }

// Error records err's message; a nil error yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
