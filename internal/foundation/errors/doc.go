// Package errors classifies the failures of a snippetdocs run.
//
// Every error that reaches the CLI should be a *ClassifiedError. Its category picks
// the process exit code; its context (chapter, language, path, ...) is printed and
// logged alongside the message. Nothing is retried: an operation either succeeds
// or the run stops.
//
//	err := errors.WrapError(cause, errors.CategoryRender, "render snippet failed").
//		Fatal().
//		WithChapter(chapter).
//		WithPath(translationPath).
//		Build()
package errors
