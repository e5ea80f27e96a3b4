// Package errors provides foundational, type-safe error primitives used across sitebuilder.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (io, parse, front matter, date, collision, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLI adapter for exit codes and error presentation
//
// Every build stage is fail-fast: the first classified error aborts the build and
// is surfaced by the CLI adapter together with its context (file or output path).
//
// Example usage:
//
//	err := errors.DateParseError("invalid date prefix").
//		WithContext("file", "posts/2023-13-01-oops.md").
//		WithCause(parseErr).
//		Build()
package errors
