// Package log provides structured logging built on [log/slog] with an
// additional Trace level, selectable text or JSON output, and optional
// colorized pretty printing.
//
// The zero value of [Logger] is valid and discards all messages, so
// library code can accept a Logger without nil checks.
package log
