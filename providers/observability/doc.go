// Package observability defines the logging contract used by the core
// packages. An Observer travels in the context so that library code never
// depends on a concrete logger; the slogobs subpackage provides the standard
// implementation backed by log/slog.
package observability
