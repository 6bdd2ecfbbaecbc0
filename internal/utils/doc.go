// Package utils holds the shared HTTP transport and parsing helpers used by
// the provider implementations. DoPostJSON is the single place where network
// retries happen; everything above it treats a returned payload as final.
package utils
