// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures for server settings, including the
// interactive reordering defaults that new boards inherit.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and the reorder defaults
// (enabled, cross-group drops allowed).
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the board feature to derive each board's reorder policy.
package server
