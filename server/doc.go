// Package server provides the admin HTTP server for slid.
//
// It exposes read-only endpoints over the running daemon: component
// health, the declared SLIs and their pipeline status, and build
// version information. The server is a lifecycle component and is
// registered alongside the SLI service.
package server
