// Package version exposes build information for the slid daemon.
//
// Version, commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/slikit/version.Version=1.0.0"
//
// When ldflags are absent the commit is recovered from the binary's
// embedded VCS metadata.
package version
