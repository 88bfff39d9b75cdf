// Package component defines the lifecycle contract shared by the
// daemon's long-running parts (backend clients, the indicator service,
// the admin server) and a registry that starts them in dependency order
// and stops them in reverse.
package component
