// Package clock abstracts wall-clock time and tick scheduling so that
// pipelines driven by a shared clock can be tested deterministically.
//
// System() returns the real clock. Manual is a hand-advanced clock for
// tests: every Advance call fires one tick on each open subscription.
package clock
