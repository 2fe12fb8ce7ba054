// Package preflight validates the runtime environment before the daemon
// starts accepting work: directory access, free disk space, external
// binaries, and translation API reachability.
package preflight
