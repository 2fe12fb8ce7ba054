// Package daemon coordinates the background services: the inbox scanner,
// the workflow manager, and the queue store. It enforces single-instance
// execution through a file lock and exposes the queue operations the CLI
// needs.
package daemon
