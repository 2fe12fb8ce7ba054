// Package ingest watches the inbox directory and enqueues subtitle jobs
// for media files that appear there.
package ingest
