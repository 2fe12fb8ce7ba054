// Package workflow drives subtitle jobs through the pipeline stages.
//
// The Manager polls the queue for the oldest job whose status matches a
// registered stage, marks it in-flight, runs the stage handler under a
// heartbeat, and persists the resulting status. Stale in-flight jobs whose
// heartbeats expire are reclaimed to their resting statuses so a crashed
// daemon never strands work.
package workflow
