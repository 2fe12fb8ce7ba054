// Package stage defines the contract between the workflow manager and the
// pipeline stages it drives.
package stage

import (
	"context"

	"subweave/internal/queue"
)

// Handler describes the contract the workflow manager needs from each stage.
// Prepare runs before the job is marked in-flight and may mutate the job;
// Execute performs the stage work under a heartbeat; HealthCheck reports
// whether the stage's external dependencies are usable.
type Handler interface {
	Prepare(context.Context, *queue.Job) error
	Execute(context.Context, *queue.Job) error
	HealthCheck(context.Context) Health
}
