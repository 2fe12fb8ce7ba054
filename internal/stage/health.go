package stage

import "fmt"

// Health is the outcome of one stage's readiness probe. A stage that is not
// ready keeps producing jobs that fail on Prepare, so the daemon surfaces
// these at startup.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy reports a stage ready to accept jobs.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy reports a stage that cannot process jobs, with the reason.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}

// String renders the probe outcome for logs and status output.
func (h Health) String() string {
	if h.Ready {
		return h.Name + ": ready"
	}
	return fmt.Sprintf("%s: not ready (%s)", h.Name, h.Detail)
}
