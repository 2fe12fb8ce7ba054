// Package standards holds the broadcast delivery constraints the subtitle
// finalization engine enforces: line and duration caps, merge thresholds,
// per-language reading-speed policies, and the per-language word sets used
// by the orphan rescue and line balancing passes.
//
// A Standard is an immutable value passed into the engine entry point so
// jobs targeting different delivery specs can run concurrently without
// sharing mutable process state.
package standards
