// Package finalize is the pipeline stage that converts translated segments
// into broadcast-legal cues and writes the caption artifacts.
package finalize
