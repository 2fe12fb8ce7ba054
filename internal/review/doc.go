// Package review is the pipeline stage that runs the chief editor pass
// over the draft translation.
package review
