package queue

import "errors"

// ErrorClassifier allows stage errors to declare their classification.
// Kinds "validation", "configuration", and "sanity_check" mark the failed job
// for manual review; everything else is treated as retryable.
type ErrorClassifier interface {
	ErrorKind() string
}

// NeedsManualReview reports whether a stage error should flag the failed job
// for manual review instead of plain retry. Sanity-check failures (such as an
// excessive net drop of input segments) land here so an operator inspects the
// artifacts before the job is re-run.
func NeedsManualReview(err error) bool {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		switch classifier.ErrorKind() {
		case "validation", "configuration", "sanity_check":
			return true
		}
	}
	return false
}
