// Package subtitle implements the finalization engine that turns loose
// timestamped translation segments into broadcast-legal subtitle cues.
//
// Finalize is a pure function of (segments, options): music-only segments are
// dropped, overlong segments are split on punctuation with re-derived
// timestamps, unreadably fast fragments are merged back together, dangling
// conjunctions and terminal fragments are relocated across cue boundaries,
// on-screen durations are resolved against the language reading-speed policy,
// and text is balanced into at most two capped lines. Emitters serialize the
// resulting cue list to SRT, WebVTT, TTML, and a normalized JSON cue list for
// the overlay renderer; the QA collector aggregates diagnostics without
// feeding back into the cue list.
//
// Each stage produces a new slice and never mutates its input, so concurrent
// Finalize calls for different jobs share nothing.
package subtitle
