// Package transcribe is the pipeline stage that extracts audio from the
// source media and runs WhisperX to produce aligned segments.
package transcribe
