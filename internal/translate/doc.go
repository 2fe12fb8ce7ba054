// Package translate is the pipeline stage that turns the transcription into
// a draft target-language segments file.
package translate
