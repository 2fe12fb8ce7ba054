// Package whisperx wraps the uvx-launched WhisperX transcriber and the
// ffmpeg audio extraction that feeds it.
package whisperx
