// Package render burns finalized subtitles into a review proof video using
// ffmpeg's subtitles filter.
package render
