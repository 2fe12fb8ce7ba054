package subtitle

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
)

// EmitSRT serializes cues as SubRip text: sequential index, comma-millisecond
// timing line, text lines, blank separator.
func EmitSRT(cues []Cue) string {
	var sb strings.Builder
	for i, cue := range cues {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", formatTimestamp(cue.Start, ','), formatTimestamp(cue.End, ','))
		for _, line := range cue.Lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// EmitVTT serializes cues as WebVTT: header token, then the SRT structure
// with period millisecond separators.
func EmitVTT(cues []Cue) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n")
	for i, cue := range cues {
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", formatTimestamp(cue.Start, '.'), formatTimestamp(cue.End, '.'))
		for _, line := range cue.Lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// EmitTTML serializes cues as a minimal TTML document with one <p> per cue
// and XML-escaped text.
func EmitTTML(cues []Cue, language string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&sb, `<tt xmlns="http://www.w3.org/ns/ttml" xml:lang=%q>`+"\n", language)
	sb.WriteString("  <body>\n    <div>\n")
	for _, cue := range cues {
		fmt.Fprintf(&sb, `      <p begin="%s" end="%s">`,
			formatTimestamp(cue.Start, '.'), formatTimestamp(cue.End, '.'))
		for j, line := range cue.Lines {
			if j > 0 {
				sb.WriteString("<br/>")
			}
			sb.WriteString(xmlEscape(line))
		}
		sb.WriteString("</p>\n")
	}
	sb.WriteString("    </div>\n  </body>\n</tt>\n")
	return sb.String()
}

func xmlEscape(text string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(text)); err != nil {
		return text
	}
	return sb.String()
}

// CueEvent is one entry in the normalized machine-readable cue list.
type CueEvent struct {
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Lines []string `json:"lines"`
}

// CueList is the JSON artifact consumed by the overlay renderer that paints
// styled caption graphics onto video frames.
type CueList struct {
	Events      []CueEvent `json:"events"`
	VideoWidth  int        `json:"video_width"`
	VideoHeight int        `json:"video_height"`
	Framerate   float64    `json:"framerate"`
}

// NewCueList builds the normalized cue list artifact.
func NewCueList(cues []Cue, width, height int, framerate float64) CueList {
	events := make([]CueEvent, 0, len(cues))
	for _, cue := range cues {
		events = append(events, CueEvent{Start: cue.Start, End: cue.End, Lines: cue.Lines})
	}
	return CueList{Events: events, VideoWidth: width, VideoHeight: height, Framerate: framerate}
}

// MarshalCueList renders the cue list deterministically with stable
// indentation so re-runs produce byte-identical artifacts.
func MarshalCueList(list CueList) ([]byte, error) {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal cue list: %w", err)
	}
	return append(data, '\n'), nil
}
