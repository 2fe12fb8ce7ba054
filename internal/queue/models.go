package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a subtitle job.
type Status string

const (
	StatusPending      Status = "pending"
	StatusTranscribing Status = "transcribing"
	StatusTranscribed  Status = "transcribed"
	StatusTranslating  Status = "translating"
	StatusTranslated   Status = "translated"
	StatusReviewing    Status = "reviewing"
	StatusReviewed     Status = "reviewed"
	StatusFinalizing   Status = "finalizing"
	StatusFinalized    Status = "finalized"
	StatusRendering    Status = "rendering"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

// DaemonStopReason is the error message set when jobs are failed due to daemon shutdown.
const DaemonStopReason = "Daemon stopped"

var allStatuses = []Status{
	StatusPending,
	StatusTranscribing,
	StatusTranscribed,
	StatusTranslating,
	StatusTranslated,
	StatusReviewing,
	StatusReviewed,
	StatusFinalizing,
	StatusFinalized,
	StatusRendering,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusTranscribing: {},
	StatusTranslating:  {},
	StatusReviewing:    {},
	StatusFinalizing:   {},
	StatusRendering:    {},
}

// processingRollbacks maps an in-flight status to the resting status a
// reclaimed job returns to.
var processingRollbacks = map[Status]Status{
	StatusTranscribing: StatusPending,
	StatusTranslating:  StatusTranscribed,
	StatusReviewing:    StatusTranslated,
	StatusFinalizing:   StatusReviewed,
	StatusRendering:    StatusFinalized,
}

// HealthSummary describes aggregated queue counts per key lifecycle state.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Failed     int
	Completed  int
}

// Job represents a subtitle job persisted in SQLite.
type Job struct {
	ID             int64
	SourcePath     string
	Title          string
	Status         Status
	SourceLanguage string
	TargetLanguage string

	// Per-stage artifact paths under the job's work directory.
	AudioFile      string
	SegmentsFile   string
	TranslatedFile string
	ArtifactDir    string

	QAReportJSON    string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string
	LastHeartbeat   *time.Time
	NeedsReview     bool
	ReviewReason    string
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsProcessing returns true when the status reflects an in-flight stage.
func (j Job) IsProcessing() bool {
	return IsProcessingStatus(j.Status)
}

// IsProcessingStatus reports whether a status reflects an in-flight stage.
func IsProcessingStatus(status Status) bool {
	_, ok := processingStatuses[status]
	return ok
}

// RollbackStatus returns the resting status an interrupted in-flight job
// should return to, and whether the given status is in-flight at all.
func RollbackStatus(status Status) (Status, bool) {
	to, ok := processingRollbacks[status]
	return to, ok
}

// InitProgress resets progress fields for a new stage. ErrorMessage is
// cleared so stale failures do not outlive a retry.
func (j *Job) InitProgress(stage, message string) {
	j.ProgressStage = stage
	j.ProgressMessage = message
	j.ProgressPercent = 0
	j.ErrorMessage = ""
}

// SetProgress updates all three progress fields together.
func (j *Job) SetProgress(stage, message string, percent float64) {
	j.ProgressStage = stage
	j.ProgressMessage = message
	j.ProgressPercent = percent
}

// SetProgressComplete sets progress to 100% with the given stage and message.
func (j *Job) SetProgressComplete(stage, message string) {
	j.SetProgress(stage, message, 100)
}

// SetFailed marks the job as failed with the given error message.
func (j *Job) SetFailed(message string) {
	j.Status = StatusFailed
	j.ErrorMessage = message
	j.ProgressPercent = 0
	j.ProgressMessage = message
	j.LastHeartbeat = nil
	j.ProgressStage = "Failed"
}

// LanguagePair renders the job's source and target languages for display.
func (j Job) LanguagePair() string {
	if j.SourceLanguage == "" && j.TargetLanguage == "" {
		return ""
	}
	return j.SourceLanguage + " -> " + j.TargetLanguage
}
