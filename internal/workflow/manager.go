package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"subweave/internal/config"
	"subweave/internal/logging"
	"subweave/internal/queue"
	"subweave/internal/stage"
)

// StageSet carries the handlers the manager drives. Nil handlers are
// skipped and the pipeline is stitched around them, so a daemon with
// translation or rendering disabled still moves jobs to completion.
type StageSet struct {
	Transcriber stage.Handler
	Translator  stage.Handler
	Reviewer    stage.Handler
	Finalizer   stage.Handler
	Renderer    stage.Handler
}

// pipelineStage binds a handler to the queue statuses it consumes and
// produces.
type pipelineStage struct {
	name             string
	handler          stage.Handler
	startStatus      queue.Status
	processingStatus queue.Status
	doneStatus       queue.Status
}

// Manager owns the daemon processing loop.
type Manager struct {
	cfg                *config.Config
	store              *queue.Store
	logger             *slog.Logger
	pollInterval       time.Duration
	errorRetryInterval time.Duration
	heartbeat          *HeartbeatMonitor

	pipeline      []pipelineStage
	startStatuses []queue.Status

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	lastErr   error
	lastJobID int64
}

// NewManager creates a workflow manager bound to the queue store.
func NewManager(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Manager {
	workflowLogger := logging.NewComponentLogger(logger, "workflow")
	heartbeatInterval := time.Duration(cfg.Workflow.HeartbeatInterval) * time.Second
	heartbeatTimeout := time.Duration(cfg.Workflow.HeartbeatTimeout) * time.Second
	return &Manager{
		cfg:                cfg,
		store:              store,
		logger:             workflowLogger,
		pollInterval:       time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
		errorRetryInterval: time.Duration(cfg.Workflow.ErrorRetryInterval) * time.Second,
		heartbeat:          NewHeartbeatMonitor(store, workflowLogger, heartbeatInterval, heartbeatTimeout),
	}
}

// ConfigureStages registers the stage handlers and stitches the pipeline.
// The first registered stage consumes pending jobs and the last one
// completes them, regardless of which optional stages are present.
func (m *Manager) ConfigureStages(set StageSet) {
	candidates := []pipelineStage{
		{name: "transcribe", handler: set.Transcriber, processingStatus: queue.StatusTranscribing, doneStatus: queue.StatusTranscribed},
		{name: "translate", handler: set.Translator, processingStatus: queue.StatusTranslating, doneStatus: queue.StatusTranslated},
		{name: "review", handler: set.Reviewer, processingStatus: queue.StatusReviewing, doneStatus: queue.StatusReviewed},
		{name: "finalize", handler: set.Finalizer, processingStatus: queue.StatusFinalizing, doneStatus: queue.StatusFinalized},
		{name: "render", handler: set.Renderer, processingStatus: queue.StatusRendering, doneStatus: queue.StatusCompleted},
	}

	pipeline := make([]pipelineStage, 0, len(candidates))
	next := queue.StatusPending
	for _, candidate := range candidates {
		if candidate.handler == nil {
			continue
		}
		candidate.startStatus = next
		pipeline = append(pipeline, candidate)
		next = candidate.doneStatus
	}
	if len(pipeline) > 0 {
		pipeline[len(pipeline)-1].doneStatus = queue.StatusCompleted
	}

	starts := make([]queue.Status, len(pipeline))
	for i, st := range pipeline {
		starts[i] = st.startStatus
	}

	m.mu.Lock()
	m.pipeline = pipeline
	m.startStatuses = starts
	m.mu.Unlock()
}

// Start launches the processing loop. It fails when no stages are
// registered or the manager is already running.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("workflow manager already running")
	}
	if len(m.pipeline) == 0 {
		return errors.New("no stages configured")
	}

	for _, st := range m.pipeline {
		if check := st.handler.HealthCheck(ctx); !check.Ready {
			m.logger.Warn("stage not ready", logging.String("health", check.String()))
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	go m.run(runCtx)

	m.logger.Info("workflow manager started",
		logging.Int("stages", len(m.pipeline)),
		logging.Duration("poll_interval", m.pollInterval))
	return nil
}

// Stop halts the processing loop and fails any job still in flight so the
// operator sees an explicit record of the interruption.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
	m.failInterruptedJobs()
	m.logger.Info("workflow manager stopped")
}

// Running reports whether the processing loop is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// LastError returns the most recent processing error, if any.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Health runs every registered stage's health check.
func (m *Manager) Health(ctx context.Context) []stage.Health {
	m.mu.Lock()
	pipeline := m.pipeline
	m.mu.Unlock()

	checks := make([]stage.Health, 0, len(pipeline))
	for _, st := range pipeline {
		checks = append(checks, st.handler.HealthCheck(ctx))
	}
	return checks
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}

		if err := m.heartbeat.ReclaimStaleJobs(ctx, m.logger); err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Warn("stale job reclaim failed", logging.Error(err))
		}

		processed, err := m.processNext(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			m.recordError(err)
			m.logger.Error("job processing failed", logging.Error(err))
			if !m.sleep(ctx, m.errorRetryInterval) {
				return
			}
			continue
		}
		if processed {
			// Drain the queue without waiting for the next tick.
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// processNext claims and runs the oldest ready job. It returns true when a
// job was processed, whether or not the stage succeeded.
func (m *Manager) processNext(ctx context.Context) (bool, error) {
	m.mu.Lock()
	starts := m.startStatuses
	m.mu.Unlock()

	job, err := m.store.NextForStatuses(ctx, starts...)
	if err != nil {
		return false, fmt.Errorf("next job: %w", err)
	}
	if job == nil {
		return false, nil
	}

	m.processJob(ctx, job)
	return true, nil
}

func (m *Manager) processJob(ctx context.Context, job *queue.Job) {
	st, ok := m.stageFor(job.Status)
	if !ok {
		m.logger.Warn("no stage for job status",
			logging.Int64(logging.FieldJobID, job.ID),
			logging.String("status", string(job.Status)))
		return
	}

	requestID := uuid.NewString()
	jobLogger := m.logger.With(logging.Args(
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String(logging.FieldStage, st.name),
		logging.String(logging.FieldRequestID, requestID),
		logging.String(logging.FieldLanguage, job.TargetLanguage),
	)...)

	m.mu.Lock()
	m.lastJobID = job.ID
	m.mu.Unlock()

	jobLogger.Info("stage starting", logging.String("title", job.Title))

	if err := st.handler.Prepare(ctx, job); err != nil {
		m.handleStageFailure(ctx, job, st, jobLogger, fmt.Errorf("prepare: %w", err))
		return
	}

	if err := m.transitionToProcessing(ctx, job, st); err != nil {
		m.recordError(err)
		jobLogger.Error("status transition failed", logging.Error(err))
		return
	}

	if err := m.executeWithHeartbeat(ctx, job, st); err != nil {
		m.handleStageFailure(ctx, job, st, jobLogger, err)
		return
	}

	job.Status = st.doneStatus
	job.LastHeartbeat = nil
	job.SetProgressComplete(st.name, "Stage complete")
	if err := m.store.Update(ctx, job); err != nil {
		m.recordError(err)
		jobLogger.Error("job update failed", logging.Error(err))
		return
	}

	jobLogger.Info("stage finished", logging.String("status", string(job.Status)))
}

func (m *Manager) transitionToProcessing(ctx context.Context, job *queue.Job, st pipelineStage) error {
	now := time.Now().UTC()
	job.Status = st.processingStatus
	job.LastHeartbeat = &now
	job.InitProgress(st.name, "Stage starting")
	if err := m.store.Update(ctx, job); err != nil {
		return fmt.Errorf("mark %s: %w", st.processingStatus, err)
	}
	return nil
}

// executeWithHeartbeat runs the stage handler while a background goroutine
// keeps the job's heartbeat fresh.
func (m *Manager) executeWithHeartbeat(ctx context.Context, job *queue.Job, st pipelineStage) error {
	heartbeatCtx, stopHeartbeat := context.WithCancel(ctx)
	var heartbeatWG sync.WaitGroup
	heartbeatWG.Add(1)
	go m.heartbeat.StartLoop(heartbeatCtx, &heartbeatWG, job.ID)

	err := st.handler.Execute(ctx, job)

	stopHeartbeat()
	heartbeatWG.Wait()
	return err
}

func (m *Manager) handleStageFailure(ctx context.Context, job *queue.Job, st pipelineStage, logger *slog.Logger, stageErr error) {
	m.recordError(stageErr)

	job.SetFailed(fmt.Sprintf("%s failed: %v", st.name, stageErr))
	if queue.NeedsManualReview(stageErr) {
		job.NeedsReview = true
		job.ReviewReason = stageErr.Error()
	}
	if err := m.store.Update(ctx, job); err != nil {
		logger.Error("failure update failed", logging.Error(err))
		return
	}

	logger.Error("stage failed",
		logging.Error(stageErr),
		logging.Bool("needs_review", job.NeedsReview))
}

// failInterruptedJobs marks jobs left in a processing status as failed so
// shutdown never leaves silent in-flight work behind.
func (m *Manager) failInterruptedJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var processing []queue.Status
	for _, status := range queue.AllStatuses() {
		if queue.IsProcessingStatus(status) {
			processing = append(processing, status)
		}
	}
	jobs, err := m.store.List(ctx, processing...)
	if err != nil {
		m.logger.Warn("listing in-flight jobs failed", logging.Error(err))
		return
	}
	for _, job := range jobs {
		job.SetFailed(queue.DaemonStopReason)
		if err := m.store.Update(ctx, job); err != nil {
			m.logger.Warn("failing interrupted job failed",
				logging.Int64(logging.FieldJobID, job.ID),
				logging.Error(err))
		}
	}
}

func (m *Manager) stageFor(status queue.Status) (pipelineStage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.pipeline {
		if st.startStatus == status {
			return st, true
		}
	}
	return pipelineStage{}, false
}

func (m *Manager) recordError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

func (m *Manager) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
