package ingest

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"subweave/internal/config"
	"subweave/internal/logging"
	"subweave/internal/queue"
)

// mediaExtensions lists the container formats the scanner picks up.
var mediaExtensions = map[string]struct{}{
	".mkv": {},
	".mp4": {},
	".avi": {},
	".mov": {},
	".m4v": {},
	".ts":  {},
}

// Scanner polls the inbox directory and creates one job per media file and
// target language. A file is only enqueued once its size stops changing
// between consecutive scans, so half-copied files are left alone.
type Scanner struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger

	interval time.Duration

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	lastSizes map[string]int64
}

// NewScanner creates an inbox scanner.
func NewScanner(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Scanner {
	return &Scanner{
		cfg:       cfg,
		store:     store,
		logger:    logging.NewComponentLogger(logger, "ingest"),
		interval:  time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
		lastSizes: make(map[string]int64),
	}
}

// Start launches the polling loop.
func (s *Scanner) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("ingest scanner already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.wg.Add(1)
	go s.run(runCtx)

	s.logger.Info("inbox scanner started", logging.String("inbox", s.cfg.Paths.InboxDir))
	return nil
}

// Stop halts the polling loop.
func (s *Scanner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.running = false
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.logger.Info("inbox scanner stopped")
}

func (s *Scanner) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.ScanOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("inbox scan failed", logging.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ScanOnce performs a single inbox sweep. Exported so the CLI can trigger a
// scan without running the daemon loop.
func (s *Scanner) ScanOnce(ctx context.Context) error {
	files, err := s.listInbox()
	if err != nil {
		return err
	}

	seen := make(map[string]int64, len(files))
	for _, file := range files {
		seen[file.path] = file.size

		s.mu.Lock()
		previous, known := s.lastSizes[file.path]
		s.mu.Unlock()
		if !known || previous != file.size {
			// Still copying, pick it up next sweep.
			continue
		}

		if err := s.enqueue(ctx, file.path); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.lastSizes = seen
	s.mu.Unlock()
	return nil
}

type inboxFile struct {
	path string
	size int64
}

func (s *Scanner) listInbox() ([]inboxFile, error) {
	entries, err := os.ReadDir(s.cfg.Paths.InboxDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []inboxFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, ok := mediaExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, inboxFile{
			path: filepath.Join(s.cfg.Paths.InboxDir, name),
			size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	return files, nil
}

func (s *Scanner) enqueue(ctx context.Context, path string) error {
	for _, target := range s.cfg.Languages.Targets {
		existing, err := s.store.FindBySource(ctx, path, target)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		job, err := s.store.NewJob(ctx, path, s.cfg.Languages.Source, target)
		if err != nil {
			return err
		}
		s.logger.Info("media file queued",
			logging.Int64(logging.FieldJobID, job.ID),
			logging.String("source", path),
			logging.String(logging.FieldLanguage, target))
	}
	return nil
}
