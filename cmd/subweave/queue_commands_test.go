package main

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"subweave/internal/queue"
	"subweave/internal/testsupport"
)

func TestQueueListShowsJobs(t *testing.T) {
	env := setupCLITestEnv(t)

	source := filepath.Join(env.baseDir, "kvoldfrettir.mkv")
	testsupport.WriteFile(t, source, 64)
	if _, err := env.store.NewJob(context.Background(), source, "en", "is"); err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "kvoldfrettir")
	requireContains(t, out, "pending")
	requireContains(t, out, "en -> is")
}

func TestQueueListFiltersByStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	source := filepath.Join(env.baseDir, "show.mkv")
	testsupport.WriteFile(t, source, 64)
	if _, err := env.store.NewJob(context.Background(), source, "en", "is"); err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "list", "--status", "completed"}, env.configPath)
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "Queue is empty")

	if _, _, err := runCLI(t, []string{"queue", "list", "--status", "bogus"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestQueueClear(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, name := range []string{"a.mkv", "b.mkv"} {
		source := filepath.Join(env.baseDir, name)
		testsupport.WriteFile(t, source, 64)
		if _, err := env.store.NewJob(context.Background(), source, "en", "is"); err != nil {
			t.Fatalf("NewJob: %v", err)
		}
	}

	out, _, err := runCLI(t, []string{"queue", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	requireContains(t, out, "Cleared 2 jobs")
}

func TestQueueRetryFailedJob(t *testing.T) {
	env := setupCLITestEnv(t)

	source := filepath.Join(env.baseDir, "broken.mkv")
	testsupport.WriteFile(t, source, 64)
	job, err := env.store.NewJob(context.Background(), source, "en", "is")
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	job.SetFailed("transcription timed out")
	if err := env.store.Update(context.Background(), job); err != nil {
		t.Fatalf("Update: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "retry", strconv.FormatInt(job.ID, 10)}, env.configPath)
	if err != nil {
		t.Fatalf("queue retry: %v", err)
	}
	requireContains(t, out, "reset for retry")

	refreshed, err := env.store.GetByID(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if refreshed.Status != queue.StatusPending {
		t.Fatalf("status = %q, want pending", refreshed.Status)
	}
}

func TestQueueRetryRejectsNonFailed(t *testing.T) {
	env := setupCLITestEnv(t)

	source := filepath.Join(env.baseDir, "fine.mkv")
	testsupport.WriteFile(t, source, 64)
	job, err := env.store.NewJob(context.Background(), source, "en", "is")
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "retry", strconv.FormatInt(job.ID, 10)}, env.configPath)
	if err != nil {
		t.Fatalf("queue retry: %v", err)
	}
	requireContains(t, out, "not in failed state")
}

func TestQueueHealth(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"queue", "health"}, env.configPath)
	if err != nil {
		t.Fatalf("queue health: %v", err)
	}
	requireContains(t, out, "Total: 0")
}
