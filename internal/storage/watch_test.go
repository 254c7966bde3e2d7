package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"topicflow/internal/graph"
)

func TestWatcherReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topic.json")
	if err := os.WriteFile(path, []byte(sampleTopic), 0o644); err != nil {
		t.Fatalf("write topic: %v", err)
	}
	file, err := NewJSONFile(path)
	if err != nil {
		t.Fatalf("NewJSONFile returned error: %v", err)
	}

	loaded := make(chan Topic, 4)
	failed := make(chan error, 4)
	w, err := NewWatcher(context.Background(), path, file,
		func(t Topic) { loaded <- t },
		func(err error) { failed <- err },
	)
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}
	defer func() { _ = w.Close() }()

	changed := strings.Replace(sampleTopic, "Commute is slow", "Commute is long", 1)
	if err := os.WriteFile(path, []byte(changed), 0o644); err != nil {
		t.Fatalf("rewrite topic: %v", err)
	}

	select {
	case topic := <-loaded:
		p, err := graph.FindNode("p", topic[graph.RootDiagramID])
		if err != nil {
			t.Fatalf("FindNode returned error: %v", err)
		}
		if p.Data.Label != "Commute is long" {
			t.Fatalf("expected the new label, got %q", p.Data.Label)
		}
	case err := <-failed:
		t.Fatalf("unexpected reload error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}

func TestWatcherReportsInvalidTopic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topic.json")
	if err := os.WriteFile(path, []byte(sampleTopic), 0o644); err != nil {
		t.Fatalf("write topic: %v", err)
	}
	file, err := NewJSONFile(path)
	if err != nil {
		t.Fatalf("NewJSONFile returned error: %v", err)
	}

	failed := make(chan error, 4)
	w, err := NewWatcher(context.Background(), path, file,
		func(Topic) { t.Errorf("invalid topic should not load") },
		func(err error) { failed <- err },
	)
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("rewrite topic: %v", err)
	}
	select {
	case <-failed:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the reload error")
	}
}

func TestNewWatcherRequiresCallback(t *testing.T) {
	file, err := NewJSONFile(filepath.Join(t.TempDir(), "topic.json"))
	if err != nil {
		t.Fatalf("NewJSONFile returned error: %v", err)
	}
	if _, err := NewWatcher(context.Background(), file.Path(), file, nil, nil); err == nil {
		t.Fatalf("expected an error without a callback")
	}
}

func TestWatcherStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	file, err := NewJSONFile(filepath.Join(dir, "topic.json"))
	if err != nil {
		t.Fatalf("NewJSONFile returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w, err := NewWatcher(ctx, file.Path(), file, func(Topic) {}, nil)
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}
	cancel()
	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected the watcher loop to stop")
	}
	_ = w.Close()
}
