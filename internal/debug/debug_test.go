package debug

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetForTest() {
	mu.Lock()
	defer mu.Unlock()
	active.close()
	active = nil
}

// useTempLog points the log at a temp dir for the test and returns the file
// path Init(true) will write.
func useTempLog(t *testing.T) string {
	t.Helper()
	resetForTest()
	dir := t.TempDir()
	path := filepath.Join(dir, LogDirName, LogFileName)
	orig := getLogPath
	getLogPath = func() (string, error) { return path, nil }
	t.Cleanup(func() {
		getLogPath = orig
		resetForTest()
	})
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(content)
}

func TestInitDisabledIsNoop(t *testing.T) {
	resetForTest()
	if err := Init(false); err != nil {
		t.Fatalf("Init(false) returned error: %v", err)
	}
	if Enabled() {
		t.Fatalf("expected logging disabled")
	}

	Log("test", 123, "more")
	Logf("test %d %s", 123, "fmt")
	With("transition", "relayout").Infow("ignored", "n", 1)
}

func TestInitWritesJSONLines(t *testing.T) {
	path := useTempLog(t)
	if err := Init(true); err != nil {
		t.Fatalf("Init(true) returned error: %v", err)
	}
	if !Enabled() {
		t.Fatalf("expected logging enabled")
	}

	Log("test message")
	Logf("test %s %d", "formatted", 42)
	Close()

	lines := strings.Split(strings.TrimSpace(readLog(t, path)), "\n")
	want := []string{"debug log started", "test message", "test formatted 42"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), strings.Join(lines, "\n"))
	}
	for i, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line %d is not JSON: %v\n%s", i, err, line)
		}
		if entry["level"] != "info" {
			t.Fatalf("line %d: expected level info, got %v", i, entry["level"])
		}
		if ts, ok := entry["ts"].(string); !ok || ts == "" {
			t.Fatalf("line %d: expected an RFC3339 ts string, got %v", i, entry["ts"])
		}
		if msg, _ := entry["msg"].(string); !strings.Contains(msg, want[i]) {
			t.Fatalf("line %d: expected msg containing %q, got %q", i, want[i], msg)
		}
	}
}

func TestInitTruncatesExistingLog(t *testing.T) {
	path := useTempLog(t)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("old log content\n"), 0600); err != nil {
		t.Fatalf("write old log: %v", err)
	}

	if err := Init(true); err != nil {
		t.Fatalf("Init(true) returned error: %v", err)
	}
	content := readLog(t, path)
	if strings.Contains(content, "old log content") {
		t.Fatalf("expected old content truncated, got %q", content)
	}
	if !strings.Contains(content, "debug log started") {
		t.Fatalf("expected startup line, got %q", content)
	}
}

func TestCloseIsRepeatable(t *testing.T) {
	path := useTempLog(t)
	if err := Init(true); err != nil {
		t.Fatalf("Init(true) returned error: %v", err)
	}

	Close()
	Close()
	if Enabled() {
		t.Fatalf("expected logging off after Close")
	}
	Log("after close")
	if strings.Contains(readLog(t, path), "after close") {
		t.Fatalf("expected nothing written after Close")
	}
}

func TestWithWritesStructuredFields(t *testing.T) {
	path := useTempLog(t)
	if err := Init(true); err != nil {
		t.Fatalf("Init(true) returned error: %v", err)
	}

	With("transition", "relayout", "diagram", "root").Info("installed")
	Close()

	content := readLog(t, path)
	for _, want := range []string{`"transition":"relayout"`, `"diagram":"root"`, `"msg":"installed"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in log, got %q", want, content)
		}
	}
}

func TestWithLoggerGoesQuietAfterClose(t *testing.T) {
	path := useTempLog(t)
	if err := Init(true); err != nil {
		t.Fatalf("Init(true) returned error: %v", err)
	}
	held := With("diagram", "root")
	Close()
	held.Info("late write")

	if err := Init(true); err != nil {
		t.Fatalf("second Init(true) returned error: %v", err)
	}
	held.Info("stale logger")
	Close()

	content := readLog(t, path)
	if strings.Contains(content, "late write") || strings.Contains(content, "stale logger") {
		t.Fatalf("expected the held logger to drop entries, got %q", content)
	}
}

func TestGetLogPath(t *testing.T) {
	path, err := GetLogPath()
	if err != nil {
		t.Fatalf("GetLogPath returned error: %v", err)
	}
	if want := filepath.Join(LogDirName, LogFileName); !strings.HasSuffix(path, want) {
		t.Fatalf("expected suffix %q, got %q", want, path)
	}
}
