package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if GetBool(KeyShowImpliedEdges) {
		t.Fatalf("expected default %s to be false", KeyShowImpliedEdges)
	}
	if got := GetString(KeyDatabasePath); got != "" {
		t.Fatalf("expected default %s to be empty, got %q", KeyDatabasePath, got)
	}
	if got := GetInt(KeyLayoutNodeWidth); got != DefaultNodeWidth {
		t.Fatalf("expected default %s to be %d, got %d", KeyLayoutNodeWidth, DefaultNodeWidth, got)
	}
	if got := GetFloat64(KeyViewportMinZoom); got != DefaultMinZoom {
		t.Fatalf("expected default %s to be %v, got %v", KeyViewportMinZoom, DefaultMinZoom, got)
	}
	if !GetBool(KeyTopicWatch) {
		t.Fatalf("expected default %s to be true", KeyTopicWatch)
	}
	if IsSet(KeyCompositions) {
		t.Fatalf("expected %s to be unset by default", KeyCompositions)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	mustMkdir(t, filepath.Join(projectDir, ".topicflow"))
	projectCfg := filepath.Join(projectDir, ".topicflow", "config.yaml")
	writeFile(t, projectCfg, `
display:
  show-implied-edges: true
database:
  path: /project/topic.db
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
display:
  show-implied-edges: false
database:
  path: /user/topic.db
layout:
  node-width: 200
`)

	if err := Initialize(
		WithWorkingDir(filepath.Join(projectDir, "nested")),
		WithUserConfig(userCfg),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if !GetBool(KeyShowImpliedEdges) {
		t.Fatalf("expected project config to win for %s", KeyShowImpliedEdges)
	}
	if got := GetString(KeyDatabasePath); got != "/project/topic.db" {
		t.Fatalf("expected project database path, got %q", got)
	}
	if got := GetInt(KeyLayoutNodeWidth); got != 200 {
		t.Fatalf("expected user config to survive merge for %s, got %d", KeyLayoutNodeWidth, got)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	mustMkdir(t, filepath.Join(projectDir, ".topicflow"))
	projectCfg := filepath.Join(projectDir, ".topicflow", "config.yaml")
	writeFile(t, projectCfg, `
display:
  show-implied-edges: false
database:
  path: /project/topic.db
`)

	t.Setenv("TF_DISPLAY_SHOW_IMPLIED_EDGES", "true")
	t.Setenv("TF_DATABASE_PATH", "/env/topic.db")

	if err := Initialize(
		WithWorkingDir(projectDir),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "user.yaml")),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if !GetBool(KeyShowImpliedEdges) {
		t.Fatalf("expected environment variable to override %s", KeyShowImpliedEdges)
	}
	if got := GetString(KeyDatabasePath); got != "/env/topic.db" {
		t.Fatalf("expected env override for %s, got %q", KeyDatabasePath, got)
	}

	if err := ApplyOverrides(map[string]any{KeyShowImpliedEdges: false}); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if GetBool(KeyShowImpliedEdges) {
		t.Fatalf("expected CLI override to set %s=false", KeyShowImpliedEdges)
	}
}

func TestUnmarshalKeyDecodesCompositionRows(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectCfg := filepath.Join(tmp, ".topicflow", "config.yaml")
	writeFile(t, projectCfg, `
compositions:
  - composer: has
    parent: solution
    child: solutionComponent
    relation: solves
    implies: solves
`)

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml"))); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	var rows []map[string]string
	if err := UnmarshalKey(KeyCompositions, &rows); err != nil {
		t.Fatalf("UnmarshalKey returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["composer"] != "has" || rows[0]["implies"] != "solves" {
		t.Fatalf("unexpected row %v", rows[0])
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func TestSettingsAndValidate(t *testing.T) {
	cleanup := ResetForTesting(t)
	defer cleanup()

	if err := Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if l := Layout(); l.NodeWidth != DefaultNodeWidth || l.RankSpacing != 80 {
		t.Fatalf("unexpected layout settings %+v", l)
	}
	if vp := Viewport(); vp.Animation != 500*time.Millisecond || vp.MinZoom != DefaultMinZoom {
		t.Fatalf("unexpected viewport settings %+v", vp)
	}

	if err := ApplyOverrides(map[string]any{
		KeyViewportMinZoom: 2.0,
		KeyLayoutNodeWidth: 0,
	}); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	err := Validate()
	if err == nil {
		t.Fatalf("expected invalid settings to fail")
	}
	for _, key := range []string{KeyViewportMinZoom, KeyLayoutNodeWidth} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in %q", key, err.Error())
		}
	}
}
