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

	if got := GetInt(KeyMinChars); got != 1 {
		t.Fatalf("expected default %s to be 1, got %d", KeyMinChars, got)
	}
	if got := GetInt(KeyMaxResults); got != 8 {
		t.Fatalf("expected default %s to be 8, got %d", KeyMaxResults, got)
	}
	if got := GetDuration(KeyBlurDelay); got != DefaultBlurDelay {
		t.Fatalf("expected default %s to be %v, got %v", KeyBlurDelay, DefaultBlurDelay, got)
	}
	if !GetBool(KeyHighlight) || !GetBool(KeyShowRecentFirst) {
		t.Fatalf("expected highlight and recent-first to default on")
	}
	if GetBool(KeyFuzzyFallback) {
		t.Fatalf("expected %s to default off", KeyFuzzyFallback)
	}
	if got := GetString(KeyRecentBackend); got != "sqlite" {
		t.Fatalf("expected default %s to be sqlite, got %q", KeyRecentBackend, got)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	mustMkdir(t, filepath.Join(projectDir, DirName))
	projectCfg := filepath.Join(projectDir, DirName, "config.yaml")
	writeFile(t, projectCfg, `
autocomplete:
  max-results: 4
recent:
  backend: bolt
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
autocomplete:
  max-results: 12
  min-chars: 2
recent:
  backend: memory
`)

	if err := Initialize(
		WithWorkingDir(projectDir),
		WithUserConfig(userCfg),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetInt(KeyMaxResults); got != 4 {
		t.Fatalf("expected project config to win for %s, got %d", KeyMaxResults, got)
	}
	if got := GetInt(KeyMinChars); got != 2 {
		t.Fatalf("expected user value for %s to survive merge, got %d", KeyMinChars, got)
	}
	if got := GetString(KeyRecentBackend); got != "bolt" {
		t.Fatalf("expected project backend, got %q", got)
	}
}

func TestProjectConfigDiscoveredFromSubdirectory(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, DirName, "config.yaml"), "theme: nord\n")
	nested := filepath.Join(tmp, "a", "b")
	mustMkdir(t, nested)

	if err := Initialize(WithWorkingDir(nested), WithUserConfig(filepath.Join(tmp, "none.yaml"))); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if got := GetString(KeyTheme); got != "nord" {
		t.Fatalf("expected discovered project theme, got %q", got)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectCfg := filepath.Join(tmp, DirName, "config.yaml")
	writeFile(t, projectCfg, `
autocomplete:
  min-chars: 2
  blur-delay: 300ms
`)

	t.Setenv("CL_AUTOCOMPLETE_MIN_CHARS", "3")
	t.Setenv("CL_RECENT_PATH", "/env/recent.db")

	if err := Initialize(
		WithWorkingDir(tmp),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "user.yaml")),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetInt(KeyMinChars); got != 3 {
		t.Fatalf("expected environment variable to override %s, got %d", KeyMinChars, got)
	}
	if got := GetDuration(KeyBlurDelay); got != 300*time.Millisecond {
		t.Fatalf("expected project blur delay, got %v", got)
	}
	if got, err := RecentPath(); err != nil || got != "/env/recent.db" {
		t.Fatalf("expected env recent path, got %q (%v)", got, err)
	}

	if err := ApplyOverrides(map[string]any{KeyMinChars: 0}); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if got := GetInt(KeyMinChars); got != 0 {
		t.Fatalf("expected CLI override to set %s=0, got %d", KeyMinChars, got)
	}
}

func TestInitializeRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"negative min chars": "autocomplete:\n  min-chars: -1\n",
		"zero max results":   "autocomplete:\n  max-results: 0\n",
		"unknown backend":    "recent:\n  backend: redis\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			reset()
			t.Cleanup(reset)

			tmp := t.TempDir()
			userCfg := filepath.Join(tmp, "user.yaml")
			writeFile(t, userCfg, body)

			if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err == nil {
				t.Fatalf("expected validation error for %s", name)
			}
		})
	}
}

func TestRecentPathDefaultsByBackend(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml"))); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	path, err := RecentPath()
	if err != nil {
		t.Fatalf("RecentPath returned error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(DirName, "recent.db")) {
		t.Fatalf("unexpected sqlite default path %q", path)
	}

	if err := Set(KeyRecentBackend, "bolt"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	path, err = RecentPath()
	if err != nil {
		t.Fatalf("RecentPath returned error: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(DirName, "recent.bolt")) {
		t.Fatalf("unexpected bolt default path %q", path)
	}
}

func TestSaveThemeWritesUserConfig(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	t.Chdir(tmp)
	userCfg := filepath.Join(tmp, "home", DirName, "config.yaml")
	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	userConfigPathOverride = userCfg

	if err := SaveTheme("nord"); err != nil {
		t.Fatalf("SaveTheme returned error: %v", err)
	}

	data, err := os.ReadFile(userCfg)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), "theme: nord") {
		t.Fatalf("expected saved theme in config, got:\n%s", data)
	}
	if got := GetString(KeyTheme); got != "nord" {
		t.Fatalf("expected runtime theme nord, got %q", got)
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
