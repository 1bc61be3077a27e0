package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clientele/internal/config"
	"clientele/internal/datasource"
	apperrors "clientele/internal/errors"
	"clientele/internal/ui"
	"clientele/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

// executeCommand runs the CLI with fresh configuration and flag values and
// returns everything written to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(config.ResetForTesting(t))
	t.Cleanup(func() { theme.SetTheme(theme.DefaultName) })

	flagDebug, flagRecentBackend, flagRecentPath, flagTheme = false, "", "", ""
	rankSource, rankField, rankMax, rankNoRecent, rankFuzzy = "", ui.FieldCountry, 0, false, false
	sourcesShowValues = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRankCommand(t *testing.T) {
	t.Run("OrdersByTier", func(t *testing.T) {
		src := writeFile(t, "vendors.txt", "Netflix\nPlanet\nInternet\nMagnet\n")
		out, err := executeCommand(t, "rank", "net", "--source", src, "--field", "vendor", "--recent-backend", "memory")
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 5 {
			t.Fatalf("expected header and 4 rows, got:\n%s", out)
		}
		for i, want := range []string{"80", "40", "40", "40"} {
			if fields := strings.Fields(lines[i+1]); fields[0] != want {
				t.Errorf("row %d: expected score %s, got %q", i, want, lines[i+1])
			}
		}
		if !strings.Contains(lines[1], "Netflix") {
			t.Errorf("expected Netflix first, got %q", lines[1])
		}
	})

	t.Run("BoostsRecentSelections", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "recent.bolt")
		if _, err := executeCommand(t, "recent", "add", "vendor", "Magnet", "--recent-backend", "bolt", "--recent-path", db); err != nil {
			t.Fatalf("recent add returned error: %v", err)
		}
		src := writeFile(t, "vendors.txt", "Netflix\nPlanet\nInternet\nMagnet\n")
		out, err := executeCommand(t, "rank", "net", "--source", src, "--field", "vendor", "--recent-backend", "bolt", "--recent-path", db)
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if fields := strings.Fields(lines[2]); fields[0] != "60" || fields[1] != "Magnet" || fields[2] != "yes" {
			t.Errorf("expected boosted Magnet second, got %q", lines[2])
		}

		out, err = executeCommand(t, "rank", "net", "--source", src, "--field", "vendor", "--no-recent", "--recent-backend", "bolt", "--recent-path", db)
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		if strings.Contains(out, "yes") {
			t.Errorf("expected --no-recent to drop the boost:\n%s", out)
		}
	})

	t.Run("BoostFollowsShowRecentFirst", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "recent.bolt")
		if _, err := executeCommand(t, "recent", "add", "vendor", "Magnet", "--recent-backend", "bolt", "--recent-path", db); err != nil {
			t.Fatalf("recent add returned error: %v", err)
		}
		t.Setenv("CL_AUTOCOMPLETE_SHOW_RECENT_FIRST", "false")
		src := writeFile(t, "vendors.txt", "Netflix\nPlanet\nInternet\nMagnet\n")
		out, err := executeCommand(t, "rank", "net", "--source", src, "--field", "vendor", "--recent-backend", "bolt", "--recent-path", db)
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if fields := strings.Fields(lines[len(lines)-1]); fields[0] != "40" || fields[1] != "Magnet" {
			t.Errorf("expected unboosted Magnet last, got %q", lines[len(lines)-1])
		}
	})

	t.Run("TrimsQuery", func(t *testing.T) {
		src := writeFile(t, "vendors.txt", "Netflix\nPlanet\nInternet\nMagnet\n")
		spaced, err := executeCommand(t, "rank", "  net ", "--source", src, "--recent-backend", "memory")
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		bare, err := executeCommand(t, "rank", "net", "--source", src, "--recent-backend", "memory")
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		if spaced != bare {
			t.Errorf("expected surrounding spaces ignored, got:\n%s\nwant:\n%s", spaced, bare)
		}
	})

	t.Run("BlankQuery", func(t *testing.T) {
		src := writeFile(t, "vendors.txt", "Netflix\nPlanet\n")
		out, err := executeCommand(t, "rank", "   ", "--source", src, "--recent-backend", "memory")
		if err == nil {
			t.Fatalf("expected an error for a blank query, got:\n%s", out)
		}
		if strings.Contains(out, "Netflix") {
			t.Errorf("expected no candidates listed, got:\n%s", out)
		}
	})

	t.Run("BelowMinChars", func(t *testing.T) {
		t.Setenv("CL_AUTOCOMPLETE_MIN_CHARS", "3")
		src := writeFile(t, "vendors.txt", "Netflix\nPlanet\n")
		if _, err := executeCommand(t, "rank", " ne ", "--source", src, "--recent-backend", "memory"); err == nil {
			t.Error("expected an error below the minimum length")
		}
		out, err := executeCommand(t, "rank", "net", "--source", src, "--recent-backend", "memory")
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		if !strings.Contains(out, "Netflix") {
			t.Errorf("expected results at the minimum length, got:\n%s", out)
		}
	})

	t.Run("MaxCapsResults", func(t *testing.T) {
		src := writeFile(t, "vendors.txt", "Netflix\nPlanet\nInternet\nMagnet\n")
		out, err := executeCommand(t, "rank", "net", "--source", src, "--max", "2", "--recent-backend", "memory")
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		if got := len(strings.Split(strings.TrimSpace(out), "\n")); got != 3 {
			t.Errorf("expected header and 2 rows, got:\n%s", out)
		}
	})

	t.Run("BuiltInCountries", func(t *testing.T) {
		out, err := executeCommand(t, "rank", "fran", "--recent-backend", "memory")
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		if !strings.Contains(out, "France") {
			t.Errorf("expected France from the built-in list:\n%s", out)
		}
	})

	t.Run("NoMatches", func(t *testing.T) {
		out, err := executeCommand(t, "rank", "zzz", "--recent-backend", "memory")
		if err != nil {
			t.Fatalf("rank returned error: %v", err)
		}
		if strings.TrimSpace(out) != "No matches" {
			t.Errorf("expected empty message, got %q", out)
		}
	})

	t.Run("UnsupportedSource", func(t *testing.T) {
		src := writeFile(t, "vendors.pdf", "x")
		_, err := executeCommand(t, "rank", "x", "--source", src, "--recent-backend", "memory")
		if !apperrors.IsCode(err, apperrors.CodeUnsupportedSource) {
			t.Errorf("expected unsupported source error, got %v", err)
		}
	})
}

func TestRecentCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "recent.db")
	run := func(args ...string) string {
		t.Helper()
		out, err := executeCommand(t, append(args, "--recent-backend", "sqlite", "--recent-path", db)...)
		if err != nil {
			t.Fatalf("%v returned error: %v", args, err)
		}
		return out
	}

	if out := run("recent", "list"); !strings.Contains(out, "No recent selections.") {
		t.Errorf("expected empty listing, got %q", out)
	}

	run("recent", "add", "country", "Peru")
	run("recent", "add", "country", "France")
	run("recent", "add", "country", "Peru")
	run("recent", "add", "vendor", "Acme")

	if out := run("recent", "list", "country"); out != "Peru\nFrance\n" {
		t.Errorf("expected newest first without duplicates, got %q", out)
	}
	out := run("recent", "list")
	if !strings.Contains(out, "country (2): Peru, France") || !strings.Contains(out, "vendor (1): Acme") {
		t.Errorf("unexpected listing:\n%s", out)
	}

	xlsx := filepath.Join(t.TempDir(), "country.xlsx")
	if out := run("recent", "export", "country", xlsx); !strings.Contains(out, "Wrote 2 values") {
		t.Errorf("unexpected export output %q", out)
	}
	out = run("sources", xlsx, "--values")
	if !strings.Contains(out, "2 values") || !strings.Contains(out, "  Peru\n") {
		t.Errorf("expected exported spreadsheet to load back, got:\n%s", out)
	}

	run("recent", "clear", "country")
	if out := run("recent", "list", "country"); out != "" {
		t.Errorf("expected country cleared, got %q", out)
	}
	if out := run("recent", "list", "vendor"); out != "Acme\n" {
		t.Errorf("expected vendor untouched, got %q", out)
	}
}

func TestRecentAddRejectsBlank(t *testing.T) {
	_, err := executeCommand(t, "recent", "add", "country", "  ", "--recent-backend", "memory")
	if err == nil {
		t.Fatal("expected an error for a blank value")
	}
}

func TestSourcesCommand(t *testing.T) {
	t.Run("Configured", func(t *testing.T) {
		out, err := executeCommand(t, "sources")
		if err != nil {
			t.Fatalf("sources returned error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header and 3 fields, got:\n%s", out)
		}
		country := strings.Fields(lines[2])
		if country[0] != ui.FieldCountry || country[1] != "(built-in)" || country[2] == "0" {
			t.Errorf("expected built-in countries, got %q", lines[2])
		}
		if vendor := strings.Fields(lines[3]); vendor[1] != "(none)" || vendor[2] != "0" {
			t.Errorf("expected no vendor source, got %q", lines[3])
		}
	})

	t.Run("ConfiguredFile", func(t *testing.T) {
		src := writeFile(t, "vendors.csv", "name\nAcme\nGlobex\n")
		t.Setenv("CL_SOURCES_VENDORS", src)
		out, err := executeCommand(t, "sources")
		if err != nil {
			t.Fatalf("sources returned error: %v", err)
		}
		if !strings.Contains(out, src) {
			t.Errorf("expected configured path listed:\n%s", out)
		}
	})

	t.Run("Paths", func(t *testing.T) {
		src := writeFile(t, "vendors.json", `["Acme", "Globex", "Initech"]`)
		out, err := executeCommand(t, "sources", src)
		if err != nil {
			t.Fatalf("sources returned error: %v", err)
		}
		if strings.TrimSpace(out) != src+": 3 values" {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := executeCommand(t, "sources", filepath.Join(t.TempDir(), "missing.txt"))
		if !apperrors.IsCode(err, apperrors.CodeSourceUnreadable) {
			t.Errorf("expected unreadable source error, got %v", err)
		}
	})
}

func TestInvalidBackendFlag(t *testing.T) {
	_, err := executeCommand(t, "recent", "list", "--recent-backend", "redis")
	if !apperrors.IsCode(err, apperrors.CodeConfigurationError) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestThemeFlag(t *testing.T) {
	if _, err := executeCommand(t, "version", "--theme", "nord"); err != nil {
		t.Fatalf("version returned error: %v", err)
	}
	if theme.CurrentName() != "nord" {
		t.Errorf("expected nord theme, got %q", theme.CurrentName())
	}
}

type scriptedProgram struct {
	model tea.Model
	msgs  []tea.Msg
	err   error
}

func (p scriptedProgram) Run() (tea.Model, error) {
	if p.err != nil {
		return nil, p.err
	}
	m := p.model
	m.Init()
	for _, msg := range p.msgs {
		m, _ = m.Update(msg)
	}
	return m, nil
}

func withProgram(t *testing.T, factory programFactory) {
	t.Helper()
	orig := newProgram
	newProgram = factory
	t.Cleanup(func() { newProgram = orig })
}

func keys(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func TestFormCommand(t *testing.T) {
	t.Run("PrintsSubmittedValues", func(t *testing.T) {
		var script []tea.Msg
		script = append(script, keys("Jane")...)
		script = append(script, tea.KeyMsg{Type: tea.KeyTab})
		script = append(script, keys("fran")...)
		script = append(script, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})

		var built *ui.CustomerForm
		withProgram(t, func(m tea.Model) programRunner {
			built = m.(*ui.CustomerForm)
			return scriptedProgram{model: m, msgs: script}
		})

		out, err := executeCommand(t, "form", "--recent-backend", "memory")
		if err != nil {
			t.Fatalf("form returned error: %v", err)
		}
		if out != "customer: Jane\ncountry: France\nvendor: \n" {
			t.Errorf("unexpected output %q", out)
		}
		if built == nil || !built.Submitted() {
			t.Error("expected the form to be submitted")
		}
	})

	t.Run("QuitPrintsNothing", func(t *testing.T) {
		withProgram(t, func(m tea.Model) programRunner {
			return scriptedProgram{model: m, msgs: []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlC}}}
		})
		out, err := executeCommand(t, "--recent-backend", "memory")
		if err != nil {
			t.Fatalf("root returned error: %v", err)
		}
		if out != "" {
			t.Errorf("expected no output, got %q", out)
		}
	})

	t.Run("ProgramError", func(t *testing.T) {
		boom := errors.New("boom")
		withProgram(t, func(m tea.Model) programRunner {
			return scriptedProgram{err: boom}
		})
		_, err := executeCommand(t, "form", "--recent-backend", "memory")
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped program error, got %v", err)
		}
	})
}

func TestFormConfigUsesSettings(t *testing.T) {
	t.Cleanup(config.ResetForTesting(t))
	src := writeFile(t, "vendors.txt", "Acme\nGlobex\n")
	if err := config.ApplyOverrides(map[string]any{
		config.KeyMinChars:      2,
		config.KeyMaxResults:    3,
		config.KeyFuzzyFallback: true,
		config.KeySourceVendors: src,
	}); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}

	cfg := formConfig(t.Context(), nil)
	if cfg.Options.MinChars != 2 || cfg.Options.MaxResults != 3 || !cfg.Options.FuzzyFallback {
		t.Errorf("expected options from config, got %+v", cfg.Options)
	}
	if len(cfg.Vendors) != 2 || cfg.Vendors[0] != "Acme" {
		t.Errorf("expected vendors from file, got %v", cfg.Vendors)
	}
	if len(cfg.Customers) != 0 {
		t.Errorf("expected no customers, got %v", cfg.Customers)
	}
	if len(cfg.Countries) != len(datasource.Countries()) {
		t.Errorf("expected built-in countries, got %d", len(cfg.Countries))
	}
	if cfg.Sources[ui.FieldVendor] != src {
		t.Errorf("expected vendor source %q, got %q", src, cfg.Sources[ui.FieldVendor])
	}
	if got := watchedPaths(cfg.Sources); len(got) != 1 || got[0] != src {
		t.Errorf("expected one watched path, got %v", got)
	}
}
