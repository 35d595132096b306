package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"durazubs/internal/config"
	"durazubs/internal/services"
	"durazubs/internal/testsupport"
)

const eventsFormat = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

var (
	timingTrack = []string{
		"[Script Info]",
		"Title: Timing",
		"",
		"[Events]",
		eventsFormat,
		"Dialogue: 0,0:00:10.00,0:00:12.00,Default,,0,0,0,,First",
		"Dialogue: 0,0:00:13.00,0:00:14.00,Default,Additional Scene,0,0,0,,Bonus one",
		"Dialogue: 0,0:00:20.00,0:00:22.00,Default,,0,0,0,,Second",
	}
	textTrack = []string{
		"[Script Info]",
		"Title: Merge",
		"",
		"[Events]",
		eventsFormat,
		"Dialogue: 0,0:00:08.00,0:00:09.50,Alt,Ana,0,0,0,,Primero",
		"Dialogue: 0,0:00:16.00,0:00:18.00,Alt,Ana,0,0,0,,Segundo",
	}
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	dir        string
	timing     string
	text       string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("DURAZUBS_LLM_API_KEY", "")
	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		dir:        base,
		timing:     testsupport.WriteTrack(t, base, "timing.ass", timingTrack),
		text:       testsupport.WriteTrack(t, base, "text.ass", textTrack),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--log-level", "error"}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestSyncWritesOutputAndJournalsRun(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithHistory())
	out := filepath.Join(env.dir, "merged.ass")

	stdout, _, err := runCLI(t, []string{"sync", env.timing, env.text, "-o", out, "--style", "main"}, env.configPath)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	requireContains(t, stdout, "Wrote "+out)
	requireContains(t, stdout, "Scene blocks placed")

	merged := testsupport.ReadTrack(t, out)
	for _, want := range []string{
		"PlayResX: 640",
		"Dialogue: 10,0:00:10.00,0:00:11.50,Main,Ana,0,0,0,,Primero",
		"Dialogue: 10,0:00:13.00,0:00:14.00,Main,Additional Scene,0,0,0,,Bonus one",
		"Dialogue: 10,0:00:20.00,0:00:22.00,Main,Ana,0,0,0,,Segundo",
	} {
		if !slices.Contains(merged, want) {
			t.Fatalf("merged output missing %q: %q", want, merged)
		}
	}

	stdout, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, stdout, "succeeded")
	requireContains(t, stdout, "text.ass")
	requireContains(t, stdout, "Main")
}

func TestSyncDefaultsOutputNextToTextTrack(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"sync", env.timing, env.text}, env.configPath); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "text.merged.ass")); err != nil {
		t.Fatalf("expected default output: %v", err)
	}
}

func TestSyncPendingTranslation(t *testing.T) {
	env := setupCLITestEnv(t)
	response := filepath.Join(env.dir, "scenes.txt")
	out := filepath.Join(env.dir, "merged.ass")

	stdout, _, err := runCLI(t, []string{"sync", env.timing, env.text, "-o", out, "--translate", "file", "--response", response}, env.configPath)
	if !errors.Is(err, services.ErrPending) {
		t.Fatalf("expected pending error, got %v", err)
	}
	requireContains(t, stdout, "waiting for a translation response")
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("output should not be written: %v", statErr)
	}
	request := testsupport.ReadTrack(t, filepath.Join(env.dir, "scenes.request.txt"))
	if !slices.Contains(request, "Bonus one") {
		t.Fatalf("request missing scene line: %q", request)
	}

	testsupport.WriteTrack(t, env.dir, "scenes.txt", []string{"Extra uno"})
	if _, _, err := runCLI(t, []string{"sync", env.timing, env.text, "-o", out, "--translate", "file", "--response", response}, env.configPath); err != nil {
		t.Fatalf("sync after response: %v", err)
	}
	if merged := testsupport.ReadTrack(t, out); !slices.Contains(merged, "Dialogue: 10,0:00:13.00,0:00:14.00,Default,Additional Scene,0,0,0,,Extra uno") {
		t.Fatalf("translated scene missing: %q", merged)
	}
}

func TestSyncRejectsInvalidFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	cases := [][]string{
		{"--header", "both"},
		{"--trailing", "keep"},
		{"--style", "third"},
		{"--tolerance", "-1s"},
	}
	for _, flags := range cases {
		args := append([]string{"sync", env.timing, env.text, "-o", filepath.Join(env.dir, "x.ass")}, flags...)
		if _, _, err := runCLI(t, args, env.configPath); err == nil {
			t.Fatalf("expected error for %v", flags)
		}
	}
}

func TestExtractAndApply(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"extract", env.timing, "--target", "German"}, env.configPath)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	requireContains(t, stdout, "ENGLISH to GERMAN")
	requireContains(t, stdout, "---\nBonus one\n")

	request := filepath.Join(env.dir, "request.txt")
	if _, _, err := runCLI(t, []string{"extract", env.timing, "-o", request}, env.configPath); err != nil {
		t.Fatalf("extract to file: %v", err)
	}
	if lines := testsupport.ReadTrack(t, request); !strings.HasPrefix(lines[0], "Act as") || !slices.Contains(lines, "Bonus one") {
		t.Fatalf("unexpected request file: %q", lines)
	}

	translations := testsupport.WriteTrack(t, env.dir, "translations.yaml", []string{"- Extra uno"})
	out := filepath.Join(env.dir, "applied.ass")
	stdout, _, err = runCLI(t, []string{"apply", env.timing, translations, "-o", out}, env.configPath)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	requireContains(t, stdout, "Applied 1 translated lines")
	if lines := testsupport.ReadTrack(t, out); !slices.Contains(lines, "Dialogue: 10,0:00:13.00,0:00:14.00,Default,Additional Scene,0,0,0,,Extra uno") {
		t.Fatalf("translation not applied: %q", lines)
	}
}

func TestApplyKeepsNonSceneLines(t *testing.T) {
	env := setupCLITestEnv(t)
	track := []string{
		"[Events]",
		eventsFormat,
		"Dialogue: 0,0:00:00.00,0:00:05.00,OP,,0,0,0,,Opening song",
		"Comment: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,note",
		"Dialogue: 0,0:00:10.00,0:00:12.00,Default,,0,0,0,,First",
		"Dialogue: 0,0:00:10.00,0:00:12.00,Default,,0,0,0,,First",
		"Dialogue: 0,0:00:13.00,0:00:14.00,Default,Additional Scene,0,0,0,,Bonus one",
	}
	input := testsupport.WriteTrack(t, env.dir, "raw.ass", track)
	translations := testsupport.WriteTrack(t, env.dir, "translations.txt", []string{"Extra uno"})
	out := filepath.Join(env.dir, "applied.ass")
	if _, _, err := runCLI(t, []string{"apply", input, translations, "-o", out}, env.configPath); err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := slices.Clone(track)
	want[6] = "Dialogue: 10,0:00:13.00,0:00:14.00,Default,Additional Scene,0,0,0,,Extra uno"
	if got := testsupport.ReadTrack(t, out); !slices.Equal(got, want) {
		t.Fatalf("apply rewrote other lines\n got: %q\nwant: %q", got, want)
	}
}

func TestSyncHelpDescribesTimeline(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"sync", "--help"}, "")
	if err != nil {
		t.Fatalf("sync --help: %v", err)
	}
	requireContains(t, stdout, "The timing track supplies the\ntimeline")
	requireContains(t, stdout, "shifted onto the timing track")
}

func TestApplyRequiresOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	translations := testsupport.WriteTrack(t, env.dir, "translations.txt", []string{"Extra uno"})
	if _, _, err := runCLI(t, []string{"apply", env.timing, translations}, env.configPath); err == nil {
		t.Fatal("expected missing --output error")
	}
}

func TestStyleCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out := filepath.Join(env.dir, "styled.ass")

	if _, _, err := runCLI(t, []string{"style", env.text, "-o", out}, env.configPath); err == nil {
		t.Fatal("expected an error without a profile")
	}
	stdout, _, err := runCLI(t, []string{"style", env.text, "-o", out, "--profile", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	requireContains(t, stdout, "Applied style Second")
	lines := testsupport.ReadTrack(t, out)
	if !slices.Contains(lines, "[V4+ Styles]") || !slices.Contains(lines, "Dialogue: 10,0:00:08.00,0:00:09.50,Second,Ana,0,0,0,,Primero") {
		t.Fatalf("unexpected styled output: %q", lines)
	}

	if _, _, err := runCLI(t, []string{"style", env.text, "-o", env.text, "--profile", "main"}, env.configPath); err == nil {
		t.Fatal("expected refusal to overwrite the input")
	}
}

func TestHistoryDisabled(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestConfigInitValidateShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err == nil {
		t.Fatal("expected init to refuse an existing file")
	}

	env.cfg.LLM.APIKey = "secret-key"
	writeTestConfig(t, env.configPath, env.cfg)
	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "<redacted>")
	if strings.Contains(out, "secret-key") {
		t.Fatalf("api key leaked: %s", out)
	}
}

func TestShouldSkipConfig(t *testing.T) {
	root := newRootCommand()
	cmd, _, err := root.Find([]string{"config", "init"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !shouldSkipConfig(cmd) {
		t.Fatal("config init should skip config loading")
	}
	cmd, _, err = root.Find([]string{"sync"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if shouldSkipConfig(cmd) {
		t.Fatal("sync should load config")
	}
}

func TestDefaultMergedPath(t *testing.T) {
	got := defaultMergedPath(filepath.Join("shows", "Ep 01: Pilot?.ass"))
	want := filepath.Join("shows", "Ep 01- Pilot.merged.ass")
	if got != want {
		t.Fatalf("defaultMergedPath = %q, want %q", got, want)
	}
}

func TestConfigValidatePingRequiresLLMBackend(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"config", "validate", "--ping"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--ping") {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestConfigValidatePingsLLM(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": `{"ok":true}`}}},
		})
	}))
	defer server.Close()

	env := setupCLITestEnv(t)
	env.cfg.Translation.Backend = config.BackendLLM
	env.cfg.LLM.APIKey = "test-key"
	env.cfg.LLM.BaseURL = server.URL
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"config", "validate", "--ping"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate --ping: %v", err)
	}
	requireContains(t, out, "reachable")
	requireContains(t, out, "Configuration valid")
}
