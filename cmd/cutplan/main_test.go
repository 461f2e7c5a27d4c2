package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cutplan/internal/config"
	"cutplan/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := filepath.Dir(cfg.Paths.DataDir)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// Without --overwrite a second init must refuse to clobber the file.
	if _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err == nil {
		t.Fatal("config init should refuse to overwrite an existing file")
	}
}

func TestConfigShowMasksAPIKey(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Assist.APIKey = "sk-secret"
	writeTestConfig(t, env.configPath, env.cfg)

	out, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "acceptance_threshold")
	requireContains(t, out, "********")
	if strings.Contains(out, "sk-secret") {
		t.Fatal("config show must not print the API key")
	}
}

func TestRunCommandEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()

	scriptPath := testsupport.WriteFile(t, filepath.Join(dir, "script.txt"),
		"dialogue: Hello world\noverlay: SUBSCRIBE\n")
	transcriptPath := testsupport.WriteFile(t, filepath.Join(dir, "transcript.json"),
		`[{"word": "Hello", "start": 0, "end": 0.5, "confidence": 0.9},
		  {"word": "world", "start": 0.5, "end": 1.0, "confidence": 0.9}]`)
	outputPath := filepath.Join(dir, "timeline.json")

	out, err := runCLI(t, []string{
		"run",
		"--script", scriptPath,
		"--transcript", transcriptPath,
		"--out", outputPath,
	}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v\noutput: %s", err, out)
	}
	requireContains(t, out, "Timeline written to")

	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("expected timeline at %s: %v", outputPath, err)
	}

	// The run shows up in history afterwards.
	out, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "completed")
}

func TestRunCommandRequiresFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, err := runCLI(t, []string{"run"}, env.configPath); err == nil {
		t.Fatal("run without flags should fail")
	}
}

func TestRunsCommandEmptyHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	out, err := runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "No runs recorded yet.")
}
