package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"domaincheck/internal/config"
	"domaincheck/internal/store"
)

func TestRootCommand_Wiring(t *testing.T) {
	want := map[string]bool{
		"serve":   false,
		"check":   false,
		"scan":    false,
		"history": false,
	}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetup_DefaultsWithoutConfigFile(t *testing.T) {
	old, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(old) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	rootFlags.configPath = ""
	rootFlags.logLevel = ""
	rootFlags.logFormat = ""
	if err := setup(rootCmd, nil); err != nil {
		t.Fatalf("setup without config file: %v", err)
	}
	if cfg == nil || cfg.Scan.Parallel != 4 {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestSetup_ExplicitConfigMustExist(t *testing.T) {
	rootFlags.configPath = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { rootFlags.configPath = "" })

	if err := setup(rootCmd, nil); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestSetup_FlagOverridesConfigLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dc.yaml")
	if err := os.WriteFile(path, []byte("log_level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rootFlags.configPath = path
	rootFlags.logLevel = "debug"
	t.Cleanup(func() {
		rootFlags.configPath = ""
		rootFlags.logLevel = ""
	})

	if err := setup(rootCmd, nil); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want flag override debug", cfg.LogLevel)
	}
}

func TestBuildServer_CacheDisabledShutdownClean(t *testing.T) {
	// The default config leaves cache.path empty, so buildChecker returns
	// a nil store. Shutdown must still return cleanly.
	cfg = config.Default()
	if cfg.Cache.Path != "" {
		t.Fatalf("default cache.path = %q, expected disabled cache", cfg.Cache.Path)
	}

	srv, err := buildServer(context.Background(), cfg, "test")
	if err != nil {
		t.Fatalf("buildServer: %v", err)
	}

	srv.Shutdown()
	srv.Shutdown()
}

func TestBuildServer_WithCache(t *testing.T) {
	cfg = config.Default()
	cfg.Cache.Path = filepath.Join(t.TempDir(), "checks.db")

	srv, err := buildServer(context.Background(), cfg, "test")
	if err != nil {
		t.Fatalf("buildServer: %v", err)
	}

	srv.Shutdown()
}

func TestHistory_RequiresCache(t *testing.T) {
	cfg = config.Default()
	cfg.Cache.Path = ""

	if err := runHistory(historyCmd, nil); err == nil {
		t.Fatal("expected error when cache is disabled")
	}
}

func TestHistory_ListsRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "checks.db")
	s, err := store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveCheck(&store.CheckRecord{
		Domain:    "example.com",
		Status:    "Registered",
		Registrar: "Example Registrar",
	}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	cfg = config.Default()
	cfg.Cache.Path = dbPath

	var buf bytes.Buffer
	historyCmd.SetOut(&buf)
	t.Cleanup(func() { historyCmd.SetOut(nil) })

	if err := runHistory(historyCmd, nil); err != nil {
		t.Fatalf("runHistory: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "example.com") || !strings.Contains(out, "Registered") {
		t.Errorf("unexpected history output:\n%s", out)
	}
}
