package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/list-creation/internal/app"
	"github.com/atomicstack/list-creation/internal/config"
	"github.com/atomicstack/list-creation/internal/logging"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Source:     "http://example.test/lists",
			Timeout:    5 * time.Second,
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"source":  "http://example.test/lists",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
		},
		Args: []string{"--source", "http://example.test/lists"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["source"] != "http://example.test/lists" {
		t.Fatalf("expected source flag, got %v", flagsValue["source"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

type recorded struct {
	tui    *app.Config
	dump   *app.Config
	format string
}

func fakeRunners(rec *recorded) runners {
	return runners{
		tui: func(cfg app.Config) error {
			rec.tui = &cfg
			return nil
		},
		dump: func(_ context.Context, cfg app.Config, format string) error {
			rec.dump = &cfg
			rec.format = format
			if format == "xml" {
				return app.ErrFormat
			}
			return nil
		},
	}
}

func logEnv(t *testing.T) []string {
	t.Helper()
	t.Cleanup(func() {
		logging.Configure("")
		logging.SetTraceEnabled(false)
		logging.SetSession("")
	})
	return []string{"LIST_CREATION_LOG_FILE=" + filepath.Join(t.TempDir(), "test.log")}
}

func TestRootCommandRunsTUI(t *testing.T) {
	var rec recorded
	args := []string{"--source", "lists.json", "--width", "90", "--footer"}
	cmd := buildRootCmd(args, logEnv(t), fakeRunners(&rec))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.tui == nil {
		t.Fatalf("expected the TUI to run")
	}
	if rec.tui.Source != "lists.json" || rec.tui.Width != 90 || !rec.tui.ShowFooter {
		t.Fatalf("unexpected app config %#v", rec.tui)
	}
	if logging.Session() == "" {
		t.Fatalf("expected a session id to be set")
	}
}

func TestDumpCommandPassesFormat(t *testing.T) {
	var rec recorded
	cmd := buildRootCmd([]string{"dump", "--format", "json", "--source", "x.yaml"}, logEnv(t), fakeRunners(&rec))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.tui != nil {
		t.Fatalf("expected the TUI not to run")
	}
	if rec.dump == nil || rec.dump.Source != "x.yaml" || rec.format != "json" {
		t.Fatalf("unexpected dump call %#v format %q", rec.dump, rec.format)
	}
}

func TestConfigErrorsAreMarked(t *testing.T) {
	cases := map[string][]string{
		"negative width": {"--width", "-1"},
		"empty source":   {"--source", " "},
		"unknown flag":   {"--nope"},
		"bad format":     {"dump", "--format", "xml"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var rec recorded
			err := buildRootCmd(args, logEnv(t), fakeRunners(&rec)).Execute()
			var cfgErr *configError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestRuntimeErrorsAreNotConfigErrors(t *testing.T) {
	run := runners{
		tui:  func(app.Config) error { return errors.New("boom") },
		dump: func(context.Context, app.Config, string) error { return nil },
	}
	err := buildRootCmd(nil, logEnv(t), run).Execute()
	var cfgErr *configError
	if err == nil || errors.As(err, &cfgErr) {
		t.Fatalf("expected a runtime error, got %v", err)
	}
}
