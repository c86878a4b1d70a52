package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// initFile points the logger at a fresh file and returns a reader for it.
func initFile(t *testing.T, level string, cfg FileConfig) func() string {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "test.log")
	}
	if err := InitWithFileConfig(level, cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return func() string {
		Sync()
		content, err := os.ReadFile(cfg.Path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		return string(content)
	}
}

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "test.log")

	// 1MB is the smallest size lumberjack allows.
	initFile(t, "debug", FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1})

	long := strings.Repeat("x", 200)
	for i := 0; i < 8000; i++ {
		Sugar.Infof("entry %d: %s", i, long)
	}
	Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	var rotated []string
	for _, e := range entries {
		if e.Name() != "test.log" && strings.HasPrefix(e.Name(), "test-") {
			rotated = append(rotated, e.Name())
		}
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("current log file missing: %v", err)
	}
	if len(rotated) == 0 {
		t.Errorf("no rotated files in %v", entries)
	}
}

func TestLogLevels(t *testing.T) {
	all := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	tests := []struct {
		level string
		first int // index into all of the lowest level written
	}{
		{"debug", 0},
		{"info", 1},
		{"", 1},
		{"WARN", 2},
		{"error", 3},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			read := initFile(t, tt.level, FileConfig{MaxSizeMB: 10})

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			out := read()
			for i, lvl := range all {
				if got, want := strings.Contains(out, lvl), i >= tt.first; got != want {
					t.Errorf("%s present = %v, want %v", lvl, got, want)
				}
			}
		})
	}
}

func TestUnknownLevel(t *testing.T) {
	for _, level := range []string{"verbose", "fatal"} {
		if err := InitWithFileConfig(level, FileConfig{}, false); err == nil {
			t.Errorf("level %q accepted", level)
		}
	}
}

func TestHelpersReportCaller(t *testing.T) {
	read := initFile(t, "info", FileConfig{MaxSizeMB: 1})
	Info("where am I")

	out := read()
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("caller should be the test file, got %q", out)
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")
	want := FileConfig{Path: "/tmp/test.log", MaxSizeMB: 20, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
	if cfg != want {
		t.Errorf("DefaultFileConfig = %+v, want %+v", cfg, want)
	}
}

func TestLoggingBeforeInit(t *testing.T) {
	// Packages may log before main configures the logger.
	Named("early").Info("dropped")
	Debug("dropped")
	Sync()
}

func TestNamedComponent(t *testing.T) {
	read := initFile(t, "info", FileConfig{MaxSizeMB: 1})

	Named("sketch").Info("material compiled")

	out := read()
	if !strings.Contains(out, "sketch") || !strings.Contains(out, "material compiled") {
		t.Errorf("expected component name and message in %q", out)
	}
}
