package obslog

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSettingsFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_TO_CONSOLE", "LOG_TO_FILE", "LOG_FILE", "LOG_CALLER"} {
		t.Setenv(k, "")
	}
	s := SettingsFromEnv()
	if s.Level != zapcore.InfoLevel || s.Format != "legacy" || !s.ToConsole || s.ToFile || !s.Caller {
		t.Fatalf("defaults = %+v", s)
	}
}

func TestSettingsFromEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "bogus")
	t.Setenv("LOG_TO_CONSOLE", "false")
	s := SettingsFromEnv()
	if s.Level != zapcore.DebugLevel || s.Format != "legacy" || s.ToConsole {
		t.Fatalf("settings = %+v", s)
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chessd.log")
	logger, err := New(Settings{Level: zapcore.InfoLevel, Format: "json", ToFile: true, FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("match_create")
	_ = logger.Sync()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("log file empty")
	}
}
