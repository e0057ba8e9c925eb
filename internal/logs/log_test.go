package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/napolitain/battle-lnk/internal/config"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	_ = Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestInitWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.log")
	if err := Init("battle-test", config.LogConfig{Level: "debug", FileDir: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	Info("battle resolved", zap.String("winner", "attacker"), zap.Int("ticks", 3))
	Debug("tick detail")

	out := readLog(t, path)
	for _, want := range []string{`"msg":"battle resolved"`, `"winner":"attacker"`, `"logger":"battle-test"`, `"msg":"tick detail"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log file missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color codes leaked into the log file")
	}
}

func TestInitLevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.log")
	if err := Init("battle-test", config.LogConfig{Level: "WARN", FileDir: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	Info("quiet")
	Warn("loud")

	out := readLog(t, path)
	if strings.Contains(out, "quiet") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn entry missing")
	}
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.log")
	if err := Init("battle-test", config.LogConfig{Level: "chatty", FileDir: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { logger = zap.NewNop() })

	Debug("hidden")
	Info("shown")

	out := readLog(t, path)
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected log content:\n%s", out)
	}
}
