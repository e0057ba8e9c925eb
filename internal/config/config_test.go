package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/napolitain/battle-lnk/internal/errx"
	"github.com/napolitain/battle-lnk/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "battle.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	// No configs/ directory next to this package: defaults only
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Stats != want.Stats {
		t.Errorf("stats = %+v, want %+v", cfg.Stats, want.Stats)
	}
	if cfg.Battle != want.Battle {
		t.Errorf("battle = %+v, want %+v", cfg.Battle, want.Battle)
	}
	if cfg.Siege != want.Siege {
		t.Errorf("siege = %+v, want %+v", cfg.Siege, want.Siege)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.Server.ShutdownTimeout)
	}
}

func TestLoadRepositoryConfig(t *testing.T) {
	cfg, err := Load("../../configs/battle.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Stats != models.DefaultStatTable() {
		t.Errorf("shipped stats drifted from defaults: %+v", cfg.Stats)
	}
	if cfg.Battle != models.DefaultBattleParameters() {
		t.Errorf("shipped battle parameters drifted from defaults: %+v", cfg.Battle)
	}
	if cfg.Siege != models.DefaultSiegeParameters() {
		t.Errorf("shipped siege parameters drifted from defaults: %+v", cfg.Siege)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
battle:
  break_pct: 50
  rng_variance: 0
stats:
  archer:
    skirmish_attack: 40
server:
  addr: ":9000"
  read_timeout: 3s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Battle.BreakPct != 50 || cfg.Battle.RNGVariance != 0 {
		t.Errorf("battle = %+v", cfg.Battle)
	}
	if cfg.Battle.SkirmishTicks != 3 {
		t.Errorf("unset key lost its default: skirmish_ticks = %d", cfg.Battle.SkirmishTicks)
	}
	if cfg.Stats.Archer.SkirmishAttack != 40 || cfg.Stats.Archer.MeleeAttack != 6 {
		t.Errorf("archer = %+v", cfg.Stats.Archer)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BATTLE_BATTLE_PURSUIT_TICKS", "7")
	t.Setenv("BATTLE_SIEGE_MAX_ROUNDS", "12")
	t.Setenv("BATTLE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Battle.PursuitTicks != 7 {
		t.Errorf("pursuit ticks = %d, want 7", cfg.Battle.PursuitTicks)
	}
	if cfg.Siege.MaxRounds != 12 {
		t.Errorf("max rounds = %d, want 12", cfg.Siege.MaxRounds)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadRejectsInvalidRules(t *testing.T) {
	path := writeConfig(t, "battle:\n  break_pct: 140\n")
	if _, err := Load(path); !errors.Is(err, errx.ErrInvalidInput) {
		t.Errorf("err = %v, want invalid input", err)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestWatchReload(t *testing.T) {
	path := writeConfig(t, "battle:\n  break_pct: 35\n")
	l := NewLoader(path)
	if _, err := l.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.File() != path {
		t.Errorf("File() = %q, want %q", l.File(), path)
	}

	changed := make(chan *Config, 4)
	l.Watch(func(cfg *Config, err error) {
		if err != nil {
			return
		}
		select {
		case changed <- cfg:
		default:
		}
	})

	if err := os.WriteFile(path, []byte("battle:\n  break_pct: 60\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changed:
			if cfg.Battle.BreakPct == 60 {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
