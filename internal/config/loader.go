package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/napolitain/battle-lnk/internal/models"
)

// EnvPrefix prefixes environment overrides: BATTLE_BATTLE_BREAK_PCT sets
// battle.break_pct
const EnvPrefix = "BATTLE"

// Loader reads a Config from file, defaults and environment
type Loader struct {
	v *viper.Viper
}

// NewLoader prepares a loader. An empty path looks for battle.yaml under
// ./configs and the working directory, falling back to defaults when none
// exists; an explicit path must exist.
func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("battle")
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// Load is shorthand for NewLoader(path).Load()
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// Load reads and validates the configuration
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return l.decode()
}

// File returns the config file in use, empty when running on defaults
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange each time the config file is rewritten. A file that
// fails to decode or validate is reported through err and cfg is nil.
func (l *Loader) Watch(onChange func(cfg *Config, err error)) {
	l.v.OnConfigChange(func(fsnotify.Event) {
		onChange(l.decode())
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := l.v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so env overrides apply even without a file
func setDefaults(v *viper.Viper, d Config) {
	for ut, st := range map[string]models.UnitStats{"warrior": d.Stats.Warrior, "archer": d.Stats.Archer} {
		p := "stats." + ut + "."
		v.SetDefault(p+"skirmish_attack", st.SkirmishAttack)
		v.SetDefault(p+"skirmish_defence", st.SkirmishDefence)
		v.SetDefault(p+"melee_attack", st.MeleeAttack)
		v.SetDefault(p+"melee_defence", st.MeleeDefence)
		v.SetDefault(p+"pursuit", st.Pursuit)
		v.SetDefault(p+"morale_per_100", st.MoralePer100)
	}

	b := d.Battle
	v.SetDefault("battle.skirmish_ticks", b.SkirmishTicks)
	v.SetDefault("battle.pursuit_ticks", b.PursuitTicks)
	v.SetDefault("battle.melee_safety_ticks", b.MeleeSafetyTicks)
	v.SetDefault("battle.base_casualty_rate", b.BaseCasualtyRate)
	v.SetDefault("battle.morale_per_casualty", b.MoralePerCasualty)
	v.SetDefault("battle.advantage_morale_tick", b.AdvantageMoraleTick)
	v.SetDefault("battle.break_pct", b.BreakPct)
	v.SetDefault("battle.rng_variance", b.RNGVariance)
	v.SetDefault("battle.pursuit_base", b.PursuitBase)

	s := d.Siege
	v.SetDefault("siege.max_rounds", s.MaxRounds)
	v.SetDefault("siege.base_casualty_rate", s.BaseCasualtyRate)
	v.SetDefault("siege.wall_damage_factor", s.WallDamageFactor)
	v.SetDefault("siege.inner_skirmish_steps", s.InnerSkirmishSteps)
	v.SetDefault("siege.inner_melee_last_step", s.InnerMeleeLastStep)
	v.SetDefault("siege.inner_max_steps", s.InnerMaxSteps)
	v.SetDefault("siege.pursuit_base", s.PursuitBase)

	v.SetDefault("data_dir", d.DataDir)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file_dir", d.Log.FileDir)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("log.dev", d.Log.Dev)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.mode", d.Server.Mode)
}
