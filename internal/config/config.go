// Package config loads the engine tuning and service settings with viper.
package config

import (
	"time"

	"github.com/napolitain/battle-lnk/internal/models"
)

// Config is everything a binary needs: engine rules plus ambient settings
type Config struct {
	Stats   models.StatTable        `yaml:"stats" mapstructure:"stats"`
	Battle  models.BattleParameters `yaml:"battle" mapstructure:"battle"`
	Siege   models.SiegeParameters  `yaml:"siege" mapstructure:"siege"`
	DataDir string                  `yaml:"data_dir" mapstructure:"data_dir"`
	Log     LogConfig               `yaml:"log" mapstructure:"log"`
	Server  ServerConfig            `yaml:"server" mapstructure:"server"`
}

// LogConfig controls the zap logger. An empty FileDir logs to the console only.
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	Mode            string        `yaml:"mode" mapstructure:"mode"`
}

// Default returns the configuration used when no file or env says otherwise
func Default() Config {
	return Config{
		Stats:   models.DefaultStatTable(),
		Battle:  models.DefaultBattleParameters(),
		Siege:   models.DefaultSiegeParameters(),
		DataDir: "data",
		Log: LogConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Mode:            "release",
		},
	}
}

// Validate checks the engine rules
func (c *Config) Validate() error {
	if err := c.Stats.Validate(); err != nil {
		return err
	}
	if err := c.Battle.Validate(); err != nil {
		return err
	}
	return c.Siege.Validate()
}
