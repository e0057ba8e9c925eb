// Package logs holds the process-wide zap logger.
package logs

import (
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/napolitain/battle-lnk/internal/config"
)

var logger = zap.NewNop()

// Init replaces the global logger. Console output is colored; when
// cfg.FileDir is set a JSON copy is written there and rotated by lumberjack.
func Init(appName string, cfg config.LogConfig) error {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		lvl = zapcore.InfoLevel
	}
	level := zap.NewAtomicLevelAt(lvl)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), level)

	// Keep ANSI colors out of the file
	if cfg.FileDir != "" {
		fileCfg := encoderCfg
		fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileDir,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		})
		core = zapcore.NewTee(core, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), file, level))
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	_ = logger.Sync()
	logger = zap.New(core, opts...).Named(appName)
	return nil
}

// Logger returns the global logger for components that take a *zap.Logger
func Logger() *zap.Logger {
	return logger
}

// Sync flushes buffered entries
func Sync() error {
	return logger.Sync()
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

// Fatal logs and exits the process
func Fatal(msg string, fields ...zap.Field) {
	logger.Fatal(msg, fields...)
}
