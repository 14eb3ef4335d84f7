package log

import (
	"os"

	"ems/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger: JSON lines, info and below on stdout,
// warn and above on stderr.
func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	logger, _ := NewLeveledLogger(conf)
	return logger, nil
}

// NewLeveledLogger also returns the level so it can follow config reloads.
func NewLeveledLogger(conf *config.Configuration) (*zap.Logger, zap.AtomicLevel) {
	atomic := zap.NewAtomicLevelAt(ParseLevel(conf.Log.Level))
	return newLogger(conf, atomic, os.Stdout, os.Stderr), atomic
}

func newLogger(conf *config.Configuration, atomic zap.AtomicLevel, stdout, stderr zapcore.WriteSyncer) *zap.Logger {

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "level"
	encCfg.TimeKey = "ts"
	encCfg.CallerKey = "caller"
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	stdoutLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l < zapcore.WarnLevel
	})
	stderrLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, stdout, stdoutLevel),
		zapcore.NewCore(encoder, stderr, stderrLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).
		With(zap.String("service", conf.App.Name))
	logger.Info("zap logger set level", zap.String("level", atomic.Level().String()))
	return logger
}

// ParseLevel falls back to info for unknown names.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "dpanic":
		return zap.DPanicLevel
	case "panic":
		return zap.PanicLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}
