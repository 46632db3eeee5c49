package utils

import (
	"io"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wgomg/kwextract/internal/config"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

type Logger struct {
	level      LogLevel
	sugar      *zap.SugaredLogger
	RawBodyLog bool
}

// NewLogger builds a console logger writing to stderr. Stdout is left free
// for extraction output.
func NewLogger(level string, rawBodyLog bool) *Logger {
	return newLogger(parseLogLevel(level), rawBodyLog, false, os.Stderr)
}

// NewAppLogger builds the logger described by the application config. In
// production records are JSON encoded. When a log file is configured records
// go to stderr and to a size-rotated file.
func NewAppLogger(cfg *config.AppConfig) *Logger {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	return newLogger(parseLogLevel(cfg.LogLevel), cfg.RawBodyLog, cfg.Env == config.Production, out)
}

func NewDiscardLogger() *Logger {
	return &Logger{
		level: LevelInfo,
		sugar: zap.NewNop().Sugar(),
	}
}

func newLogger(level LogLevel, rawBodyLog, jsonEncoding bool, out io.Writer) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if jsonEncoding {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zapLevel(level))

	return &Logger{
		level:      level,
		sugar:      zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
		RawBodyLog: rawBodyLog,
	}
}

func parseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// With returns a child logger that attaches key=value to every record.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{
		level:      l.level,
		sugar:      l.sugar.With(key, value),
		RawBodyLog: l.RawBodyLog,
	}
}

func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) Info(format string, v ...any) {
	l.sugar.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...any) {
	l.sugar.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...any) {
	l.sugar.Errorf(format, v...)
}

func (l *Logger) Debug(format string, v ...any) {
	l.sugar.Debugf(format, v...)
}

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
