// Package logger provides the structured zap logger shared by the engine and the viewer command.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It discards everything until Init is called.
var Log = zap.NewNop()

// Sugar is the sugared form of Log.
var Sugar = Log.Sugar()

// FileConfig holds rotating file output settings.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns the rotation settings used when only a path is given.
//
// Parameters:
//   - path: the log file path
//
// Returns:
//   - FileConfig: 50 MB files, 3 compressed backups kept for 7 days
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Init installs a logger writing colored output to stdout and, when logFile is set, to a rotating file.
//
// Parameters:
//   - level: one of debug, info, warn or error; anything else means info
//   - logFile: the log file path, or "" for console only
func Init(level string, logFile string) {
	var file FileConfig
	if logFile != "" {
		file = DefaultFileConfig(logFile)
	}
	Install(New(level, os.Stdout, file))
}

// New builds a logger without installing it. A nil console writer disables console output.
//
// Parameters:
//   - level: the minimum level name
//   - console: the console destination, or nil
//   - file: the rotating file settings; an empty Path disables file output
//
// Returns:
//   - *zap.Logger: the tee of the configured cores
func New(level string, console io.Writer, file FileConfig) *zap.Logger {
	lvl := ParseLevel(level)
	var cores []zapcore.Core

	if console != nil {
		enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "logger",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
			EncodeLevel:      zapcore.CapitalColorLevelEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(console), lvl))
	}

	if file.Path != "" {
		w := &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAge:     file.MaxAgeDays,
			Compress:   file.Compress,
			LocalTime:  true,
		}
		enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "logger",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.ISO8601TimeEncoder,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), lvl))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// Install replaces the global logger.
func Install(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Log = l
	Sugar = l.Sugar()
}

// Named returns a child of the global logger scoped to one subsystem.
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// ParseLevel converts a level name to zapcore.Level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Fatal logs a fatal message and exits.
func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}
