// Package logging builds the daemon logger: JSON lines in a rotating file,
// optionally tee'd to a console encoder, exposed as *slog.Logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the Manager.
type Config struct {
	FilePath   string    // Path to log file
	MaxSizeMB  int       // Max size in MB before rotation
	MaxBackups int       // Max number of old log files to keep
	MaxAgeDays int       // Max days to keep old log files
	Level      string    // Minimum log level (debug, info, warn, error)
	Console    io.Writer // Optional human-readable copy, usually os.Stderr
}

// Manager owns the zap core and the rotating file behind it.
type Manager struct {
	base       *zap.Logger
	fileWriter *lumberjack.Logger
	level      zapcore.Level
}

// NewManager creates a log manager with the given configuration.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("FilePath is required")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 5
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 7
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(fileWriter), level),
	}
	if cfg.Console != nil {
		consoleCfg := encoderCfg
		consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.AddSync(cfg.Console),
			level,
		))
	}

	return &Manager{
		base:       zap.New(zapcore.NewTee(cores...)),
		fileWriter: fileWriter,
		level:      level,
	}, nil
}

// Logger returns a slog logger named after scope. An empty scope returns the
// root logger.
func (m *Manager) Logger(scope string) *slog.Logger {
	z := m.base
	if scope != "" {
		z = z.Named(scope)
	}
	return slog.New(&zapSlogHandler{zap: z, level: m.level})
}

// Sync flushes buffered entries.
func (m *Manager) Sync() error {
	return m.base.Sync()
}

// Close syncs and closes the log file.
func (m *Manager) Close() error {
	_ = m.Sync()
	return m.fileWriter.Close()
}

// zapSlogHandler adapts zap.Logger to slog.Handler.
type zapSlogHandler struct {
	zap    *zap.Logger
	level  zapcore.Level
	attrs  []slog.Attr
	groups []string
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogToZapLevel(level) >= h.level
}

func (h *zapSlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, 0, r.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		fields = append(fields, zap.Any(attr.Key, attr.Value.Any()))
	}
	r.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, zap.Any(attr.Key, attr.Value.Any()))
		return true
	})

	if ce := h.zap.Check(slogToZapLevel(r.Level), r.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &zapSlogHandler{
		zap:    h.zap,
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name
	return &zapSlogHandler{
		zap:    h.zap.Named(name),
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

func slogToZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
