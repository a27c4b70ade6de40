package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
)

// Setup configures the process logger: JSON records appended to a rotating
// file under the configured log directory. Returns the logger and a cleanup
// function. On failure the returned logger discards everything so callers
// can proceed without nil checks.
func Setup(cfg *config.Config) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return discard(), func() error { return nil }, err
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, "schedulednd.log"),
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogBackupCount,
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})

	logger := slog.New(handler)
	logger.Info("logger.initialized", "path", writer.Filename, "debug", cfg.Debug)

	return logger, writer.Close, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Discard returns a logger that drops all records, for tests and for code
// paths where logging is not configured.
func Discard() *slog.Logger { return discard() }
