// Package logging builds the application logger. The TUI owns stdout, so
// logs go to a rotated file only; with logging disabled every call sinks
// into a no-op logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jask/triviawheel/internal/config"
)

const logFile = "triviawheel.log"

// New returns a logger wired per cfg. Callers should defer Sync.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	if !cfg.Enabled {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}

	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, logFile),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, lvl)
	return zap.New(core), nil
}
