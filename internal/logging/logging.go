// Package logging builds the zap loggers that back the tool's log files.
//
// The sweep CLI writes two files into the configured log directory:
// debug.log receives everything at debug level and above, error.log only
// errors. Components receive a *zap.Logger explicitly; there is no package
// level logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DebugFileName = "debug.log"
	ErrorFileName = "error.log"
)

// New creates a logger that tees debug.log and error.log under dir.
// The directory is created if missing. Callers own Sync() on shutdown.
func New(dir string) (*zap.Logger, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	debugFile, err := os.OpenFile(filepath.Join(dir, DebugFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", DebugFileName, err)
	}
	errorFile, err := os.OpenFile(filepath.Join(dir, ErrorFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		_ = debugFile.Close()
		return nil, fmt.Errorf("opening %s: %w", ErrorFileName, err)
	}

	enc := zapcore.NewJSONEncoder(encoderConfig())
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(debugFile), zapcore.DebugLevel),
		zapcore.NewCore(enc, zapcore.AddSync(errorFile), zapcore.ErrorLevel),
	)

	return zap.New(core), nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "message",
		LevelKey:   "level",
		TimeKey:    "ts",
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(l.String())
		},
		EncodeTime: zapcore.ISO8601TimeEncoder,
	}
}
