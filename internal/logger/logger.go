// Package logger builds the zap logger shared by the API server and donatectl.
package logger

import (
	"fmt"
	"os"
	"strings"

	"bam-donation/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a logger from cfg. An unparsable level falls back to info
// and is reported through the returned logger.
func NewLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	sink, err := openSink(cfg.Output)
	if err != nil {
		return nil, err
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	levelErr := level.UnmarshalText([]byte(cfg.Level))
	if levelErr != nil {
		level.SetLevel(zap.InfoLevel)
	}

	core := zapcore.NewCore(newEncoder(cfg.Encoding), sink, level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if levelErr != nil {
		logger.Warn("Unknown log level, using info", zap.String("configured", cfg.Level), zap.Error(levelErr))
	}
	return logger, nil
}

func newEncoder(encoding string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if strings.EqualFold(encoding, "console") {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

func openSink(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "", "stdout":
		return zapcore.Lock(os.Stdout), nil
	case "stderr":
		return zapcore.Lock(os.Stderr), nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log output %s: %w", output, err)
	}
	return zapcore.Lock(f), nil
}
